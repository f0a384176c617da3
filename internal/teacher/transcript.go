// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import (
	"fmt"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// TranscriptTeacher exposes each turn's raw fields unchanged: one
// example per utterance, annotated with the episode's chosen topic and
// passage.
type TranscriptTeacher struct {
	data   *dataset.Dataset
	numExs int
}

// NewTranscriptTeacher wraps a loaded dataset.
func NewTranscriptTeacher(data *dataset.Dataset) *TranscriptTeacher {
	return &TranscriptTeacher{
		data:   data,
		numExs: data.NumUtterances(),
	}
}

// EpisodeCount returns the number of dialogues.
func (t *TranscriptTeacher) EpisodeCount() int {
	return t.data.NumEpisodes()
}

// ExampleCount returns the total utterance count.
func (t *TranscriptTeacher) ExampleCount() int {
	return t.numExs
}

// EpisodeLength returns the turn count of the episode.
func (t *TranscriptTeacher) EpisodeLength(episodeIdx int) int {
	return len(t.data.Episodes()[episodeIdx].Dialog)
}

// Get returns the raw turn at entryIdx within episode episodeIdx.
func (t *TranscriptTeacher) Get(episodeIdx, entryIdx int) (types.Example, error) {
	episodes := t.data.Episodes()
	if episodeIdx < 0 || episodeIdx >= len(episodes) {
		return types.Example{}, fmt.Errorf("episode index %d out of range [0,%d)", episodeIdx, len(episodes))
	}
	ep := &episodes[episodeIdx]
	if entryIdx < 0 || entryIdx >= len(ep.Dialog) {
		return types.Example{}, fmt.Errorf("entry index %d out of range [0,%d) in episode %d", entryIdx, len(ep.Dialog), episodeIdx)
	}

	turn := &ep.Dialog[entryIdx]
	return types.Example{
		ID:                 "transcript",
		Text:               turn.Text,
		ChosenTopic:        ep.ChosenTopic,
		ChosenTopicPassage: ep.ChosenTopicPassage,
		Turn:               turn,
		EpisodeDone:        entryIdx == len(ep.Dialog)-1,
	}, nil
}
