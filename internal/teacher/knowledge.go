// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import (
	"fmt"
	"strings"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// DefaultTeacherConfig returns the dialog knowledge teacher defaults.
func DefaultTeacherConfig() types.TeacherConfig {
	return types.TeacherConfig{
		LabelType:            types.LabelResponse,
		IncludeKnowledge:     true,
		ChosenTopicDelimiter: "\n",
		NumTopics:            5,
	}
}

// DialogKnowledgeTeacher derives one example per wizard-turn pair:
// the apprentice turn at 2*entryIdx conditions the wizard turn at
// 2*entryIdx+1, together with the knowledge visible to the wizard at
// that point in the dialogue.
type DialogKnowledgeTeacher struct {
	data   *dataset.Dataset
	cfg    types.TeacherConfig
	numExs int
}

// NewDialogKnowledgeTeacher wraps a loaded dataset. Zero-valued config
// fields keep their documented defaults.
func NewDialogKnowledgeTeacher(data *dataset.Dataset, cfg types.TeacherConfig) *DialogKnowledgeTeacher {
	if cfg.LabelType == "" {
		cfg.LabelType = types.LabelResponse
	}
	if cfg.ChosenTopicDelimiter == "" {
		cfg.ChosenTopicDelimiter = "\n"
	}

	t := &DialogKnowledgeTeacher{data: data, cfg: cfg}
	for i := 0; i < data.NumEpisodes(); i++ {
		t.numExs += t.EpisodeLength(i)
	}
	return t
}

// EpisodeCount returns the number of dialogues.
func (t *DialogKnowledgeTeacher) EpisodeCount() int {
	return t.data.NumEpisodes()
}

// ExampleCount returns the total number of wizard-turn examples.
func (t *DialogKnowledgeTeacher) ExampleCount() int {
	return t.numExs
}

// EpisodeLength returns the number of apprentice/wizard turn pairs in
// the episode. A degenerate episode with a trailing unpaired turn
// contributes only its complete pairs; one with zero wizard turns
// contributes none.
func (t *DialogKnowledgeTeacher) EpisodeLength(episodeIdx int) int {
	return len(t.data.Episodes()[episodeIdx].Dialog) / 2
}

// formatPair renders a (title, sentence) pair per the configured
// labeling convention.
func (t *DialogKnowledgeTeacher) formatPair(title, sentence string) string {
	if t.cfg.KnowledgeSeparator && title != TokenNoChosen {
		return fmt.Sprintf("%s %s %s", title, TokenKnowledge, sentence)
	}
	return fmt.Sprintf("%s %s", title, sentence)
}

// gatherKnowledge assembles the knowledge mapping for the wizard turn
// at idx: the chosen-topic passage (or, lacking a chosen topic, the
// wizard turn's own first retrieved passage), merged first-writer-wins
// with the apprentice's passages and, when present, the prior wizard
// turn's passages. Nothing retrieved after turn idx is visible.
func gatherKnowledge(ep *types.Episode, idx int) *KnowledgeMap {
	know := NewKnowledgeMap()

	if ep.ChosenTopic != "" {
		know.Add(ep.ChosenTopic, ep.ChosenTopicPassage)
	} else if passages := ep.Dialog[idx].RetrievedPassages; len(passages) > 0 {
		for title, sentences := range passages[0] {
			know.Add(title, sentences)
		}
	}

	know.MergePassages(ep.Dialog[idx-1].RetrievedPassages)
	if idx-2 >= 0 {
		know.MergePassages(ep.Dialog[idx-2].RetrievedPassages)
	}

	return know
}

// Get returns the example for the wizard-turn pair at entryIdx.
func (t *DialogKnowledgeTeacher) Get(episodeIdx, entryIdx int) (types.Example, error) {
	episodes := t.data.Episodes()
	if episodeIdx < 0 || episodeIdx >= len(episodes) {
		return types.Example{}, fmt.Errorf("episode index %d out of range [0,%d)", episodeIdx, len(episodes))
	}
	ep := &episodes[episodeIdx]

	length := t.EpisodeLength(episodeIdx)
	if entryIdx < 0 || entryIdx >= length {
		return types.Example{}, fmt.Errorf("entry index %d out of range [0,%d) in episode %d", entryIdx, length, episodeIdx)
	}

	// Apprentice always initiates, so the wizard turn sits at the odd
	// index of the pair.
	idx := entryIdx*2 + 1
	apprentice := &ep.Dialog[idx-1]
	wizard := &ep.Dialog[idx]

	know := gatherKnowledge(ep, idx)

	var text string
	if idx == 1 && ep.ChosenTopic != "" {
		// Conversation opener: only the chosen topic is available as
		// conditioning input.
		text = ep.ChosenTopic
	} else {
		var b strings.Builder
		if t.cfg.LabelType == types.LabelChosenSent && idx-2 >= 0 {
			// Selecting sentences needs the wizard's prior reply in
			// the dialogue history.
			b.WriteString(ep.Dialog[idx-2].Text)
			b.WriteString("\n")
		}
		b.WriteString(apprentice.Text)
		text = b.String()
	}

	var labels []string
	if t.cfg.LabelType == types.LabelResponse {
		labels = []string{wizard.Text}
	} else {
		title, sentence := ChosenTitleAndSentence(wizard.CheckedPassage, wizard.CheckedSentence, know)
		labels = []string{t.formatPair(title, sentence)}
	}

	// The sentinel heads the candidate list but never enters the
	// knowledge string.
	labelCands := []string{fmt.Sprintf("%s %s", TokenNoChosen, TokenNoChosen)}
	var knowledgeStr strings.Builder
	for _, entry := range know.Entries() {
		for _, sentence := range entry.Sentences {
			cand := t.formatPair(entry.Title, sentence)
			knowledgeStr.WriteString(cand)
			knowledgeStr.WriteString("\n")
			labelCands = append(labelCands, cand)
		}
	}
	if t.cfg.LabelType == types.LabelResponse {
		if t.data.Split().IsTrain() {
			labelCands = nil
		} else {
			labelCands = wizard.CandidateResponses
		}
	}

	ex := types.Example{
		ID:              "dialog_knowledge",
		Text:            text,
		Labels:          labels,
		ChosenTopic:     ep.ChosenTopic,
		EpisodeDone:     entryIdx == length-1,
		LabelCandidates: labelCands,
	}
	if t.cfg.IncludeKnowledge {
		ex.SetKnowledge(knowledgeStr.String())
	}
	if t.cfg.IncludeCheckedSentence {
		title, sentence := ChosenTitleAndSentence(wizard.CheckedPassage, wizard.CheckedSentence, know)
		ex.Title = title
		ex.CheckedSentence = sentence
	}

	return ex, nil
}
