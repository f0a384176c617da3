// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package teacher reshapes loaded dialogue episodes into per-turn
// training examples. Three variants are provided: a transcript teacher
// that passes raw turns through, a dialog knowledge teacher that
// reconstructs the knowledge visible to the wizard for each turn pair,
// and a generator teacher that shapes knowledge for training text
// generators.
package teacher

import "github.com/pdiddy/dialogue-engine/pkg/types"

const (
	// TokenNoChosen is the sentinel used for both title and sentence
	// when no knowledge sentence was checked.
	TokenNoChosen = "no_passages_used"

	// TokenKnowledge and TokenEndKnowledge bracket knowledge text in
	// formatted strings and observations.
	TokenKnowledge    = "__knowledge__"
	TokenEndKnowledge = "__endknowledge__"
)

// Teacher is the iteration contract shared by all variants: a stable
// per-episode, per-entry indexing over derived examples.
type Teacher interface {
	// EpisodeCount returns the number of episodes.
	EpisodeCount() int

	// ExampleCount returns the total number of examples across all
	// episodes.
	ExampleCount() int

	// EpisodeLength returns the number of examples derivable from the
	// episode at episodeIdx.
	EpisodeLength(episodeIdx int) int

	// Get returns the example at entryIdx within episode episodeIdx.
	// Indices outside [0, EpisodeCount) x [0, EpisodeLength) are caller
	// contract violations and yield an error.
	Get(episodeIdx, entryIdx int) (types.Example, error)
}
