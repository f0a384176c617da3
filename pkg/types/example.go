// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Example is one training or evaluation instance derived from an
// episode. It is the sole wire contract with downstream consumers
// (trainers, evaluators, the example index).
type Example struct {
	// ID names the teacher that produced the example.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Text is the conditioning input.
	Text string `json:"text" yaml:"text"`

	// Labels is a singleton sequence holding either the wizard's reply
	// or the formatted "title sentence" string, depending on label type.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// LabelCandidates holds ranked-choice alternatives for
	// classification-style evaluation. May be empty.
	LabelCandidates []string `json:"label_candidates,omitempty" yaml:"label_candidates,omitempty"`

	// ChosenTopic is the episode's chosen topic.
	ChosenTopic string `json:"chosen_topic,omitempty" yaml:"chosen_topic,omitempty"`

	// EpisodeDone is true exactly on the last example of an episode.
	EpisodeDone bool `json:"episode_done" yaml:"episode_done"`

	// Knowledge is the newline-joined string of all "title sentence"
	// candidates visible to the wizard. Nil when the teacher is
	// configured not to attach knowledge.
	Knowledge *string `json:"knowledge,omitempty" yaml:"knowledge,omitempty"`

	// Title is the resolved topic title of the checked sentence, set
	// when checked-sentence inclusion is configured.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// CheckedSentence is the resolved checked sentence text, set when
	// checked-sentence inclusion is configured.
	CheckedSentence string `json:"checked_sentence,omitempty" yaml:"checked_sentence,omitempty"`

	// ChosenTopicPassage and Turn carry the raw transcript fields
	// unchanged; only the transcript teacher sets them.
	ChosenTopicPassage []string `json:"chosen_topic_passage,omitempty" yaml:"chosen_topic_passage,omitempty"`
	Turn               *Turn    `json:"turn,omitempty" yaml:"turn,omitempty"`
}

// HasKnowledge reports whether the knowledge field is attached.
func (e *Example) HasKnowledge() bool {
	return e.Knowledge != nil
}

// KnowledgeString returns the attached knowledge, or "" when absent.
func (e *Example) KnowledgeString() string {
	if e.Knowledge == nil {
		return ""
	}
	return *e.Knowledge
}

// SetKnowledge attaches a knowledge string.
func (e *Example) SetKnowledge(s string) {
	e.Knowledge = &s
}
