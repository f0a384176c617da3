// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the dialogue-engine
// pipeline: episodes and turns as loaded from transcript files, examples
// as produced by teachers, and per-stage configuration.
package types

import "strings"

// Speaker identifies the conversational role of a turn.
type Speaker string

const (
	// SpeakerApprentice is the knowledge-free participant. Apprentice
	// always initiates a conversation.
	SpeakerApprentice Speaker = "apprentice"

	// SpeakerWizard is the participant with access to retrieved
	// knowledge, who selects (checks) a grounding sentence.
	SpeakerWizard Speaker = "wizard"
)

// IsWizard reports whether the speaker label names the wizard role.
// Transcript files carry decorated labels (e.g. "1_Wizard"), so this
// matches by substring rather than equality.
func (s Speaker) IsWizard() bool {
	return strings.Contains(strings.ToLower(string(s)), "wizard")
}

// Passage is a one-entry mapping from a topic title to the candidate
// sentences retrieved for that topic.
type Passage map[string][]string

// Turn is one utterance within an episode, plus retrieval metadata.
type Turn struct {
	// Speaker is the role label as it appears in the transcript.
	Speaker Speaker `json:"speaker" yaml:"speaker"`

	// Text is the utterance text.
	Text string `json:"text" yaml:"text"`

	// RetrievedTopics lists the topic titles retrieved for this turn.
	RetrievedTopics []string `json:"retrieved_topics" yaml:"retrieved_topics"`

	// RetrievedPassages holds the passages shown to the speaker, one
	// single-entry topic mapping per element, in retrieval order.
	RetrievedPassages []Passage `json:"retrieved_passages" yaml:"retrieved_passages"`

	// CheckedSentence maps a synthetic key encoding speaker, topic and
	// sentence index (e.g. "self_Vermont_Syrup_0") to the knowledge
	// sentence the wizard selected. Nil for apprentice turns and for
	// wizard turns with no selection.
	CheckedSentence map[string]string `json:"checked_sentence,omitempty" yaml:"checked_sentence,omitempty"`

	// CheckedPassage maps a source label to the topic title of the
	// checked sentence. Nil when no sentence was checked.
	CheckedPassage map[string]string `json:"checked_passage,omitempty" yaml:"checked_passage,omitempty"`

	// CandidateResponses holds evaluation-time response candidates for
	// wizard turns, when the transcript provides them.
	CandidateResponses []string `json:"candidate_responses,omitempty" yaml:"candidate_responses,omitempty"`
}

// Episode is one full dialogue transcript, immutable once loaded.
type Episode struct {
	// ChosenTopic is the topic the apprentice picked to open the
	// conversation. May be empty in degenerate transcripts.
	ChosenTopic string `json:"chosen_topic" yaml:"chosen_topic"`

	// ChosenTopicPassage holds the sentences of the chosen topic's
	// knowledge passage, in source order.
	ChosenTopicPassage []string `json:"chosen_topic_passage" yaml:"chosen_topic_passage"`

	// Dialog is the ordered sequence of turns. Apprentice speaks first.
	Dialog []Turn `json:"dialog" yaml:"dialog"`
}
