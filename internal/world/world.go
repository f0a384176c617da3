// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package world orchestrates exchanges between knowledge-augmented
// input and a downstream response-generating agent. Drivers are
// stateless wrappers: all conversation state lives in the agent.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/dialogue-engine/internal/logging"
	"github.com/pdiddy/dialogue-engine/internal/teacher"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// ErrEpisodeDone is the iteration-exhaustion signal from an agent: its
// conversation context has run out. Drivers log it, reset the agent,
// and return it; no retry is attempted.
var ErrEpisodeDone = errors.New("episode done")

// Message is one observation delivered to an agent.
type Message struct {
	// ID names the driver that produced the observation.
	ID string

	// Text is the observation text, knowledge wrapper included.
	Text string

	// EpisodeDone marks the observation as episode-ending.
	EpisodeDone bool
}

// Agent is the downstream response generator a driver talks to.
type Agent interface {
	// AddReply appends an utterance to the agent's dialogue history.
	AddReply(utterance string)

	// Observe delivers an observation for the next Act.
	Observe(msg Message)

	// Act generates a reply to the last observation.
	Act(ctx context.Context) (string, error)

	// BatchAct generates one reply per observation.
	BatchAct(ctx context.Context, msgs []Message) ([]string, error)

	// ResetHistory clears the dialogue history only.
	ResetHistory()

	// Reset clears all agent state.
	Reset()
}

// KnowledgeField selects which field of a batch item supplies the
// knowledge sentence for the observation.
type KnowledgeField string

const (
	FieldKnowledge       KnowledgeField = "knowledge"
	FieldCheckedSentence KnowledgeField = "checked_sentence"
)

// SampleInput is one single-sample exchange: a shared history, the
// knowledge sentence grounding the reply, and the current user text.
type SampleInput struct {
	Topic           string   `json:"topic,omitempty"`
	CheckedSentence string   `json:"checked_sentence"`
	Text            string   `json:"text"`
	History         []string `json:"history"`
}

// BatchItem is one element of a batched exchange.
type BatchItem struct {
	Topic           string `json:"topic,omitempty"`
	Knowledge       string `json:"knowledge,omitempty"`
	CheckedSentence string `json:"checked_sentence,omitempty"`
	Text            string `json:"text"`
}

// Field returns the knowledge text selected by f.
func (b BatchItem) Field(f KnowledgeField) string {
	if f == FieldCheckedSentence {
		return b.CheckedSentence
	}
	return b.Knowledge
}

// BatchInput is a batched exchange: items sharing one history.
type BatchInput struct {
	Inputs  []BatchItem `json:"inputs"`
	History []string    `json:"history"`
}

// observation formats the bracketed-knowledge observation text:
// "__knowledge__ {sentence} __endknowledge__{delimiter}{text}".
func observation(sentence, delimiter, text string) string {
	return fmt.Sprintf("%s %s %s%s%s",
		teacher.TokenKnowledge, sentence, teacher.TokenEndKnowledge, delimiter, text)
}

// GeneratorWorld drives single-sample and batched exchanges against a
// response-generating agent.
type GeneratorWorld struct {
	cfg   types.WorldConfig
	agent Agent
	log   *slog.Logger
}

// NewGeneratorWorld wraps an agent. A zero-valued delimiter defaults
// to newline.
func NewGeneratorWorld(cfg types.WorldConfig, agent Agent) *GeneratorWorld {
	if cfg.GoldKnowledgeDelimiter == "" {
		cfg.GoldKnowledgeDelimiter = "\n"
	}
	return &GeneratorWorld{cfg: cfg, agent: agent, log: logging.New("generator-world")}
}

// ParleyOneSample replays the input's history into the agent's context,
// delivers one episode-ending knowledge-wrapped observation, and
// returns the agent's reply. Any agent failure terminates the exchange
// and resets agent state.
func (w *GeneratorWorld) ParleyOneSample(ctx context.Context, input SampleInput) (string, error) {
	for _, utterance := range input.History {
		w.agent.AddReply(strings.TrimSpace(utterance))
	}

	w.agent.Observe(Message{
		ID:          "generator-world",
		Text:        observation(input.CheckedSentence, w.cfg.GoldKnowledgeDelimiter, input.Text),
		EpisodeDone: true,
	})

	reply, err := w.agent.Act(ctx)
	if err != nil {
		w.resetOnError(err)
		return "", err
	}
	return reply, nil
}

// ParleyBatch performs one exchange per input item. All items share
// one history; the agent's history is reset before each item is
// observed. Returns one reply per item, in input order.
func (w *GeneratorWorld) ParleyBatch(ctx context.Context, input BatchInput, field KnowledgeField) ([]string, error) {
	msgs := make([]Message, 0, len(input.Inputs))
	for _, item := range input.Inputs {
		w.agent.ResetHistory()
		for _, utterance := range input.History {
			w.agent.AddReply(strings.TrimSpace(utterance))
		}

		msg := Message{
			ID:   "generator-world",
			Text: observation(item.Field(field), w.cfg.GoldKnowledgeDelimiter, item.Text),
		}
		w.agent.Observe(msg)
		msgs = append(msgs, msg)
	}

	replies, err := w.agent.BatchAct(ctx, msgs)
	if err != nil {
		w.resetOnError(err)
		return nil, err
	}
	return replies, nil
}

func (w *GeneratorWorld) resetOnError(err error) {
	if errors.Is(err, ErrEpisodeDone) {
		w.log.Info("episode chat done")
	} else {
		w.log.Error("agent failed", "error", err)
	}
	w.agent.Reset()
}

// InteractiveWorld drives a multi-turn live exchange: observations are
// not episode-ending, so the agent carries context across parleys.
type InteractiveWorld struct {
	cfg   types.WorldConfig
	agent Agent
	log   *slog.Logger
}

// NewInteractiveWorld wraps an agent.
func NewInteractiveWorld(cfg types.WorldConfig, agent Agent) *InteractiveWorld {
	if cfg.GoldKnowledgeDelimiter == "" {
		cfg.GoldKnowledgeDelimiter = "\n"
	}
	return &InteractiveWorld{cfg: cfg, agent: agent, log: logging.New("interactive-world")}
}

// Parley replays the input's history, delivers one knowledge-wrapped
// observation, and returns the agent's reply.
func (w *InteractiveWorld) Parley(ctx context.Context, input SampleInput) (string, error) {
	for _, utterance := range input.History {
		w.agent.AddReply(strings.TrimSpace(utterance))
	}

	w.agent.Observe(Message{
		ID:   "interactive-world",
		Text: observation(strings.TrimSpace(input.CheckedSentence), w.cfg.GoldKnowledgeDelimiter, input.Text),
	})

	reply, err := w.agent.Act(ctx)
	if err != nil {
		if errors.Is(err, ErrEpisodeDone) {
			w.log.Info("episode chat done")
		} else {
			w.log.Error("agent failed", "error", err)
		}
		w.agent.Reset()
		return "", err
	}
	return reply, nil
}

