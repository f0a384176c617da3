// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent provides response-generating agents for the
// conversation drivers: an Ollama-backed generator and a scripted
// agent for tests and offline runs.
package agent

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/pdiddy/dialogue-engine/internal/world"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

const (
	defaultTemperature = 0.7
	defaultNumPredict  = 256
)

// Ollama generates replies through a local Ollama server. It keeps the
// dialogue history the drivers replay into it and builds one prompt per
// observation.
type Ollama struct {
	client  *api.Client
	cfg     types.AgentConfig
	history []string
	pending *world.Message
}

// NewOllama creates an Ollama agent. An empty host selects the
// client's environment default (OLLAMA_HOST).
func NewOllama(cfg types.AgentConfig) (*Ollama, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("agent model is required")
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.NumPredict == 0 {
		cfg.NumPredict = defaultNumPredict
	}

	hostURL := envconfig.Host()
	if cfg.Host != "" {
		parsed, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("parsing agent host %s: %w", cfg.Host, err)
		}
		hostURL = parsed
	}

	return &Ollama{
		client: api.NewClient(hostURL, http.DefaultClient),
		cfg:    cfg,
	}, nil
}

// AddReply appends an utterance to the dialogue history.
func (a *Ollama) AddReply(utterance string) {
	a.history = append(a.history, utterance)
}

// Observe stores the observation for the next Act.
func (a *Ollama) Observe(msg world.Message) {
	a.pending = &msg
}

// Act generates a reply to the pending observation.
func (a *Ollama) Act(ctx context.Context) (string, error) {
	if a.pending == nil {
		return "", world.ErrEpisodeDone
	}
	msg := *a.pending
	a.pending = nil

	reply, err := a.generate(ctx, a.history, msg.Text)
	if err != nil {
		return "", err
	}

	// Both sides of the exchange enter the history so multi-turn
	// interaction keeps its context.
	a.history = append(a.history, msg.Text, reply)
	return reply, nil
}

// BatchAct generates one reply per observation. The dialogue history
// at call time is shared across the batch; replies are not fed back
// into it.
func (a *Ollama) BatchAct(ctx context.Context, msgs []world.Message) ([]string, error) {
	a.pending = nil
	replies := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		reply, err := a.generate(ctx, a.history, msg.Text)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// ResetHistory clears the dialogue history only.
func (a *Ollama) ResetHistory() {
	a.history = nil
}

// Reset clears all agent state.
func (a *Ollama) Reset() {
	a.history = nil
	a.pending = nil
}

// generate builds the prompt from history plus the observation and
// streams one completion.
func (a *Ollama) generate(ctx context.Context, history []string, observation string) (string, error) {
	req := api.GenerateRequest{
		Model:  a.cfg.Model,
		Prompt: buildPrompt(history, observation),
		Options: map[string]interface{}{
			"temperature": a.cfg.Temperature,
			"num_predict": a.cfg.NumPredict,
		},
	}

	var b strings.Builder
	err := a.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := b.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	return strings.TrimSpace(b.String()), nil
}

// buildPrompt renders the dialogue history and the knowledge-wrapped
// observation as a plain conversational prompt.
func buildPrompt(history []string, observation string) string {
	var b strings.Builder
	b.WriteString("You are the knowledgeable participant in a grounded conversation. ")
	b.WriteString("Reply to the last message using the knowledge between the ")
	b.WriteString("__knowledge__ and __endknowledge__ markers when it is relevant.\n\n")

	for _, utterance := range history {
		b.WriteString(utterance)
		b.WriteString("\n")
	}

	b.WriteString(observation)
	b.WriteString("\n\nReply: ")
	return b.String()
}
