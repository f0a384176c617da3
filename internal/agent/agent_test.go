// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dialogue-engine/internal/world"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

func TestNewOllama_RequiresModel(t *testing.T) {
	_, err := NewOllama(types.AgentConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestNewOllama_Defaults(t *testing.T) {
	a, err := NewOllama(types.AgentConfig{Model: "llama3.2"})
	require.NoError(t, err)
	assert.InDelta(t, defaultTemperature, a.cfg.Temperature, 1e-9)
	assert.Equal(t, defaultNumPredict, a.cfg.NumPredict)
}

func TestNewOllama_BadHost(t *testing.T) {
	_, err := NewOllama(types.AgentConfig{Model: "llama3.2", Host: "http://bad host:11434"})
	assert.Error(t, err)
}

func TestOllama_ActWithoutObservation(t *testing.T) {
	a, err := NewOllama(types.AgentConfig{Model: "llama3.2"})
	require.NoError(t, err)

	_, err = a.Act(context.Background())
	assert.ErrorIs(t, err, world.ErrEpisodeDone)
}

func TestOllama_ResetClearsState(t *testing.T) {
	a, err := NewOllama(types.AgentConfig{Model: "llama3.2"})
	require.NoError(t, err)

	a.AddReply("hello")
	a.Observe(world.Message{Text: "observation"})
	a.Reset()

	assert.Nil(t, a.history)
	assert.Nil(t, a.pending)

	a.AddReply("hello again")
	a.ResetHistory()
	assert.Nil(t, a.history)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(
		[]string{"hi there", "hello back"},
		"__knowledge__ Coffee is a drink. __endknowledge__\nIs coffee a drink?",
	)

	assert.True(t, strings.HasSuffix(prompt, "\n\nReply: "))
	assert.Contains(t, prompt, "hi there\nhello back\n")
	assert.Contains(t, prompt, "__knowledge__ Coffee is a drink. __endknowledge__")

	// History precedes the observation.
	assert.Less(t,
		strings.Index(prompt, "hello back"),
		strings.Index(prompt, "Is coffee a drink?"))
}

func TestScripted_ReplaysInOrder(t *testing.T) {
	s := &Scripted{Responses: []string{"one", "two"}}
	ctx := context.Background()

	s.Observe(world.Message{Text: "first observation"})
	reply, err := s.Act(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", reply)

	reply, err = s.Act(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", reply)

	_, err = s.Act(ctx)
	assert.ErrorIs(t, err, world.ErrEpisodeDone)

	// After Reset the script starts over.
	s.Reset()
	reply, err = s.Act(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", reply)
}

func TestScripted_BatchActStopsOnExhaustion(t *testing.T) {
	s := &Scripted{Responses: []string{"only"}}

	replies, err := s.BatchAct(context.Background(), []world.Message{
		{Text: "a"}, {Text: "b"},
	})
	assert.ErrorIs(t, err, world.ErrEpisodeDone)
	assert.Nil(t, replies)
}
