// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"

	"github.com/pdiddy/dialogue-engine/internal/world"
)

// Scripted replays canned responses in order and signals episode
// exhaustion once they run out. It backs offline runs and tests.
type Scripted struct {
	// Responses are returned one per Act call, in order.
	Responses []string

	next    int
	history []string
	pending *world.Message

	// Observed records every observation delivered, for inspection.
	Observed []world.Message
}

// AddReply appends an utterance to the dialogue history.
func (s *Scripted) AddReply(utterance string) {
	s.history = append(s.history, utterance)
}

// History returns the current dialogue history.
func (s *Scripted) History() []string {
	return s.history
}

// Observe stores the observation for the next Act.
func (s *Scripted) Observe(msg world.Message) {
	s.pending = &msg
	s.Observed = append(s.Observed, msg)
}

// Act returns the next scripted response, or ErrEpisodeDone when the
// script is exhausted.
func (s *Scripted) Act(_ context.Context) (string, error) {
	var observed string
	if s.pending != nil {
		observed = s.pending.Text
		s.pending = nil
	}
	if s.next >= len(s.Responses) {
		return "", world.ErrEpisodeDone
	}
	reply := s.Responses[s.next]
	s.next++
	if observed != "" {
		s.history = append(s.history, observed)
	}
	s.history = append(s.history, reply)
	return reply, nil
}

// BatchAct returns one scripted response per observation.
func (s *Scripted) BatchAct(ctx context.Context, msgs []world.Message) ([]string, error) {
	replies := make([]string, 0, len(msgs))
	for range msgs {
		reply, err := s.Act(ctx)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// ResetHistory clears the dialogue history only.
func (s *Scripted) ResetHistory() {
	s.history = nil
}

// Reset clears all agent state, including the script position.
func (s *Scripted) Reset() {
	s.history = nil
	s.pending = nil
	s.next = 0
}
