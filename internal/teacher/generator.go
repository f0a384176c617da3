// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// GeneratorTeacher specializes the dialog knowledge teacher for
// training text generators. Labels are always the wizard response and
// the checked sentence is always attached; depending on configuration
// the knowledge attached to each example is restricted, erased, or
// prepended to the input text.
type GeneratorTeacher struct {
	*DialogKnowledgeTeacher

	cfg types.GeneratorConfig
	rng *rand.Rand
}

// DefaultGeneratorConfig returns the generator teacher defaults. The
// knowledge separator is on for generators, unlike the base teacher.
func DefaultGeneratorConfig() types.GeneratorConfig {
	base := DefaultTeacherConfig()
	base.KnowledgeSeparator = true
	return types.GeneratorConfig{
		TeacherConfig:          base,
		GoldKnowledgeDelimiter: "\n",
	}
}

// NewGeneratorTeacher wraps a loaded dataset. The label type and
// checked-sentence inclusion are forced at construction. Dropout draws
// come from a private source seeded with cfg.Seed (time-based when
// zero), so runs are reproducible without touching global state.
func NewGeneratorTeacher(data *dataset.Dataset, cfg types.GeneratorConfig) *GeneratorTeacher {
	cfg.LabelType = types.LabelResponse
	cfg.IncludeCheckedSentence = true
	if cfg.GoldKnowledgeDelimiter == "" {
		cfg.GoldKnowledgeDelimiter = "\n"
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GeneratorTeacher{
		DialogKnowledgeTeacher: NewDialogKnowledgeTeacher(data, cfg.TeacherConfig),
		cfg:                    cfg,
		rng:                    rand.New(rand.NewSource(seed)),
	}
}

// Get returns the generator example for the wizard-turn pair at
// entryIdx. Dropout takes precedence over gold-knowledge prepending;
// only-checked-knowledge restriction is applied before either.
func (t *GeneratorTeacher) Get(episodeIdx, entryIdx int) (types.Example, error) {
	ex, err := t.DialogKnowledgeTeacher.Get(episodeIdx, entryIdx)
	if err != nil {
		return types.Example{}, err
	}
	ex.ID = "generator"

	if !ex.HasKnowledge() {
		// Padding placeholder, pass through unchanged.
		return ex, nil
	}

	// Generators do not rank candidates.
	ex.LabelCandidates = nil

	if t.cfg.OnlyCheckedKnowledge {
		ex.SetKnowledge(fmt.Sprintf("%s %s %s", ex.Title, TokenKnowledge, ex.CheckedSentence))
	}

	if t.rng.Float64() < t.cfg.IgnorantDropout {
		ex.Title = TokenNoChosen
		ex.CheckedSentence = TokenNoChosen
		ex.SetKnowledge(fmt.Sprintf("%s %s %s", TokenNoChosen, TokenKnowledge, TokenNoChosen))
	} else if t.cfg.PrependGoldKnowledge {
		ex.Text = fmt.Sprintf("%s %s %s%s%s",
			TokenKnowledge, ex.CheckedSentence, TokenEndKnowledge,
			t.cfg.GoldKnowledgeDelimiter, ex.Text)
	}

	return ex, nil
}
