// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads knowledge-grounded dialogue transcripts from
// their per-split JSON files and holds them read-only for the lifetime
// of the process.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// DefaultTask is the dataset folder name used when the config leaves
// Task empty.
const DefaultTask = "topical_chat"

// Path returns the transcript file path for the configured split:
// {data_path}/{task}/{suffix}_parlai.json.
func Path(cfg types.DatasetConfig) string {
	task := cfg.Task
	if task == "" {
		task = DefaultTask
	}
	return filepath.Join(cfg.DataPath, task, cfg.Split.FileSuffix()+"_parlai.json")
}

// Dataset wraps a loaded list of episodes. The episode slice is never
// mutated after Load, so a Dataset may be shared by reference across
// any number of teachers.
type Dataset struct {
	episodes []types.Episode
	split    types.Split
}

// Load reads and parses the transcript file for the configured split.
// Malformed JSON or missing expected structure is a fatal data error,
// returned wrapped; there is no partial recovery.
func Load(cfg types.DatasetConfig) (*Dataset, error) {
	path := Path(cfg)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript file %s: %w", path, err)
	}

	var episodes []types.Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("parsing transcript file %s: %w", path, err)
	}

	return &Dataset{episodes: episodes, split: cfg.Split}, nil
}

// FromEpisodes wraps an already-loaded episode list. Tests and sharing
// callers use this to avoid re-reading the file.
func FromEpisodes(episodes []types.Episode, split types.Split) *Dataset {
	return &Dataset{episodes: episodes, split: split}
}

// Episodes returns the loaded episodes. Callers must treat the slice
// as read-only.
func (d *Dataset) Episodes() []types.Episode {
	return d.episodes
}

// Split returns the partition this dataset was loaded from.
func (d *Dataset) Split() types.Split {
	return d.split
}

// NumEpisodes returns the number of dialogues.
func (d *Dataset) NumEpisodes() int {
	return len(d.episodes)
}

// NumUtterances returns the total turn count across all dialogues.
func (d *Dataset) NumUtterances() int {
	n := 0
	for i := range d.episodes {
		n += len(d.episodes[i].Dialog)
	}
	return n
}

// NumWizardUtterances returns the total count of knowledge-grounded
// turns across all dialogues.
func (d *Dataset) NumWizardUtterances() int {
	n := 0
	for i := range d.episodes {
		for j := range d.episodes[i].Dialog {
			if d.episodes[i].Dialog[j].Speaker.IsWizard() {
				n++
			}
		}
	}
	return n
}
