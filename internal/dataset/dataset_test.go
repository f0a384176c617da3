// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dialogue-engine/pkg/types"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.DatasetConfig
		want string
	}{
		{
			name: "train split",
			cfg:  types.DatasetConfig{DataPath: "data", Task: "topical_chat", Split: types.SplitTrain},
			want: filepath.Join("data", "topical_chat", "train_parlai.json"),
		},
		{
			name: "valid split uses rare variant",
			cfg:  types.DatasetConfig{DataPath: "data", Task: "topical_chat", Split: types.SplitValid},
			want: filepath.Join("data", "topical_chat", "valid_rare_parlai.json"),
		},
		{
			name: "test split uses rare variant",
			cfg:  types.DatasetConfig{DataPath: "/d", Task: "topical_chat", Split: types.SplitTest},
			want: filepath.Join("/d", "topical_chat", "test_rare_parlai.json"),
		},
		{
			name: "empty task falls back to default",
			cfg:  types.DatasetConfig{DataPath: "data", Split: types.SplitTrain},
			want: filepath.Join("data", "topical_chat", "train_parlai.json"),
		},
		{
			name: "empty split defaults to train",
			cfg:  types.DatasetConfig{DataPath: "data", Task: "custom"},
			want: filepath.Join("data", "custom", "train_parlai.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Path(tt.cfg))
		})
	}
}

func writeTranscript(t *testing.T, episodes []types.Episode) types.DatasetConfig {
	t.Helper()
	dir := t.TempDir()
	taskDir := filepath.Join(dir, "topical_chat")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))

	data, err := json.Marshal(episodes)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "train_parlai.json"), data, 0o644))

	return types.DatasetConfig{DataPath: dir, Task: "topical_chat", Split: types.SplitTrain}
}

func TestLoad(t *testing.T) {
	episodes := []types.Episode{
		{
			ChosenTopic:        "Coffee",
			ChosenTopicPassage: []string{"Coffee is a drink."},
			Dialog: []types.Turn{
				{Speaker: "1_Apprentice", Text: "I like coffee"},
				{Speaker: "0_Wizard", Text: "Coffee is a drink."},
			},
		},
		{
			ChosenTopic: "Tea",
			Dialog: []types.Turn{
				{Speaker: "1_Apprentice", Text: "Tell me about tea"},
			},
		},
	}
	cfg := writeTranscript(t, episodes)

	data, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, data.NumEpisodes())
	assert.Equal(t, 3, data.NumUtterances())
	assert.Equal(t, 1, data.NumWizardUtterances())
	assert.Equal(t, types.SplitTrain, data.Split())
	assert.Equal(t, "Coffee", data.Episodes()[0].ChosenTopic)
	assert.Equal(t, []string{"Coffee is a drink."}, data.Episodes()[0].ChosenTopicPassage)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := types.DatasetConfig{DataPath: t.TempDir(), Task: "topical_chat", Split: types.SplitTrain}
	_, err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading transcript file")
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	taskDir := filepath.Join(dir, "topical_chat")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "train_parlai.json"), []byte("{not json"), 0o644))

	_, err := Load(types.DatasetConfig{DataPath: dir, Task: "topical_chat", Split: types.SplitTrain})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing transcript file")
}

func TestFromEpisodes_SharesByReference(t *testing.T) {
	episodes := []types.Episode{{ChosenTopic: "Coffee"}}
	a := FromEpisodes(episodes, types.SplitValid)
	b := FromEpisodes(a.Episodes(), types.SplitValid)

	assert.Equal(t, 1, b.NumEpisodes())
	// Same backing array, not a copy.
	assert.Equal(t, &a.Episodes()[0], &b.Episodes()[0])
}
