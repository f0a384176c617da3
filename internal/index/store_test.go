// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/internal/teacher"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

func fixtureTeacher() teacher.Teacher {
	episodes := []types.Episode{
		{
			ChosenTopic:        "Coffee",
			ChosenTopicPassage: []string{"Coffee is a drink."},
			Dialog: []types.Turn{
				{Speaker: "1_Apprentice", Text: "I like coffee"},
				{
					Speaker:         "0_Wizard",
					Text:            "Coffee is a drink.",
					CheckedSentence: map[string]string{"wizard_Coffee_0": "Coffee is a drink."},
				},
			},
		},
		{
			ChosenTopic:        "Vermont",
			ChosenTopicPassage: []string{"Vermont makes maple syrup."},
			Dialog: []types.Turn{
				{Speaker: "1_Apprentice", Text: "Tell me about Vermont"},
				{
					Speaker:         "0_Wizard",
					Text:            "Vermont makes maple syrup.",
					CheckedSentence: map[string]string{"wizard_Vermont_0": "Vermont makes maple syrup."},
				},
			},
		},
	}
	data := dataset.FromEpisodes(episodes, types.SplitTrain)
	return teacher.NewDialogKnowledgeTeacher(data, teacher.DefaultTeacherConfig())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.IndexConfig{IndexDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ingestFixture(t *testing.T, s *Store) IngestSummary {
	t.Helper()
	var out bytes.Buffer
	summary, err := s.Ingest(context.Background(), fixtureTeacher(), "knowledge", types.SplitTrain, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "indexed: 2")
	return summary
}

func TestStoreIngest(t *testing.T) {
	s := newTestStore(t)
	summary := ingestFixture(t, s)

	assert.Equal(t, 2, summary.Indexed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Total())
}

func TestStoreIngest_ReplacesPreviousRun(t *testing.T) {
	s := newTestStore(t)
	ingestFixture(t, s)
	ingestFixture(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{Split: types.SplitTrain})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestStoreRetrieve_FullText(t *testing.T) {
	s := newTestStore(t)
	ingestFixture(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{Query: "syrup"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Vermont", results[0].ChosenTopic)
	assert.Equal(t, "Vermont makes maple syrup.", results[0].Label)
	assert.True(t, results[0].EpisodeDone)
}

func TestStoreRetrieve_Filters(t *testing.T) {
	s := newTestStore(t)
	ingestFixture(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{Topic: "Coffee"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Coffee", results[0].Text)

	results, err = s.Retrieve(context.Background(), QueryOptions{Split: types.SplitValid})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Retrieve(context.Background(), QueryOptions{Teacher: "other"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStoreRetrieve_MaxResults(t *testing.T) {
	s := newTestStore(t)
	ingestFixture(t, s)

	results, err := s.Retrieve(context.Background(), QueryOptions{
		Split:      types.SplitTrain,
		MaxResults: 1,
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Query: "coffee"}.IsEmpty())
	assert.False(t, QueryOptions{Topic: "Coffee"}.IsEmpty())
}

func TestStoreExport(t *testing.T) {
	s := newTestStore(t)
	ingestFixture(t, s)
	ctx := context.Background()

	require.NoError(t, s.ExportJSON(ctx, QueryOptions{}))
	require.NoError(t, s.ExportYAML(ctx, QueryOptions{}))

	jsonData, err := os.ReadFile(filepath.Join(s.indexDir, "export.json"))
	require.NoError(t, err)
	var fromJSON []QueryResult
	require.NoError(t, json.Unmarshal(jsonData, &fromJSON))
	assert.Len(t, fromJSON, 2)

	yamlData, err := os.ReadFile(filepath.Join(s.indexDir, "export.yaml"))
	require.NoError(t, err)
	var fromYAML []QueryResult
	require.NoError(t, yaml.Unmarshal(yamlData, &fromYAML))
	assert.Len(t, fromYAML, 2)
	assert.Equal(t, fromJSON, fromYAML)
}
