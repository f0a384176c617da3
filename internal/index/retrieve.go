// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/dialogue-engine/pkg/types"
)

// QueryOptions holds parameters for example index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over example text and
	// knowledge.
	Query string

	// Split filters by dataset partition.
	Split types.Split

	// Teacher filters by the teacher that produced the example.
	Teacher string

	// Topic filters by chosen topic.
	Topic string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Split == "" && q.Teacher == "" && q.Topic == ""
}

// QueryResult is one indexed example with its provenance.
type QueryResult struct {
	Split           string   `json:"split" yaml:"split"`
	Teacher         string   `json:"teacher" yaml:"teacher"`
	EpisodeIdx      int      `json:"episode_idx" yaml:"episode_idx"`
	EntryIdx        int      `json:"entry_idx" yaml:"entry_idx"`
	ChosenTopic     string   `json:"chosen_topic" yaml:"chosen_topic"`
	Text            string   `json:"text" yaml:"text"`
	Label           string   `json:"label" yaml:"label"`
	LabelCandidates []string `json:"label_candidates,omitempty" yaml:"label_candidates,omitempty"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	CheckedSentence string   `json:"checked_sentence,omitempty" yaml:"checked_sentence,omitempty"`
	Knowledge       string   `json:"knowledge,omitempty" yaml:"knowledge,omitempty"`
	EpisodeDone     bool     `json:"episode_done" yaml:"episode_done"`
}

// Retrieve queries the index with optional full-text search and
// structured filters. Full-text queries rank by relevance; filter-only
// queries sort by episode and entry.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT e.split, e.teacher, e.episode_idx, e.entry_idx, e.chosen_topic,
				e.text, e.label, e.label_candidates, e.title, e.checked_sentence,
				e.knowledge, e.episode_done
			FROM examples_fts
			JOIN examples e ON e.rowid = examples_fts.rowid
			WHERE examples_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT e.split, e.teacher, e.episode_idx, e.entry_idx, e.chosen_topic,
				e.text, e.label, e.label_candidates, e.title, e.checked_sentence,
				e.knowledge, e.episode_done
			FROM examples e
			WHERE 1=1`)
	}

	if opts.Split != "" {
		qb.WriteString(` AND e.split = ?`)
		args = append(args, string(opts.Split))
	}
	if opts.Teacher != "" {
		qb.WriteString(` AND e.teacher = ?`)
		args = append(args, opts.Teacher)
	}
	if opts.Topic != "" {
		qb.WriteString(` AND e.chosen_topic = ?`)
		args = append(args, opts.Topic)
	}

	if useFTS {
		qb.WriteString(` ORDER BY examples_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY e.episode_idx, e.entry_idx`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying example index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr        QueryResult
			candsJSON sql.NullString
		)
		if err := rows.Scan(
			&qr.Split, &qr.Teacher, &qr.EpisodeIdx, &qr.EntryIdx, &qr.ChosenTopic,
			&qr.Text, &qr.Label, &candsJSON, &qr.Title, &qr.CheckedSentence,
			&qr.Knowledge, &qr.EpisodeDone,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if candsJSON.Valid {
			json.Unmarshal([]byte(candsJSON.String), &qr.LabelCandidates)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
