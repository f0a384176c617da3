// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists teacher-generated examples in a local SQLite
// database with full-text search over their knowledge, for inspection
// and export.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dialogue-engine/internal/teacher"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

const dbFile = "dialogue.db"

// Store manages the example index SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the index database at indexDir/dialogue.db,
// creating the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS examples (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			split TEXT NOT NULL,
			teacher TEXT NOT NULL,
			episode_idx INTEGER NOT NULL,
			entry_idx INTEGER NOT NULL,
			chosen_topic TEXT,
			text TEXT NOT NULL,
			label TEXT,
			label_candidates TEXT,
			title TEXT,
			checked_sentence TEXT,
			knowledge TEXT,
			episode_done INTEGER NOT NULL,
			UNIQUE(split, teacher, episode_idx, entry_idx)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_split ON examples(split)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_topic ON examples(chosen_topic)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='examples_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE examples_fts USING fts5(text, knowledge, content=examples, content_rowid=rowid)`,
			`CREATE TRIGGER examples_ai AFTER INSERT ON examples BEGIN
				INSERT INTO examples_fts(rowid, text, knowledge) VALUES (new.rowid, new.text, new.knowledge);
			END`,
			`CREATE TRIGGER examples_ad AFTER DELETE ON examples BEGIN
				INSERT INTO examples_fts(examples_fts, rowid, text, knowledge) VALUES('delete', old.rowid, old.text, old.knowledge);
			END`,
			`CREATE TRIGGER examples_au AFTER UPDATE ON examples BEGIN
				INSERT INTO examples_fts(examples_fts, rowid, text, knowledge) VALUES('delete', old.rowid, old.text, old.knowledge);
				INSERT INTO examples_fts(rowid, text, knowledge) VALUES (new.rowid, new.text, new.knowledge);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an index ingestion run.
type IngestSummary struct {
	Indexed int
	Failed  int
}

// Total returns the number of examples processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Failed
}

// Ingest walks every example the teacher derives for the split and
// writes one row per example, replacing any previous rows for the same
// split and teacher.
func (s *Store) Ingest(ctx context.Context, t teacher.Teacher, teacherID string, split types.Split, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM examples WHERE split = ? AND teacher = ?`, string(split), teacherID,
	); err != nil {
		return IngestSummary{}, fmt.Errorf("deleting old examples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO examples (split, teacher, episode_idx, entry_idx, chosen_topic,
			text, label, label_candidates, title, checked_sentence, knowledge, episode_done)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary IngestSummary
	for ep := 0; ep < t.EpisodeCount(); ep++ {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		for entry := 0; entry < t.EpisodeLength(ep); entry++ {
			ex, err := t.Get(ep, entry)
			if err != nil {
				fmt.Fprintf(w, "failed  episode %d entry %d: %v\n", ep, entry, err)
				summary.Failed++
				continue
			}

			label := ""
			if len(ex.Labels) > 0 {
				label = ex.Labels[0]
			}
			candsJSON, _ := json.Marshal(ex.LabelCandidates)

			if _, err := stmt.ExecContext(ctx,
				string(split), teacherID, ep, entry, ex.ChosenTopic,
				ex.Text, label, string(candsJSON), ex.Title, ex.CheckedSentence,
				ex.KnowledgeString(), ex.EpisodeDone,
			); err != nil {
				return summary, fmt.Errorf("inserting example %d/%d: %w", ep, entry, err)
			}
			summary.Indexed++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "indexed: %d, failed: %d\n", summary.Indexed, summary.Failed)
	return summary, nil
}
