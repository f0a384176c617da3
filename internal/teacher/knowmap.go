// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import "github.com/pdiddy/dialogue-engine/pkg/types"

// KnowledgeEntry is one title with its candidate sentences.
type KnowledgeEntry struct {
	Title     string
	Sentences []string
}

// KnowledgeMap is an insertion-ordered mapping from topic title to
// candidate sentences. Candidate ordering and the resolver's fallback
// scan both depend on insertion order, so a plain Go map won't do.
// Merging is first-writer-wins: a title already present keeps its
// original sentences.
type KnowledgeMap struct {
	entries []KnowledgeEntry
	byTitle map[string]int
}

// NewKnowledgeMap returns an empty map.
func NewKnowledgeMap() *KnowledgeMap {
	return &KnowledgeMap{byTitle: make(map[string]int)}
}

// Add inserts a title with its sentences unless the title is already
// present.
func (m *KnowledgeMap) Add(title string, sentences []string) {
	if _, ok := m.byTitle[title]; ok {
		return
	}
	m.byTitle[title] = len(m.entries)
	m.entries = append(m.entries, KnowledgeEntry{Title: title, Sentences: sentences})
}

// MergePassages adds every passage entry in order, first-writer-wins.
func (m *KnowledgeMap) MergePassages(passages []types.Passage) {
	for _, passage := range passages {
		for title, sentences := range passage {
			m.Add(title, sentences)
		}
	}
}

// Sentences returns the sentence list for title and whether the title
// is present.
func (m *KnowledgeMap) Sentences(title string) ([]string, bool) {
	i, ok := m.byTitle[title]
	if !ok {
		return nil, false
	}
	return m.entries[i].Sentences, true
}

// Contains reports whether sentence appears in title's passage.
func (m *KnowledgeMap) Contains(title, sentence string) bool {
	i, ok := m.byTitle[title]
	if !ok {
		return false
	}
	for _, s := range m.entries[i].Sentences {
		if s == sentence {
			return true
		}
	}
	return false
}

// Entries returns the entries in insertion order. Callers must treat
// the slice as read-only.
func (m *KnowledgeMap) Entries() []KnowledgeEntry {
	return m.entries
}

// Len returns the number of titles.
func (m *KnowledgeMap) Len() int {
	return len(m.entries)
}
