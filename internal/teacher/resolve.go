// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import (
	"sort"
	"strings"
)

// firstKey returns the lexically first key of a one-entry mapping, or
// "" when the mapping is empty. Transcript checked maps hold a single
// entry; sorting keeps behavior deterministic if one ever holds more.
func firstKey(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

// firstVal returns the value under the lexically first key, or "" when
// the mapping is empty.
func firstVal(m map[string]string) string {
	k := firstKey(m)
	if k == "" {
		return ""
	}
	return m[k]
}

// titleFromCheckedKey synthesizes a title candidate from a checked
// sentence key such as "self_Vermont_Syrup_0": the last
// underscore-delimited segment, with its characters joined by spaces.
// The character join reproduces the upstream annotation pipeline's
// output exactly; downstream label formatting depends on it.
func titleFromCheckedKey(key string) string {
	parts := strings.Split(key, "_")
	last := parts[len(parts)-1]
	chars := strings.Split(last, "")
	return strings.Join(chars, " ")
}

// ChosenTitleAndSentence resolves which (title, sentence) pair the
// wizard selected on a turn, given the knowledge visible at that turn.
//
// When the turn has no checked sentence, or the checked value is the
// sentinel, both results are TokenNoChosen. Otherwise the title is the
// checked-passage value if the sentence appears under it in the map,
// else the key-derived candidate under the same test, else the first
// title whose passage contains the sentence in map order ("" if none).
func ChosenTitleAndSentence(checkedPassage, checkedSentence map[string]string, know *KnowledgeMap) (title, sentence string) {
	if len(checkedSentence) == 0 {
		return TokenNoChosen, TokenNoChosen
	}

	sentence = firstVal(checkedSentence)
	if sentence == TokenNoChosen {
		return TokenNoChosen, sentence
	}

	cand1 := firstVal(checkedPassage)
	cand2 := titleFromCheckedKey(firstKey(checkedSentence))

	switch {
	case cand1 != "" && know.Contains(cand1, sentence):
		title = cand1
	case know.Contains(cand2, sentence):
		title = cand2
	default:
		for _, entry := range know.Entries() {
			for _, s := range entry.Sentences {
				if s == sentence {
					return entry.Title, sentence
				}
			}
		}
	}

	return title, sentence
}
