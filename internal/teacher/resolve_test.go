// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teacher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstKeyFirstVal(t *testing.T) {
	assert.Equal(t, "", firstKey(nil))
	assert.Equal(t, "", firstVal(nil))
	assert.Equal(t, "", firstKey(map[string]string{}))

	m := map[string]string{"self_Coffee_0": "Coffee is a drink."}
	assert.Equal(t, "self_Coffee_0", firstKey(m))
	assert.Equal(t, "Coffee is a drink.", firstVal(m))
}

func TestTitleFromCheckedKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		// The last underscore segment's characters are joined with
		// spaces, matching the annotation pipeline exactly.
		{"self_Vermont_Syrup_0", "0"},
		{"wizard_Coffee", "C o f f e e"},
		{"partner_Tea_Culture", "C u l t u r e"},
		{"plain", "p l a i n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleFromCheckedKey(tt.key), "key %q", tt.key)
	}
}

func TestKnowledgeMap_FirstWriterWins(t *testing.T) {
	m := NewKnowledgeMap()
	m.Add("Coffee", []string{"Coffee is a drink."})
	m.Add("Coffee", []string{"Coffee is brown."})
	m.Add("Tea", []string{"Tea is steeped."})

	sentences, ok := m.Sentences("Coffee")
	assert.True(t, ok)
	assert.Equal(t, []string{"Coffee is a drink."}, sentences)
	assert.Equal(t, 2, m.Len())
}

func TestKnowledgeMap_InsertionOrder(t *testing.T) {
	m := NewKnowledgeMap()
	m.Add("Zebra", []string{"z"})
	m.Add("Apple", []string{"a"})
	m.Add("Mango", []string{"m"})

	var titles []string
	for _, e := range m.Entries() {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, titles)
}

func TestChosenTitleAndSentence(t *testing.T) {
	know := NewKnowledgeMap()
	know.Add("Coffee", []string{"Coffee is a drink.", "Coffee is brown."})
	know.Add("T e a", []string{"Tea is steeped."})
	know.Add("Syrup", []string{"Syrup is sweet."})

	tests := []struct {
		name           string
		checkedPassage map[string]string
		checkedSent    map[string]string
		wantTitle      string
		wantSentence   string
	}{
		{
			name:         "no checked sentence",
			checkedSent:  nil,
			wantTitle:    TokenNoChosen,
			wantSentence: TokenNoChosen,
		},
		{
			name:         "sentinel checked value",
			checkedSent:  map[string]string{"no_passages_used": TokenNoChosen},
			wantTitle:    TokenNoChosen,
			wantSentence: TokenNoChosen,
		},
		{
			name:           "checked passage title matches",
			checkedPassage: map[string]string{"self": "Coffee"},
			checkedSent:    map[string]string{"self_Coffee_0": "Coffee is a drink."},
			wantTitle:      "Coffee",
			wantSentence:   "Coffee is a drink.",
		},
		{
			name:           "checked passage title wrong, key-derived title matches",
			checkedPassage: map[string]string{"self": "Coffee"},
			checkedSent:    map[string]string{"self_Culture_Tea": "Tea is steeped."},
			wantTitle:      "T e a",
			wantSentence:   "Tea is steeped.",
		},
		{
			name:         "fallback scan in insertion order",
			checkedSent:  map[string]string{"self_Unrelated_9": "Syrup is sweet."},
			wantTitle:    "Syrup",
			wantSentence: "Syrup is sweet.",
		},
		{
			name:         "sentence nowhere in knowledge yields empty title",
			checkedSent:  map[string]string{"self_Missing_0": "Nothing matches this."},
			wantTitle:    "",
			wantSentence: "Nothing matches this.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, sentence := ChosenTitleAndSentence(tt.checkedPassage, tt.checkedSent, know)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantSentence, sentence)
		})
	}
}

func TestChosenTitleAndSentence_SentinelIgnoresKnowledge(t *testing.T) {
	// The sentinel short-circuits regardless of mapping contents.
	know := NewKnowledgeMap()
	know.Add(TokenNoChosen, []string{TokenNoChosen})

	title, sentence := ChosenTitleAndSentence(nil,
		map[string]string{"self_X_0": TokenNoChosen}, know)
	assert.Equal(t, TokenNoChosen, title)
	assert.Equal(t, TokenNoChosen, sentence)
}
