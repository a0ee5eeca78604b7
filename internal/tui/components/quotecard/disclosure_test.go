package quotecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLeadingSentence(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFirst string
		wantRest  string
	}{
		{
			name:      "single sentence",
			text:      "What specifically was confusing about it?",
			wantFirst: "What specifically was confusing about it?",
			wantRest:  "",
		},
		{
			name:      "two sentences",
			text:      "First sentence here. And then a second sentence with more detail.",
			wantFirst: "First sentence here.",
			wantRest:  "And then a second sentence with more detail.",
		},
		{
			name:      "question then followup",
			text:      "Why did you hesitate? Walk me through it.",
			wantFirst: "Why did you hesitate?",
			wantRest:  "Walk me through it.",
		},
		{
			name:      "abbreviation splits anyway",
			text:      "Tell me about the U.S. release. What changed?",
			wantFirst: "Tell me about the U.S.",
			wantRest:  "release. What changed?",
		},
		{
			name:      "terminator at end of string only",
			text:      "One sentence.",
			wantFirst: "One sentence.",
			wantRest:  "",
		},
		{
			name:      "no terminator at all",
			text:      "trailing fragment with no punctuation",
			wantFirst: "trailing fragment with no punctuation",
			wantRest:  "",
		},
		{
			name:      "empty",
			text:      "",
			wantFirst: "",
			wantRest:  "",
		},
		{
			name:      "whitespace only",
			text:      "   \n ",
			wantFirst: "",
			wantRest:  "",
		},
		{
			name:      "period mid-word does not split",
			text:      "version 2.5 changed things",
			wantFirst: "version 2.5 changed things",
			wantRest:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, rest := SplitLeadingSentence(tt.text)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
