package kb

import (
	"strings"
	"testing"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		maxChars int
		want     []string
	}{
		{
			name:     "Empty content",
			content:  "   \n\n \t ",
			maxChars: 800,
			want:     nil,
		},
		{
			name:     "Single paragraph",
			content:  "Go is a programming language.",
			maxChars: 800,
			want:     []string{"Go is a programming language."},
		},
		{
			name:     "Paragraph boundaries",
			content:  "First paragraph here.\n\nSecond paragraph here.",
			maxChars: 800,
			want:     []string{"First paragraph here.", "Second paragraph here."},
		},
		{
			name:     "Blank line with spaces still splits",
			content:  "First.\n  \t\nSecond.",
			maxChars: 800,
			want:     []string{"First.", "Second."},
		},
		{
			name:     "Whitespace normalized inside a chunk",
			content:  "Go  is\na language.",
			maxChars: 800,
			want:     []string{"Go is a language."},
		},
		{
			name:     "Long paragraph split on sentences",
			content:  "One sentence here. Another sentence here. A third one.",
			maxChars: 40,
			want:     []string{"One sentence here.", "Another sentence here. A third one."},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SplitChunks(test.content, test.maxChars)

			if len(got) != len(test.want) {
				t.Fatalf("chunks: %d, want %d (%q)", len(got), len(test.want), got)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("chunk %d: %q, want %q", i, got[i], test.want[i])
				}
			}
		})
	}
}

func TestSplitChunks_SentenceSplitKeepsBound(t *testing.T) {
	// 39 chars per sentence, so two never fit into 40 together.
	sentence := strings.Repeat("word ", 7) + "end."
	content := strings.TrimSpace(strings.Repeat(sentence+" ", 5))

	chunks := SplitChunks(content, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected the paragraph to be split, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 60 {
			t.Errorf("chunk %d exceeds cap: %d chars", i, len(chunk))
		}
	}
}

func TestSplitChunks_OversizedSentenceSplitOnWords(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("verylongword ", 30))

	chunks := SplitChunks(content, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected word-level split, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 50 {
			t.Errorf("chunk %d exceeds cap: %d chars", i, len(chunk))
		}
	}
}
