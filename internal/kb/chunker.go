package kb

import (
	"regexp"
	"strings"
)

var (
	paragraphRE  = regexp.MustCompile(`\n[\t ]*\n`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Normalize collapses all whitespace runs to single spaces and trims the
// result. Dedup hashes are computed over normalized content, so documents
// that differ only in formatting map to the same chunks.
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// SplitChunks splits document content on paragraph boundaries and caps each
// chunk at maxChars so scoring and enhancement operate on bounded units.
// Oversized paragraphs are re-split on sentence boundaries, and oversized
// sentences on word boundaries. Returns normalized, non-empty chunks.
func SplitChunks(content string, maxChars int) []string {
	var chunks []string
	for _, para := range paragraphRE.Split(content, -1) {
		para = Normalize(para)
		if para == "" {
			continue
		}
		if len(para) <= maxChars {
			chunks = append(chunks, para)
			continue
		}
		chunks = append(chunks, splitLongParagraph(para, maxChars)...)
	}
	return chunks
}

func splitLongParagraph(para string, maxChars int) []string {
	var chunks []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
	}

	for _, sentence := range splitSentences(para) {
		if len(sentence) > maxChars {
			flush()
			chunks = append(chunks, splitWords(sentence, maxChars)...)
			continue
		}
		if buf.Len() > 0 && buf.Len()+1+len(sentence) > maxChars {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
	}
	flush()

	return chunks
}

func splitSentences(s string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(s); i++ {
		if (s[i] == '.' || s[i] == '!' || s[i] == '?') && (i+1 == len(s) || s[i+1] == ' ') {
			if sent := strings.TrimSpace(s[start : i+1]); sent != "" {
				sentences = append(sentences, sent)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func splitWords(s string, maxChars int) []string {
	var chunks []string
	var buf strings.Builder
	for word := range strings.FieldsSeq(s) {
		if buf.Len() > 0 && buf.Len()+1+len(word) > maxChars {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(word)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}
