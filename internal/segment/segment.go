package segment

import (
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/clarity/internal/model"
)

// Split splits text into sentences in a single pass, recording byte offsets
// as it goes. A sentence ends at a run of terminators (. ! ?), optionally
// followed by closing quotes or brackets, when the run is followed by
// whitespace or the end of the text. Segments without any content besides
// whitespace and terminators are carried into the next sentence. Text after
// the last terminator becomes the final sentence.
func Split(text string) []model.Sentence {
	var sentences []model.Sentence

	start := 0 // start of the current segment
	hasContent := false

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if !isTerminator(r) {
			if !unicode.IsSpace(r) {
				hasContent = true
			}
			i += size
			continue
		}

		// Consume the terminator run and any closing punctuation
		end := i
		for end < len(text) {
			r2, s2 := utf8.DecodeRuneInString(text[end:])
			if !isTerminator(r2) && !isCloser(r2) {
				break
			}
			end += s2
		}

		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(next) {
				// e.g. "3.14", "e.g.x" - not a sentence boundary
				hasContent = true
				i = end
				continue
			}
		}

		if hasContent {
			if s, ok := trimmed(text, start, end); ok {
				sentences = append(sentences, s)
			}
			start = end
			hasContent = false
		}
		i = end
	}

	if start < len(text) {
		if s, ok := trimmed(text, start, len(text)); ok {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

// Texts returns the sentence strings of text
func Texts(text string) []string {
	sentences := Split(text)
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

// Owner returns the index of the sentence that owns the given document
// offset. Sentence i owns [start_i, start_i+1); the first sentence also owns
// any leading text and the last owns everything after it. Returns -1 when
// there are no sentences.
func Owner(sentences []model.Sentence, offset int) int {
	if len(sentences) == 0 {
		return -1
	}
	owner := 0
	for i := 1; i < len(sentences); i++ {
		if offset < sentences[i].Start {
			break
		}
		owner = i
	}
	return owner
}

// trimmed builds a sentence from text[start:end] with surrounding whitespace removed
func trimmed(text string, start, end int) (model.Sentence, bool) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start == end {
		return model.Sentence{}, false
	}
	return model.Sentence{Text: text[start:end], Start: start, End: end}, true
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}
