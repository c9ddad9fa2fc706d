package ambiguity

import (
	"fmt"
	"strings"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"github.com/ppiankov/clarity/internal/score"
)

// Detector flags homophones, vague pronouns and vague words
type Detector struct {
	tables *rules.Tables
}

// New creates a Detector over the given tables
func New(tables *rules.Tables) *Detector {
	return &Detector{tables: tables}
}

type findingKey struct {
	kind model.AmbiguityKind
	word string
}

// Analyze scans the sentence word by word. The first occurrence of each
// (kind, word) pair yields one finding; repeats are suppressed.
func (d *Detector) Analyze(s model.Sentence) model.SentenceAmbiguity {
	findings := d.Find(s.Text)
	return model.SentenceAmbiguity{
		Sentence:     s,
		Ambiguities:  findings,
		ClarityScore: score.Clarity(len(findings)),
	}
}

// Find returns the deduplicated findings of one sentence in word order
func (d *Detector) Find(sentence string) []model.AmbiguityFinding {
	words := Words(sentence)
	findings := []model.AmbiguityFinding{}
	seen := make(map[findingKey]struct{})

	add := func(f model.AmbiguityFinding) {
		key := findingKey{kind: f.Kind, word: f.Word}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		findings = append(findings, f)
	}

	for i, w := range words {
		if h, ok := d.tables.Homophone(w); ok {
			add(homophoneFinding(w, h))
		}
		if d.tables.IsVaguePronoun(w) {
			add(vaguePronounFinding(w))
		}
		if d.tables.IsVagueWord(w) {
			add(vagueWordFinding(w))
		}
		for _, phrase := range d.tables.VaguePhrases() {
			if hasPrefixAt(words, i, phrase) {
				add(vagueWordFinding(strings.Join(phrase, " ")))
			}
		}
	}
	return findings
}

// Words lower-cases each whitespace-separated token and drops characters
// outside [a-z']. Tokens left empty are skipped.
func Words(sentence string) []string {
	fields := strings.Fields(sentence)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || r == '\'' {
				return r
			}
			return -1
		}, strings.ToLower(f))
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func hasPrefixAt(words []string, i int, phrase []string) bool {
	if i+len(phrase) > len(words) {
		return false
	}
	for k, p := range phrase {
		if words[i+k] != p {
			return false
		}
	}
	return true
}

func homophoneFinding(word string, h rules.Homophone) model.AmbiguityFinding {
	suggestion := fmt.Sprintf("Make sure you're using the correct word. %q is different from other homophones that sound similar.", word)
	if len(h.SoundsLike) > 0 {
		suggestion = fmt.Sprintf("Make sure you're using the correct word. %q sounds like %s but means something different.",
			word, quoteList(h.SoundsLike))
	}

	return model.AmbiguityFinding{
		Kind:        model.AmbiguityHomophone,
		Word:        word,
		Meaning:     strings.Join(h.Meanings, ", "),
		Example:     h.FirstExample(),
		Description: fmt.Sprintf("The word %q means %q", word, h.PrimaryMeaning()),
		Suggestion:  suggestion,
	}
}

func vaguePronounFinding(word string) model.AmbiguityFinding {
	return model.AmbiguityFinding{
		Kind:        model.AmbiguityVaguePronoun,
		Word:        word,
		Description: fmt.Sprintf("The pronoun %q is vague and unclear", word),
		Suggestion:  fmt.Sprintf("Replace %q with the specific noun it refers to.", word),
	}
}

func vagueWordFinding(word string) model.AmbiguityFinding {
	return model.AmbiguityFinding{
		Kind:        model.AmbiguityVagueWord,
		Word:        word,
		Description: fmt.Sprintf("The word %q is too vague and unclear", word),
		Suggestion:  fmt.Sprintf("Be specific. Replace %q with the actual things or details.", word),
	}
}

func quoteList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
