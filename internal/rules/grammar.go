package rules

import (
	"regexp"
	"strings"

	"github.com/ppiankov/clarity/internal/model"
)

// ReplacementKind tags how a rule builds its suggested replacement
type ReplacementKind int

const (
	ReplaceMatch   ReplacementKind = iota // matched span, trimmed of whitespace
	ReplaceLiteral                        // fixed string
	ReplaceFunc                           // pure function of the matched span
)

// Replacement produces the suggested replacement for a rule match
type Replacement struct {
	Kind    ReplacementKind
	Literal string
	Func    func(match string) string
}

// Apply returns the replacement for the matched span. ReplaceFunc may panic;
// callers applying untrusted rules must recover.
func (r Replacement) Apply(match string) string {
	switch r.Kind {
	case ReplaceLiteral:
		return r.Literal
	case ReplaceFunc:
		if r.Func != nil {
			return r.Func(match)
		}
	}
	return strings.TrimSpace(match)
}

// GrammarRule is a single regex rule of the local grammar table
type GrammarRule struct {
	ID          string
	Category    model.Category
	Message     string
	Pattern     *regexp.Regexp
	Replacement Replacement
}

// defaultGrammarRules is the local fallback table. Order is significant:
// issues are reported rule by rule, then match by match.
func defaultGrammarRules() []GrammarRule {
	return []GrammarRule{
		{
			ID:       "AGREEMENT_THIRD_PERSON",
			Category: model.CategoryGrammar,
			Message:  "Subject-verb agreement: use 'has/does/was/is' with he/she/it",
			Pattern:  regexp.MustCompile(`(?i)\b(he|she|it)\s+(have|do|were|are)\b`),
		},
		{
			ID:       "AGREEMENT_NON_THIRD_PERSON",
			Category: model.CategoryGrammar,
			Message:  "Subject-verb agreement: use 'have/do/were' with these subjects",
			// \b after the verb already rejects contractions such as "wasn't"
			Pattern: regexp.MustCompile(`(?i)\b(I|you|we|they)\s+(has|does|was)\b`),
		},
		{
			ID:       "YOUR_YOURE",
			Category: model.CategoryGrammar,
			Message:  "Grammar: should be 'you're' (you are), not 'your' (possessive)",
			Pattern:  regexp.MustCompile(`(?i)\byour\s+(going|coming|being|arriving|leaving|staying|running|walking)\b`),
		},
		{
			ID:       "THEIR_THEYRE",
			Category: model.CategoryGrammar,
			Message:  "Grammar: should be 'they're' (they are), not 'there' or 'their'",
			Pattern:  regexp.MustCompile(`(?i)\b(their|there)\s+going\b`),
		},
		{
			ID:       "SPELLING_RECEIVE",
			Category: model.CategoryTypos,
			Message:  "Spelling: should be 'receive' (i before e after c)",
			Pattern:  regexp.MustCompile(`(?i)\brecieve\b`),
		},
		{
			ID:       "SPELLING_OCCURRED",
			Category: model.CategoryTypos,
			Message:  "Spelling: should be 'occurred' (double c, double r)",
			Pattern:  regexp.MustCompile(`(?i)\boccured\b`),
		},
		{
			ID:       "SPELLING_SEPARATE",
			Category: model.CategoryTypos,
			Message:  "Spelling: should be 'separate'",
			Pattern:  regexp.MustCompile(`(?i)\bseperate\b`),
		},
		{
			ID:       "SPELLING_NECESSARY",
			Category: model.CategoryTypos,
			Message:  "Spelling: should be 'necessary' (one c, two s's)",
			Pattern:  regexp.MustCompile(`(?i)\bneccessary\b`),
		},
		{
			ID:       "DOUBLE_SPACE",
			Category: model.CategoryTypography,
			Message:  "Whitespace: remove extra spaces",
			Pattern:  regexp.MustCompile(`[ \t]{2,}`),
		},
		{
			ID:       "MISSING_PERIOD",
			Category: model.CategoryPunctuation,
			Message:  "Punctuation: possible missing period between sentences",
			Pattern:  regexp.MustCompile(`[a-z]\s+[A-Z]`),
		},
	}
}
