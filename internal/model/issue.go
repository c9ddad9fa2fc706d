package model

// Category classifies a grammar issue. Values follow the category IDs used
// by LanguageTool so remote and local issues share one vocabulary.
type Category string

const (
	CategoryGrammar     Category = "GRAMMAR"
	CategoryTypos       Category = "TYPOS"
	CategoryPunctuation Category = "PUNCTUATION"
	CategoryStyle       Category = "STYLE"
	CategoryTypography  Category = "TYPOGRAPHY"
	CategoryOther       Category = "MISC"
)

// Issue is a single positioned grammar finding. Offset and Length are byte
// positions relative to the text the rule ran against.
type Issue struct {
	RuleID       string   `json:"rule_id,omitempty"`
	Category     Category `json:"category"`
	Message      string   `json:"message"`
	ShortMessage string   `json:"short_message,omitempty"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Replacements []string `json:"replacements"`
}

// End returns the byte offset just past the issue span
func (i Issue) End() int {
	return i.Offset + i.Length
}

// GrammarSource records which backend produced the grammar issues
type GrammarSource string

const (
	GrammarSourceRemote GrammarSource = "remote"
	GrammarSourceLocal  GrammarSource = "local"
	GrammarSourceNone   GrammarSource = "none" // empty input, nothing checked
)

// SentenceGrammar is the grammar view of one sentence
type SentenceGrammar struct {
	Sentence Sentence `json:"sentence"`
	Issues   []Issue  `json:"issues"`
	Score    int      `json:"score"`
}

// GrammarResult is returned by the grammar analysis operation
type GrammarResult struct {
	Issues    []Issue           `json:"issues"`
	Source    GrammarSource     `json:"source"`
	Sentences []SentenceGrammar `json:"sentences"`
}
