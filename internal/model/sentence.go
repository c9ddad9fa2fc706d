package model

// Sentence is a trimmed span of the source text. Start and End are byte
// offsets into the source, so source[Start:End] == Text.
type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// SentenceAnalysis is the per-sentence output record of a full analysis
type SentenceAnalysis struct {
	Sentence         Sentence           `json:"sentence"`
	Issues           []Issue            `json:"issues"`
	Voice            VoiceType          `json:"voice"`
	VoiceSuggestions []VoiceSuggestion  `json:"voice_suggestions"`
	Ambiguities      []AmbiguityFinding `json:"ambiguities"`
	ClarityScore     int                `json:"clarity_score"`
	GrammarScore     int                `json:"grammar_score"`
}
