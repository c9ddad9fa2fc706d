package model

// AmbiguityKind classifies an ambiguity finding
type AmbiguityKind string

const (
	AmbiguityHomophone    AmbiguityKind = "homophone"
	AmbiguityVaguePronoun AmbiguityKind = "vague-pronoun"
	AmbiguityVagueWord    AmbiguityKind = "vague-word"
)

// AmbiguityFinding flags a word whose meaning or referent may be unclear
type AmbiguityFinding struct {
	Kind        AmbiguityKind `json:"type"`
	Word        string        `json:"word"`
	Meaning     string        `json:"meaning,omitempty"` // homophones only
	Example     string        `json:"example,omitempty"` // homophones only
	Description string        `json:"description"`
	Suggestion  string        `json:"suggestion"`
}

// SentenceAmbiguity is the ambiguity view of one sentence
type SentenceAmbiguity struct {
	Sentence     Sentence           `json:"sentence"`
	Ambiguities  []AmbiguityFinding `json:"ambiguities"`
	ClarityScore int                `json:"clarity_score"`
}

// AmbiguityResult is returned by the ambiguity analysis operation
type AmbiguityResult struct {
	SentenceAnalyses []SentenceAmbiguity `json:"sentence_analyses"`
}
