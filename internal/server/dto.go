package server

import "github.com/ppiankov/clarity/internal/model"

// TextRequest is the body of every analysis route. Language and Style are
// ignored by the voice and ambiguity routes.
type TextRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Style    string `json:"style,omitempty"`
}

// GrammarResponse mirrors the LanguageTool envelope with the issues under
// "matches", plus the backend that produced them and the per-sentence view
type GrammarResponse struct {
	Matches   []model.Issue           `json:"matches"`
	Source    model.GrammarSource     `json:"source"`
	Sentences []model.SentenceGrammar `json:"sentences"`
}

type VoiceResponse struct {
	Analyses []model.SentenceVoice `json:"analyses"`
}

type AmbiguityResponse struct {
	Analyses []model.SentenceAmbiguity `json:"analyses"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
