package model

// VoiceType is the voice classification of a sentence
type VoiceType string

const (
	VoiceActive  VoiceType = "active"
	VoicePassive VoiceType = "passive"
	VoiceUnclear VoiceType = "unclear" // terminal: no conversion attempted
)

// Direction is the direction of a voice conversion
type Direction string

const (
	PassiveToActive Direction = "passive-to-active"
	ActiveToPassive Direction = "active-to-passive"
)

// VoiceSuggestion is a synthesized rewrite of a sentence into the opposite voice
type VoiceSuggestion struct {
	Direction   Direction `json:"type"`
	Original    string    `json:"original"`
	Converted   string    `json:"suggested"`
	Rule        string    `json:"rule"`
	Explanation string    `json:"explanation"`
	Tone        string    `json:"tone"`
}

// SentenceVoice is the voice view of one sentence
type SentenceVoice struct {
	Sentence    Sentence          `json:"sentence"`
	VoiceType   VoiceType         `json:"voice_type"`
	Suggestions []VoiceSuggestion `json:"suggestions"`
}

// VoiceResult is returned by the voice analysis operation
type VoiceResult struct {
	SentenceAnalyses []SentenceVoice `json:"sentence_analyses"`
}
