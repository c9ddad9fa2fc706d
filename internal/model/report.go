package model

import "time"

// Request describes a single analysis request
type Request struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"` // e.g. "en-US", "auto"
	Style    string `json:"style,omitempty"`    // register hint: formal, academic, business, casual...
	Source   string `json:"source,omitempty"`   // where the text came from (file path, "stdin", "api")
}

// Report is the complete output of a full analysis
type Report struct {
	ID            string        `json:"id"`
	Source        string        `json:"source,omitempty"`
	Language      string        `json:"language"`
	Style         string        `json:"style,omitempty"`
	GrammarSource GrammarSource `json:"grammar_source"`
	AnalyzedAt    time.Time     `json:"analyzed_at"`

	Sentences []SentenceAnalysis `json:"sentences"`
	Issues    []Issue            `json:"issues"` // document offsets

	Summary Summary `json:"summary"`

	// Degraded lists analyzer sections that failed and were left empty
	Degraded []string `json:"degraded,omitempty"`
}

// Summary aggregates per-sentence results into document-level scores.
// Clarity and Grammar are nil when the document has no sentences.
type Summary struct {
	Sentences   int      `json:"sentences"`
	Issues      int      `json:"issues"`
	Ambiguities int      `json:"ambiguities"`
	Active      int      `json:"active"`
	Passive     int      `json:"passive"`
	Unclear     int      `json:"unclear"`
	Clarity     *int     `json:"clarity,omitempty"`
	Grammar     *int     `json:"grammar,omitempty"`
	Signals     []Signal `json:"signals"`
}

// Signal is a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // formula and inputs
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalGrammarDensity   SignalType = "grammar_density"
	SignalAmbiguityDensity SignalType = "ambiguity_density"
	SignalPassiveRatio     SignalType = "passive_ratio"
	SignalDegradedGrammar  SignalType = "degraded_grammar" // remote service unavailable, local rules used
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
