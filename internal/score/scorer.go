package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/clarity/internal/model"
)

const (
	clarityPenalty = 20 // points per ambiguity finding
	grammarPenalty = 15 // points per grammar issue
)

// Clarity returns max(0, 100 - 20*ambiguities)
func Clarity(ambiguities int) int {
	return penalize(ambiguities, clarityPenalty)
}

// Grammar returns max(0, 100 - 15*issues)
func Grammar(issues int) int {
	return penalize(issues, grammarPenalty)
}

func penalize(count, per int) int {
	score := 100 - per*count
	if score < 0 {
		return 0
	}
	return score
}

// Mean returns the rounded arithmetic mean of scores. ok is false for an
// empty list, where the mean is undefined.
func Mean(scores []int) (mean int, ok bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores)))), true
}

// Scorer aggregates sentence analyses into a document summary and
// generates diagnostic signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Summarize builds the document summary. Document scores are left nil
// when there are no sentences.
func (s *Scorer) Summarize(sentences []model.SentenceAnalysis, source model.GrammarSource) model.Summary {
	summary := model.Summary{
		Sentences: len(sentences),
		Signals:   []model.Signal{},
	}

	clarity := make([]int, 0, len(sentences))
	grammar := make([]int, 0, len(sentences))
	for _, sa := range sentences {
		summary.Issues += len(sa.Issues)
		summary.Ambiguities += len(sa.Ambiguities)
		switch sa.Voice {
		case model.VoiceActive:
			summary.Active++
		case model.VoicePassive:
			summary.Passive++
		default:
			summary.Unclear++
		}
		clarity = append(clarity, sa.ClarityScore)
		grammar = append(grammar, sa.GrammarScore)
	}

	if mean, ok := Mean(clarity); ok {
		summary.Clarity = &mean
	}
	if mean, ok := Mean(grammar); ok {
		summary.Grammar = &mean
	}

	if source == model.GrammarSourceLocal {
		summary.Signals = append(summary.Signals, degradedSignal())
	}
	if len(sentences) == 0 {
		return summary
	}

	summary.Signals = append(summary.Signals,
		s.grammarDensity(summary),
		s.ambiguityDensity(summary),
	)
	if voiced := summary.Active + summary.Passive; voiced > 0 {
		summary.Signals = append(summary.Signals, s.passiveRatio(summary, voiced))
	}
	return summary
}

func (s *Scorer) grammarDensity(sum model.Summary) model.Signal {
	density := float64(sum.Issues) / float64(sum.Sentences)

	severity := model.SeverityInfo
	if density >= 1 {
		severity = model.SeverityCritical
	} else if density >= 0.5 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalGrammarDensity,
		Severity:    severity,
		Description: fmt.Sprintf("Grammar issues per sentence: %.2f", density),
		Data: map[string]interface{}{
			"issues":    sum.Issues,
			"sentences": sum.Sentences,
			"density":   density,
			"score":     derefOr(sum.Grammar, 0),
			"formula":   "mean(max(0, 100 - 15 * sentence_issues))",
		},
	}
}

func (s *Scorer) ambiguityDensity(sum model.Summary) model.Signal {
	density := float64(sum.Ambiguities) / float64(sum.Sentences)

	severity := model.SeverityInfo
	if density >= 2 {
		severity = model.SeverityCritical
	} else if density >= 1 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalAmbiguityDensity,
		Severity:    severity,
		Description: fmt.Sprintf("Ambiguities per sentence: %.2f", density),
		Data: map[string]interface{}{
			"ambiguities": sum.Ambiguities,
			"sentences":   sum.Sentences,
			"density":     density,
			"score":       derefOr(sum.Clarity, 0),
			"formula":     "mean(max(0, 100 - 20 * sentence_ambiguities))",
		},
	}
}

func (s *Scorer) passiveRatio(sum model.Summary, voiced int) model.Signal {
	ratio := float64(sum.Passive) / float64(voiced)

	severity := model.SeverityInfo
	if ratio > 0.5 {
		severity = model.SeverityCritical
	} else if ratio > 0.2 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalPassiveRatio,
		Severity:    severity,
		Description: fmt.Sprintf("Passive voice: %d/%d sentences (%.0f%%)", sum.Passive, voiced, ratio*100),
		Data: map[string]interface{}{
			"passive": sum.Passive,
			"active":  sum.Active,
			"ratio":   ratio,
			"formula": "passive / (active + passive)",
		},
	}
}

func degradedSignal() model.Signal {
	return model.Signal{
		Type:        model.SignalDegradedGrammar,
		Severity:    model.SeverityWarning,
		Description: "Grammar service unavailable: local rules used",
		Data: map[string]interface{}{
			"source": string(model.GrammarSourceLocal),
		},
	}
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
