package grammar

import (
	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"go.uber.org/zap"
)

// Matcher finds issues in a text. Offsets are relative to text.
type Matcher interface {
	ID() string
	Find(text string) []model.Issue
}

// RuleMatcher applies one regex rule in global mode: every match, in
// order, becomes one issue.
type RuleMatcher struct {
	Rule rules.GrammarRule
}

func (m RuleMatcher) ID() string {
	return m.Rule.ID
}

func (m RuleMatcher) Find(text string) []model.Issue {
	var issues []model.Issue
	for _, loc := range m.Rule.Pattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		issues = append(issues, model.Issue{
			RuleID:       m.Rule.ID,
			Category:     m.Rule.Category,
			Message:      m.Rule.Message,
			ShortMessage: m.Rule.Message,
			Offset:       loc[0],
			Length:       loc[1] - loc[0],
			Replacements: []string{m.Rule.Replacement.Apply(match)},
		})
	}
	return issues
}

// Local is the offline rule table, applied matcher by matcher
type Local struct {
	matchers []Matcher
	logger   *zap.Logger
}

// NewLocal builds a Local checker from a grammar rule table
func NewLocal(table []rules.GrammarRule, logger *zap.Logger) *Local {
	matchers := make([]Matcher, 0, len(table))
	for _, r := range table {
		matchers = append(matchers, RuleMatcher{Rule: r})
	}
	return NewLocalMatchers(matchers, logger)
}

// NewLocalMatchers builds a Local checker from arbitrary matchers
func NewLocalMatchers(matchers []Matcher, logger *zap.Logger) *Local {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{matchers: matchers, logger: logger}
}

// Find runs every matcher over text. A matcher that panics contributes no
// issues; the remaining matchers still run.
func (l *Local) Find(text string) []model.Issue {
	issues := []model.Issue{}
	for _, m := range l.matchers {
		issues = append(issues, l.apply(m, text)...)
	}
	return issues
}

func (l *Local) apply(m Matcher, text string) (found []model.Issue) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("grammar rule failed, skipping",
				zap.String("rule", m.ID()),
				zap.Any("panic", r))
			found = nil
		}
	}()
	return m.Find(text)
}
