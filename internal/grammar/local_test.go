package grammar

import (
	"regexp"
	"testing"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
)

func TestLocal_FallbackExample(t *testing.T) {
	local := NewLocal(rules.Default().Grammar, nil)
	issues := local.Find("She have three cats.  ")

	if len(issues) < 2 {
		t.Fatalf("expected at least 2 issues, got %d: %+v", len(issues), issues)
	}

	agreement := issues[0]
	if agreement.RuleID != "AGREEMENT_THIRD_PERSON" {
		t.Errorf("expected agreement issue first, got %s", agreement.RuleID)
	}
	if agreement.Offset != 0 || agreement.Length != 8 {
		t.Errorf("expected agreement at [0,8), got offset %d length %d", agreement.Offset, agreement.Length)
	}
	if len(agreement.Replacements) != 1 || agreement.Replacements[0] != "She have" {
		t.Errorf("unexpected replacements: %v", agreement.Replacements)
	}

	var spacing *model.Issue
	for i := range issues {
		if issues[i].RuleID == "DOUBLE_SPACE" {
			spacing = &issues[i]
		}
	}
	if spacing == nil {
		t.Fatal("expected a whitespace issue")
	}
	if spacing.Offset != 20 || spacing.Length != 2 {
		t.Errorf("expected whitespace issue at [20,22), got offset %d length %d", spacing.Offset, spacing.Length)
	}
	if spacing.Category != model.CategoryTypography {
		t.Errorf("expected TYPOGRAPHY category, got %s", spacing.Category)
	}
}

func TestLocal_EveryMatchReported(t *testing.T) {
	local := NewLocal(rules.Default().Grammar, nil)
	issues := local.Find("I recieve it. You recieve it. They recieve it.")

	count := 0
	for _, is := range issues {
		if is.RuleID == "SPELLING_RECEIVE" {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 misspelling issues, got %d", count)
	}
}

func TestLocal_CleanTextHasNoIssues(t *testing.T) {
	local := NewLocal(rules.Default().Grammar, nil)
	issues := local.Find("She has three cats.")
	if issues == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestLocal_PanickingRuleIsSkipped(t *testing.T) {
	table := []rules.GrammarRule{
		{
			ID:       "EXPLODES",
			Category: model.CategoryGrammar,
			Message:  "never reported",
			Pattern:  regexp.MustCompile(`cats`),
			Replacement: rules.Replacement{
				Kind: rules.ReplaceFunc,
				Func: func(string) string { panic("boom") },
			},
		},
	}
	table = append(table, rules.Default().Grammar...)

	local := NewLocal(table, nil)
	issues := local.Find("She have three cats.")

	for _, is := range issues {
		if is.RuleID == "EXPLODES" {
			t.Fatal("issue from panicking rule should be dropped")
		}
	}
	if len(issues) == 0 || issues[0].RuleID != "AGREEMENT_THIRD_PERSON" {
		t.Errorf("remaining rules should still apply, got %+v", issues)
	}
}
