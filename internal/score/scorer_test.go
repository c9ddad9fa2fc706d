package score

import (
	"testing"

	"github.com/ppiankov/clarity/internal/model"
)

func TestClarity(t *testing.T) {
	cases := map[int]int{0: 100, 1: 80, 2: 60, 5: 0, 9: 0}
	for n, want := range cases {
		if got := Clarity(n); got != want {
			t.Errorf("Clarity(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestGrammar(t *testing.T) {
	cases := map[int]int{0: 100, 1: 85, 2: 70, 6: 10, 7: 0, 20: 0}
	for n, want := range cases {
		if got := Grammar(n); got != want {
			t.Errorf("Grammar(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestMean(t *testing.T) {
	if _, ok := Mean(nil); ok {
		t.Error("mean of empty list must be undefined")
	}

	cases := []struct {
		scores []int
		want   int
	}{
		{[]int{100}, 100},
		{[]int{100, 80}, 90},
		{[]int{100, 85, 85}, 90},
		{[]int{100, 60, 60}, 73},
		{[]int{85, 70}, 78}, // 77.5 rounds up
	}
	for _, c := range cases {
		got, ok := Mean(c.scores)
		if !ok || got != c.want {
			t.Errorf("Mean(%v) = %d, %v; want %d", c.scores, got, ok, c.want)
		}
	}
}

func TestScorer_Summarize_Empty(t *testing.T) {
	summary := NewScorer().Summarize(nil, model.GrammarSourceNone)

	if summary.Clarity != nil || summary.Grammar != nil {
		t.Error("expected document scores to be omitted for no sentences")
	}
	if summary.Sentences != 0 || len(summary.Signals) != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestScorer_Summarize(t *testing.T) {
	sentences := []model.SentenceAnalysis{
		{
			Issues:       []model.Issue{{RuleID: "A"}},
			Voice:        model.VoicePassive,
			Ambiguities:  []model.AmbiguityFinding{{Word: "it"}, {Word: "there"}},
			ClarityScore: 60,
			GrammarScore: 85,
		},
		{
			Voice:        model.VoiceActive,
			ClarityScore: 100,
			GrammarScore: 100,
		},
		{
			Voice:        model.VoiceUnclear,
			ClarityScore: 100,
			GrammarScore: 100,
		},
	}

	summary := NewScorer().Summarize(sentences, model.GrammarSourceRemote)

	if summary.Sentences != 3 || summary.Issues != 1 || summary.Ambiguities != 2 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.Active != 1 || summary.Passive != 1 || summary.Unclear != 1 {
		t.Errorf("unexpected voice counts: %+v", summary)
	}
	if summary.Clarity == nil || *summary.Clarity != 87 {
		t.Errorf("expected clarity 87, got %v", summary.Clarity)
	}
	if summary.Grammar == nil || *summary.Grammar != 95 {
		t.Errorf("expected grammar 95, got %v", summary.Grammar)
	}

	types := map[model.SignalType]model.Signal{}
	for _, s := range summary.Signals {
		types[s.Type] = s
	}
	if _, ok := types[model.SignalDegradedGrammar]; ok {
		t.Error("remote source must not report degraded grammar")
	}

	passive, ok := types[model.SignalPassiveRatio]
	if !ok {
		t.Fatal("expected passive ratio signal")
	}
	if passive.Severity != model.SeverityWarning {
		t.Errorf("expected warning for 50%% passive, got %s", passive.Severity)
	}
	if passive.Data["formula"] == nil {
		t.Error("expected formula in signal data")
	}

	if types[model.SignalGrammarDensity].Severity != model.SeverityInfo {
		t.Errorf("expected info severity for 0.33 issues per sentence")
	}
}

func TestScorer_Summarize_DegradedGrammar(t *testing.T) {
	sentences := []model.SentenceAnalysis{{Voice: model.VoiceActive, ClarityScore: 100, GrammarScore: 100}}
	summary := NewScorer().Summarize(sentences, model.GrammarSourceLocal)

	found := false
	for _, s := range summary.Signals {
		if s.Type == model.SignalDegradedGrammar {
			found = true
			if s.Severity != model.SeverityWarning {
				t.Errorf("expected warning severity, got %s", s.Severity)
			}
		}
	}
	if !found {
		t.Error("expected degraded grammar signal for local source")
	}
}

func TestScorer_Summarize_AllUnclearSkipsPassiveRatio(t *testing.T) {
	sentences := []model.SentenceAnalysis{{Voice: model.VoiceUnclear, ClarityScore: 100, GrammarScore: 100}}
	summary := NewScorer().Summarize(sentences, model.GrammarSourceRemote)

	for _, s := range summary.Signals {
		if s.Type == model.SignalPassiveRatio {
			t.Error("passive ratio is undefined without active or passive sentences")
		}
	}
}
