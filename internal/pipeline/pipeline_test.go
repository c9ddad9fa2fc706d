package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/clarity/internal/grammar"
	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func localPipeline(opts ...Option) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Grammar.Remote = false
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewPipeline(cfg, rules.Default(), nil, opts...)
}

type fakeService struct {
	issues []model.Issue
}

func (f fakeService) Check(ctx context.Context, q grammar.Query) ([]model.Issue, error) {
	return f.issues, nil
}

type panickingService struct{}

func (panickingService) Check(ctx context.Context, q grammar.Query) ([]model.Issue, error) {
	panic("service exploded")
}

func TestAnalyzeAmbiguity_Empty(t *testing.T) {
	res := localPipeline().AnalyzeAmbiguity("")
	if res.SentenceAnalyses == nil || len(res.SentenceAnalyses) != 0 {
		t.Errorf("expected empty non-nil analyses, got %#v", res.SentenceAnalyses)
	}
}

func TestAnalyzeAmbiguity_Example(t *testing.T) {
	res := localPipeline().AnalyzeAmbiguity("I saw it there.")
	if len(res.SentenceAnalyses) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(res.SentenceAnalyses))
	}
	sa := res.SentenceAnalyses[0]
	if len(sa.Ambiguities) != 2 || sa.ClarityScore != 60 {
		t.Errorf("expected 2 findings and clarity 60, got %d and %d", len(sa.Ambiguities), sa.ClarityScore)
	}
}

func TestAnalyzeVoice(t *testing.T) {
	res := localPipeline().AnalyzeVoice("The chef cooked the meal. The meal was cooked by the chef. Wow!")
	if len(res.SentenceAnalyses) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(res.SentenceAnalyses))
	}

	want := []model.VoiceType{model.VoiceActive, model.VoicePassive, model.VoiceUnclear}
	for i, sv := range res.SentenceAnalyses {
		if sv.VoiceType != want[i] {
			t.Errorf("sentence %d: expected %s, got %s", i, want[i], sv.VoiceType)
		}
	}

	passive := res.SentenceAnalyses[1]
	if len(passive.Suggestions) != 1 || passive.Suggestions[0].Converted != "The chef cooks the meal." {
		t.Errorf("unexpected suggestions: %+v", passive.Suggestions)
	}
	if passive.Sentence.Start != 26 {
		t.Errorf("expected sentence offset 26, got %d", passive.Sentence.Start)
	}
}

func TestAnalyzeGrammar_LocalAttribution(t *testing.T) {
	text := "She have three cats.  They has gone."
	res := localPipeline().AnalyzeGrammar(context.Background(), text, "en-US", "")

	if res.Source != model.GrammarSourceLocal {
		t.Fatalf("expected local source, got %s", res.Source)
	}
	if len(res.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", res.Issues)
	}
	if len(res.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(res.Sentences))
	}

	first, second := res.Sentences[0], res.Sentences[1]
	if len(first.Issues) != 2 || first.Score != 70 {
		t.Errorf("first sentence: expected 2 issues and score 70, got %d and %d", len(first.Issues), first.Score)
	}
	if len(second.Issues) != 1 || second.Score != 85 {
		t.Errorf("second sentence: expected 1 issue and score 85, got %d and %d", len(second.Issues), second.Score)
	}
	if got := text[second.Issues[0].Offset:second.Issues[0].End()]; got != "They has" {
		t.Errorf("expected document offsets, span was %q", got)
	}
}

func TestAnalyzeGrammar_Empty(t *testing.T) {
	res := localPipeline().AnalyzeGrammar(context.Background(), "   ", "", "")
	if res.Source != model.GrammarSourceNone || len(res.Issues) != 0 || len(res.Sentences) != 0 {
		t.Errorf("unexpected result for blank input: %+v", res)
	}
}

func TestAnalyze_Remote(t *testing.T) {
	svc := fakeService{issues: []model.Issue{{RuleID: "HE_VERB_AGR", Category: model.CategoryGrammar, Offset: 0, Length: 8}}}
	p := localPipeline(WithGrammarService(svc))

	report := p.Analyze(context.Background(), model.Request{
		Text:     "She have three cats. I saw it there.",
		Language: "en-gb",
		Source:   "test",
	})

	if report.ID == "" {
		t.Error("expected a report ID")
	}
	if !report.AnalyzedAt.Equal(fixedNow) {
		t.Errorf("expected fixed timestamp, got %v", report.AnalyzedAt)
	}
	if report.Language != "en-GB" || report.GrammarSource != model.GrammarSourceRemote {
		t.Errorf("unexpected metadata: language %q source %s", report.Language, report.GrammarSource)
	}
	if len(report.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(report.Sentences))
	}

	first, second := report.Sentences[0], report.Sentences[1]
	if first.GrammarScore != 85 || first.ClarityScore != 100 {
		t.Errorf("first sentence scores: grammar %d clarity %d", first.GrammarScore, first.ClarityScore)
	}
	if second.GrammarScore != 100 || second.ClarityScore != 60 {
		t.Errorf("second sentence scores: grammar %d clarity %d", second.GrammarScore, second.ClarityScore)
	}

	sum := report.Summary
	if sum.Clarity == nil || *sum.Clarity != 80 || sum.Grammar == nil || *sum.Grammar != 93 {
		t.Errorf("unexpected document scores: %+v", sum)
	}
	if len(report.Degraded) != 0 {
		t.Errorf("expected no degraded sections, got %v", report.Degraded)
	}
}

func TestAnalyze_GrammarPanicDegrades(t *testing.T) {
	p := localPipeline(WithGrammarService(panickingService{}))
	report := p.Analyze(context.Background(), model.Request{Text: "The meal was cooked by the chef. It was there."})

	if len(report.Degraded) != 1 || report.Degraded[0] != "grammar" {
		t.Fatalf("expected grammar to be degraded, got %v", report.Degraded)
	}
	if report.GrammarSource != model.GrammarSourceNone || len(report.Issues) != 0 {
		t.Errorf("expected empty grammar section, got %s with %d issues", report.GrammarSource, len(report.Issues))
	}
	if report.Sentences[0].Voice != model.VoicePassive {
		t.Errorf("voice analysis should survive, got %s", report.Sentences[0].Voice)
	}
	if len(report.Sentences[1].Ambiguities) == 0 {
		t.Error("ambiguity analysis should survive")
	}
}

func TestAnalyze_Empty(t *testing.T) {
	report := localPipeline().Analyze(context.Background(), model.Request{Text: ""})

	if len(report.Sentences) != 0 || report.Summary.Clarity != nil || report.Summary.Grammar != nil {
		t.Errorf("expected empty report without document scores, got %+v", report.Summary)
	}
	if report.GrammarSource != model.GrammarSourceNone {
		t.Errorf("expected grammar source none, got %s", report.GrammarSource)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(data, []byte(`"clarity":`)) {
		t.Errorf("document clarity should be omitted: %s", data)
	}
}

func TestAnalyze_ConcurrentCallsAreIndependent(t *testing.T) {
	p := localPipeline()
	texts := []string{
		"She have three cats.",
		"The meal was cooked by the chef.",
		"I saw it there.",
		"Stuff happened somehow.",
	}

	done := make(chan *model.Report, len(texts)*5)
	for i := 0; i < 5; i++ {
		for _, text := range texts {
			go func(text string) {
				done <- p.Analyze(context.Background(), model.Request{Text: text})
			}(text)
		}
	}

	ids := map[string]bool{}
	for i := 0; i < len(texts)*5; i++ {
		r := <-done
		if ids[r.ID] {
			t.Errorf("duplicate report ID %s", r.ID)
		}
		ids[r.ID] = true
		if len(r.Sentences) != 1 {
			t.Errorf("expected 1 sentence, got %d", len(r.Sentences))
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte("<html><body><p>Your going home.</p></body></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := localPipeline().AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if report.Source != path || len(report.Sentences) != 1 {
		t.Errorf("unexpected report: source %q sentences %d", report.Source, len(report.Sentences))
	}
	if len(report.Issues) != 1 || report.Issues[0].RuleID != "YOUR_YOURE" {
		t.Errorf("unexpected issues: %+v", report.Issues)
	}

	if _, err := localPipeline().AnalyzeFile(context.Background(), path+".missing"); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestRenderReport(t *testing.T) {
	p := localPipeline()
	report := p.Analyze(context.Background(), model.Request{
		Text:   "She have three cats. The meal was cooked by the chef.",
		Source: "cats.txt",
	})

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "report.json")
	mdPath := filepath.Join(dir, "out", "report.md")

	var summary bytes.Buffer
	if err := p.RenderReport(report, jsonPath, mdPath, &summary); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON: %v", err)
	}
	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON report: %v", err)
	}
	if decoded.ID != report.ID || len(decoded.Sentences) != 2 {
		t.Errorf("JSON report does not match: %+v", decoded)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read Markdown: %v", err)
	}
	for _, want := range []string{
		"# Clarity Report: cats.txt",
		"## Summary",
		"### 2. The meal was cooked by the chef.",
		"The chef cooks the meal.",
		"Scores are deterministic",
	} {
		if !strings.Contains(string(md), want) {
			t.Errorf("Markdown missing %q", want)
		}
	}

	if !strings.Contains(summary.String(), "cats.txt: 2 sentences") {
		t.Errorf("unexpected summary: %q", summary.String())
	}
	if !strings.Contains(summary.String(), "local rules used") {
		t.Errorf("summary should report degraded grammar: %q", summary.String())
	}
}

func TestRenderer_NoFooter(t *testing.T) {
	var buf bytes.Buffer
	report := &model.Report{AnalyzedAt: fixedNow, Language: "en-US"}
	if err := NewRenderer(false).WriteMarkdown(&buf, report); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	if strings.Contains(buf.String(), "deterministic") {
		t.Error("footer should be omitted")
	}
	if !strings.Contains(buf.String(), "| Clarity score | n/a |") {
		t.Errorf("expected n/a score for empty report:\n%s", buf.String())
	}
}
