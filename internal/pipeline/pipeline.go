package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/clarity/internal/ambiguity"
	"github.com/ppiankov/clarity/internal/cache"
	"github.com/ppiankov/clarity/internal/extract"
	"github.com/ppiankov/clarity/internal/grammar"
	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"github.com/ppiankov/clarity/internal/score"
	"github.com/ppiankov/clarity/internal/segment"
	"github.com/ppiankov/clarity/internal/voice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline orchestrates segmentation, the analyzers and scoring
type Pipeline struct {
	grammar   *grammar.Checker
	voice     *voice.Analyzer
	ambiguity *ambiguity.Detector
	scorer    *score.Scorer
	renderer  *Renderer
	config    *model.Config
	logger    *zap.Logger
	now       func() time.Time
}

// Option customizes a Pipeline
type Option func(*options)

type options struct {
	service    grammar.Service
	serviceSet bool
	now        func() time.Time
}

// WithGrammarService replaces the configured remote grammar service; nil
// forces local rules
func WithGrammarService(s grammar.Service) Option {
	return func(o *options) {
		o.service = s
		o.serviceSet = true
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewPipeline creates a pipeline from the configuration and rule tables
func NewPipeline(cfg *model.Config, tables *rules.Tables, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	service := o.service
	if !o.serviceSet && cfg.Grammar.Remote && cfg.Grammar.ServiceURL != "" {
		service = grammar.NewLanguageTool(cfg.Grammar, cache.New(cfg.Cache), logger.Named("languagetool"))
	}

	local := grammar.NewLocal(tables.Grammar, logger.Named("rules"))

	return &Pipeline{
		grammar:   grammar.NewChecker(cfg.Grammar, service, local, logger.Named("grammar")),
		voice:     voice.New(tables),
		ambiguity: ambiguity.New(tables),
		scorer:    score.NewScorer(),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
		logger:    logger,
		now:       o.now,
	}
}

// AnalyzeGrammar checks the full text and attributes each issue to the
// sentence owning its offset
func (p *Pipeline) AnalyzeGrammar(ctx context.Context, text, lang, style string) model.GrammarResult {
	sentences := segment.Split(text)
	res := p.grammar.Check(ctx, text, lang, p.style(style))
	return model.GrammarResult{
		Issues:    res.Issues,
		Source:    res.Source,
		Sentences: groupIssues(sentences, res.Issues),
	}
}

// AnalyzeVoice classifies every sentence of text
func (p *Pipeline) AnalyzeVoice(text string) model.VoiceResult {
	sentences := segment.Split(text)
	result := model.VoiceResult{SentenceAnalyses: make([]model.SentenceVoice, 0, len(sentences))}
	for _, s := range sentences {
		result.SentenceAnalyses = append(result.SentenceAnalyses, p.voice.Analyze(s))
	}
	return result
}

// AnalyzeAmbiguity scans every sentence of text for ambiguous words
func (p *Pipeline) AnalyzeAmbiguity(text string) model.AmbiguityResult {
	sentences := segment.Split(text)
	result := model.AmbiguityResult{SentenceAnalyses: make([]model.SentenceAmbiguity, 0, len(sentences))}
	for _, s := range sentences {
		result.SentenceAnalyses = append(result.SentenceAnalyses, p.ambiguity.Analyze(s))
	}
	return result
}

// Analyze runs all analyzers concurrently over one segmentation of the
// text and aggregates the results. An analyzer that panics leaves its
// section empty and is listed in Report.Degraded.
func (p *Pipeline) Analyze(ctx context.Context, req model.Request) *model.Report {
	sentences := segment.Split(req.Text)
	lang := grammar.NormalizeLanguage(req.Language, p.config.Grammar.Language)
	style := p.style(req.Style)

	var (
		grammarRes = grammar.Result{Issues: []model.Issue{}, Source: model.GrammarSourceNone}
		voices     = make([]model.SentenceVoice, len(sentences))
		ambig      = make([]model.SentenceAmbiguity, len(sentences))
		failed     [3]bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		failed[0] = !p.guard("grammar", func() {
			grammarRes = p.grammar.Check(gctx, req.Text, lang, style)
		})
		return nil // Don't fail the group
	})

	g.Go(func() error {
		failed[1] = !p.guard("voice", func() {
			for i, s := range sentences {
				voices[i] = p.voice.Analyze(s)
			}
		})
		return nil
	})

	g.Go(func() error {
		failed[2] = !p.guard("ambiguity", func() {
			for i, s := range sentences {
				ambig[i] = p.ambiguity.Analyze(s)
			}
		})
		return nil
	})

	_ = g.Wait()

	report := &model.Report{
		ID:            uuid.NewString(),
		Source:        req.Source,
		Language:      lang,
		Style:         style,
		GrammarSource: grammarRes.Source,
		AnalyzedAt:    p.now().UTC(),
		Issues:        grammarRes.Issues,
	}
	for i, name := range []string{"grammar", "voice", "ambiguity"} {
		if failed[i] {
			report.Degraded = append(report.Degraded, name)
		}
	}

	grouped := groupIssues(sentences, grammarRes.Issues)
	report.Sentences = make([]model.SentenceAnalysis, len(sentences))
	for i, s := range sentences {
		sa := model.SentenceAnalysis{
			Sentence:         s,
			Issues:           grouped[i].Issues,
			GrammarScore:     grouped[i].Score,
			Voice:            model.VoiceUnclear,
			VoiceSuggestions: []model.VoiceSuggestion{},
			Ambiguities:      []model.AmbiguityFinding{},
			ClarityScore:     score.Clarity(0),
		}
		if !failed[1] {
			sa.Voice = voices[i].VoiceType
			sa.VoiceSuggestions = voices[i].Suggestions
		}
		if !failed[2] {
			sa.Ambiguities = ambig[i].Ambiguities
			sa.ClarityScore = ambig[i].ClarityScore
		}
		report.Sentences[i] = sa
	}

	report.Summary = p.scorer.Summarize(report.Sentences, report.GrammarSource)

	p.logger.Debug("analysis complete",
		zap.String("id", report.ID),
		zap.String("source", req.Source),
		zap.Int("sentences", len(sentences)),
		zap.Int("issues", len(report.Issues)),
		zap.String("grammar_source", string(report.GrammarSource)))

	return report
}

// AnalyzeFile loads a text or HTML input and analyzes it with the
// configured language and style
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	doc, err := extract.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}

	return p.Analyze(ctx, model.Request{
		Text:     doc.Text,
		Language: p.config.Grammar.Language,
		Style:    p.config.Grammar.Style,
		Source:   doc.Source,
	}), nil
}

// RenderReport writes the JSON and Markdown reports to the given paths
// (either may be empty) and prints the summary to w
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, w io.Writer) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Debug("wrote JSON report", zap.String("path", jsonPath))
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Debug("wrote Markdown report", zap.String("path", mdPath))
	}

	if w != nil {
		p.renderer.RenderSummary(w, report)
	}
	return nil
}

// Renderer returns the pipeline's report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

func (p *Pipeline) style(style string) string {
	if style == "" {
		return p.config.Grammar.Style
	}
	return style
}

// guard runs fn and reports whether it completed without panicking
func (p *Pipeline) guard(section string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("analyzer panicked, section degraded",
				zap.String("section", section),
				zap.Any("panic", r))
			ok = false
		}
	}()
	fn()
	return true
}

// groupIssues attributes issues to sentences: sentence i owns document
// offsets [start_i, start_i+1)
func groupIssues(sentences []model.Sentence, issues []model.Issue) []model.SentenceGrammar {
	grouped := make([]model.SentenceGrammar, len(sentences))
	for i, s := range sentences {
		grouped[i] = model.SentenceGrammar{Sentence: s, Issues: []model.Issue{}}
	}
	for _, is := range issues {
		if owner := segment.Owner(sentences, is.Offset); owner >= 0 {
			grouped[owner].Issues = append(grouped[owner].Issues, is)
		}
	}
	for i := range grouped {
		grouped[i].Score = score.Grammar(len(grouped[i].Issues))
	}
	return grouped
}
