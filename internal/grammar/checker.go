package grammar

import (
	"context"
	"strings"
	"time"

	"github.com/ppiankov/clarity/internal/model"
	"go.uber.org/zap"
)

// MaxTimeout bounds every remote grammar check
const MaxTimeout = 10 * time.Second

// Result is the outcome of a grammar check
type Result struct {
	Issues []model.Issue
	Source model.GrammarSource
}

// Checker runs the remote service when one is configured and falls back to
// the local rule table on any failure. Check never returns an error.
type Checker struct {
	service         Service
	local           *Local
	timeout         time.Duration
	defaultLanguage string
	logger          *zap.Logger
}

// NewChecker creates a checker. service may be nil for local-only checking.
func NewChecker(cfg model.GrammarConfig, service Service, local *Local, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		service:         service,
		local:           local,
		timeout:         EffectiveTimeout(cfg.Timeout),
		defaultLanguage: NormalizeLanguage(cfg.Language, DefaultLanguage),
		logger:          logger,
	}
}

// EffectiveTimeout clamps a configured timeout to (0, MaxTimeout]
func EffectiveTimeout(d time.Duration) time.Duration {
	if d <= 0 || d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

// Check returns the issues of text with offsets relative to text
func (c *Checker) Check(ctx context.Context, text, lang, style string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Issues: []model.Issue{}, Source: model.GrammarSourceNone}
	}

	if c.service != nil {
		issues, err := c.remote(ctx, text, lang, style)
		if err == nil {
			return Result{Issues: issues, Source: model.GrammarSourceRemote}
		}
		c.logger.Warn("grammar service unavailable, using local rules", zap.Error(err))
	}

	return Result{Issues: c.local.Find(text), Source: model.GrammarSourceLocal}
}

func (c *Checker) remote(ctx context.Context, text, lang, style string) ([]model.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := Query{
		Text:       text,
		Language:   NormalizeLanguage(lang, c.defaultLanguage),
		Categories: Categories(style),
	}

	start := time.Now()
	issues, err := c.service.Check(ctx, q)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("grammar service checked text",
		zap.String("language", q.Language),
		zap.Int("issues", len(issues)),
		zap.Duration("elapsed", time.Since(start)))

	if issues == nil {
		issues = []model.Issue{}
	}
	return issues, nil
}
