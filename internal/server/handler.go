package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/clarity/internal/model"
	"go.uber.org/zap"
)

// Analyzer is the analysis surface exposed over HTTP
type Analyzer interface {
	AnalyzeGrammar(ctx context.Context, text, lang, style string) model.GrammarResult
	AnalyzeVoice(text string) model.VoiceResult
	AnalyzeAmbiguity(text string) model.AmbiguityResult
	Analyze(ctx context.Context, req model.Request) *model.Report
}

// Handler serves the analysis routes
type Handler struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewHandler creates a handler
func NewHandler(analyzer Analyzer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{analyzer: analyzer, logger: logger}
}

// GrammarCheck handles POST /api/grammar-check
func (h *Handler) GrammarCheck(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	res := h.analyzer.AnalyzeGrammar(c.Request.Context(), req.Text, req.Language, req.Style)
	c.JSON(http.StatusOK, GrammarResponse{
		Matches:   res.Issues,
		Source:    res.Source,
		Sentences: res.Sentences,
	})
}

// VoiceConverter handles POST /api/voice-converter
func (h *Handler) VoiceConverter(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	res := h.analyzer.AnalyzeVoice(req.Text)
	c.JSON(http.StatusOK, VoiceResponse{Analyses: res.SentenceAnalyses})
}

// AmbiguityCheck handles POST /api/ambiguity-check
func (h *Handler) AmbiguityCheck(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	res := h.analyzer.AnalyzeAmbiguity(req.Text)
	c.JSON(http.StatusOK, AmbiguityResponse{Analyses: res.SentenceAnalyses})
}

// Analyze handles POST /api/analyze and returns the full report
func (h *Handler) Analyze(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	report := h.analyzer.Analyze(c.Request.Context(), model.Request{
		Text:     req.Text,
		Language: req.Language,
		Style:    req.Style,
		Source:   "api",
	})
	c.JSON(http.StatusOK, report)
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bind(c *gin.Context) (TextRequest, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return req, false
		}
		h.logger.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return req, false
	}
	return req, true
}
