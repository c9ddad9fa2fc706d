package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/clarity/internal/model"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP JSON API over an Analyzer
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// New builds the router and the underlying http.Server
func New(cfg model.ServerConfig, analyzer Analyzer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := NewRouter(cfg, analyzer, logger)

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter wires the middleware and routes. Logger wraps Recovery, so a
// recovered panic is logged with its 500 status.
func NewRouter(cfg model.ServerConfig, analyzer Analyzer, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(Logger(logger.Named("http")))
	router.Use(Recovery(logger))

	h := NewHandler(analyzer, logger)
	router.GET("/healthz", h.Health)

	api := router.Group("/api", BodyLimit(cfg.MaxBodyBytes), Timeout(cfg.RequestTimeout))
	{
		api.POST("/grammar-check", h.GrammarCheck)
		api.POST("/voice-converter", h.VoiceConverter)
		api.POST("/ambiguity-check", h.AmbiguityCheck)
		api.POST("/analyze", h.Analyze)
	}

	return router
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}
