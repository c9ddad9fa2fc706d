package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/clarity/internal/pipeline"
	"github.com/ppiankov/clarity/internal/server"
	"github.com/spf13/cobra"
)

var addr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Serve exposes the analyzers as JSON routes:

  POST /api/grammar-check    {text, language, style}
  POST /api/voice-converter  {text}
  POST /api/ambiguity-check  {text}
  POST /api/analyze          {text, language, style}
  GET  /healthz

Example:
  clarity serve --addr :8080
  CLARITY_GRAMMAR_SERVICE_URL=http://localhost:8081/v2/check clarity serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	addAnalysisFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, cfg)
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = addr
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg, tables, logger)
	srv := server.New(cfg.Server, p, logger)

	return srv.Run(ctx)
}
