package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outJSON    string
	outMD      string
	lang       string
	style      string
	serviceURL string
	timeout    time.Duration
	noRemote   bool
	noCache    bool
	noFooter   bool
	httpProxy  string
	httpsProxy string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file|->",
	Short: "Analyze a text or HTML file",
	Long: `Check runs grammar, voice and ambiguity analysis over one input and
writes a report. Use "-" to read from stdin. HTML inputs are reduced to
their visible text.

Without --json or --md the JSON report is written to stdout.

Example:
  clarity check essay.txt
  clarity check page.html --json report.json --md report.md
  echo "Their going home." | clarity check - --no-remote`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	addAnalysisFlags(checkCmd)
}

// addAnalysisFlags registers the flags shared by check, batch and serve
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lang, "lang", "", "language tag (e.g. en-US, en-GB, auto)")
	cmd.Flags().StringVar(&style, "style", "", "writing style hint (formal, academic, business, casual)")
	cmd.Flags().StringVar(&serviceURL, "service-url", "", "LanguageTool check endpoint")
	cmd.Flags().DurationVar(&timeout, "grammar-timeout", 0, "remote grammar timeout (capped at 10s)")
	cmd.Flags().BoolVar(&noRemote, "no-remote", false, "use only the local grammar rules")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the grammar response cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// applyFlags overlays explicitly set flags on the loaded configuration
func applyFlags(cmd *cobra.Command, c *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("lang") {
		c.Grammar.Language = lang
	}
	if flags.Changed("style") {
		c.Grammar.Style = style
	}
	if flags.Changed("service-url") {
		c.Grammar.ServiceURL = serviceURL
	}
	if flags.Changed("grammar-timeout") {
		c.Grammar.Timeout = timeout
	}
	if noRemote {
		c.Grammar.Remote = false
	}
	if noCache {
		c.Cache.Enabled = false
	}
	if noFooter {
		c.Output.IncludeFooter = false
	}
	if flags.Changed("http-proxy") {
		c.Grammar.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		c.Grammar.HTTPSProxy = httpsProxy
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]
	applyFlags(cmd, cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger.Debug("checking input",
		zap.String("input", input),
		zap.Bool("remote", cfg.Grammar.Remote),
		zap.Bool("cache", cfg.Cache.Enabled))

	p := pipeline.NewPipeline(cfg, tables, logger)

	report, err := p.AnalyzeFile(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", input, err)
	}

	if outJSON == "" && outMD == "" {
		if err := p.Renderer().WriteJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		p.Renderer().RenderSummary(cmd.ErrOrStderr(), report)
		return nil
	}

	if err := p.RenderReport(report, outJSON, outMD, cmd.ErrOrStderr()); err != nil {
		return err
	}
	if outJSON != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ JSON report: %s\n", outJSON)
	}
	if outMD != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Markdown report: %s\n", outMD)
	}
	return nil
}
