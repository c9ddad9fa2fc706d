package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/clarity/internal/pipeline"
	"github.com/ppiankov/clarity/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	fileTimeout  time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list>",
	Short: "Analyze many inputs listed in a file",
	Long: `Batch analyzes every input listed in a file (one path per line,
# comments and blank lines ignored, duplicates skipped) on a bounded worker
pool and writes one JSON and one Markdown report per input.

Example:
  clarity batch inputs.txt
  clarity batch inputs.txt --concurrency 8 --output-dir ./reports
  clarity batch inputs.txt --no-remote --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clarity-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&fileTimeout, "file-timeout", time.Minute, "timeout for a single input")
	addAnalysisFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	list := args[0]
	applyFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Clarity Batch Processing\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Input list:   %s\n", list)
	fmt.Fprintf(out, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(out, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(out, "  Remote:       %v\n", cfg.Grammar.Remote)
	fmt.Fprintf(out, "\n")

	p := pipeline.NewPipeline(cfg, tables, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, fileTimeout, logger.Named("batch"))

	results, err := processor.ProcessList(ctx, list)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	if err := processor.WriteReports(results, outputDir, p.Renderer()); err != nil {
		return err
	}

	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}
		fmt.Fprintf(out, "✓ %s (clarity: %s, grammar: %s) → %s\n",
			r.Path, scoreLabel(r.Report.Summary.Clarity), scoreLabel(r.Report.Summary.Grammar), r.JSONPath)
	}

	succeeded, failed := worker.Summarize(results)

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Batch Complete\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Total:     %d inputs\n", len(results))
	fmt.Fprintf(out, "  Success:   %d\n", succeeded)
	fmt.Fprintf(out, "  Failures:  %d\n", failed)
	fmt.Fprintf(out, "  Output:    %s\n", outputDir)
	fmt.Fprintf(out, "\n")

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d inputs failed", failed)
	}
	return nil
}

func scoreLabel(p *int) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d/100", *p)
}
