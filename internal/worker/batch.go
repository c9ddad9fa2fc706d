package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/clarity/internal/model"
	"go.uber.org/zap"
)

// Analyzer analyzes a single input file
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// ReportWriter persists a report in its output formats
type ReportWriter interface {
	RenderJSON(report *model.Report, path string) error
	RenderMarkdown(report *model.Report, path string) error
}

// FileJob analyzes one input of a batch
type FileJob struct {
	Index    int
	Path     string
	Analyzer Analyzer
	Timeout  time.Duration
}

// Execute executes the analysis job
func (j *FileJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &FileResult{Index: j.Index, Path: j.Path, Error: err}
	}

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &FileResult{Index: j.Index, Path: j.Path, Error: err}
	}
	return &FileResult{Index: j.Index, Path: j.Path, Report: report}
}

// FileResult is the outcome of one batch input
type FileResult struct {
	Index        int
	Path         string
	Report       *model.Report
	JSONPath     string
	MarkdownPath string
	Error        error
}

// GetError returns the error from the analysis
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many inputs on a bounded pool
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	fileTimeout time.Duration
	logger      *zap.Logger
}

// NewBatchProcessor creates a batch processor. fileTimeout bounds each
// input; zero leaves only the caller's context.
func NewBatchProcessor(analyzer Analyzer, concurrency int, fileTimeout time.Duration, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		fileTimeout: fileTimeout,
		logger:      logger,
	}
}

// ProcessFiles analyzes every path concurrently. Results keep input order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &FileJob{Index: i, Path: path, Analyzer: b.analyzer, Timeout: b.fileTimeout}
	}

	results := pool.Run(jobs)

	// inputs the pool never reached still get a result
	out := make([]*FileResult, len(paths))
	for _, r := range results {
		fr := r.(*FileResult)
		out[fr.Index] = fr
	}
	for i, fr := range out {
		if fr == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &FileResult{Index: i, Path: paths[i], Error: err}
		}
	}

	for _, fr := range out {
		if fr.Error != nil {
			b.logger.Warn("analysis failed", zap.String("path", fr.Path), zap.Error(fr.Error))
		}
	}
	return out
}

// ProcessList reads input paths from a list file and processes them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadInputList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}
	b.logger.Debug("loaded input list", zap.String("list", listPath), zap.Int("inputs", len(paths)))

	return b.ProcessFiles(ctx, paths), nil
}

// WriteReports writes a JSON and a Markdown report per successful result
// into outputDir and records the paths on the result. Write failures are
// stored on the result rather than aborting the batch.
func (b *BatchProcessor) WriteReports(results []*FileResult, outputDir string, w ReportWriter) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	used := make(map[string]int)
	for _, fr := range results {
		if fr.Error != nil || fr.Report == nil {
			continue
		}

		name := ReportName(fr.Path)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		jsonPath := filepath.Join(outputDir, name+".json")
		mdPath := filepath.Join(outputDir, name+".md")

		if err := w.RenderJSON(fr.Report, jsonPath); err != nil {
			fr.Error = fmt.Errorf("write JSON report: %w", err)
			continue
		}
		if err := w.RenderMarkdown(fr.Report, mdPath); err != nil {
			fr.Error = fmt.Errorf("write Markdown report: %w", err)
			continue
		}
		fr.JSONPath, fr.MarkdownPath = jsonPath, mdPath
	}
	return nil
}

// ReadInputList reads input paths from a file (one per line). Blank lines
// and lines starting with # are skipped; duplicates keep their first position.
func ReadInputList(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

var nameReplacer = strings.NewReplacer(
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// ReportName derives a filesystem-safe report base name from an input path
func ReportName(path string) string {
	if path == "-" {
		return "stdin"
	}

	base := filepath.Base(filepath.Clean(path))
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		base = stem
	}
	base = nameReplacer.Replace(base)
	base = strings.Trim(base, ".-_")

	if base == "" {
		return "report"
	}
	if len(base) > 100 {
		base = base[:100]
	}
	return base
}

// Summarize counts successes and failures
func Summarize(results []*FileResult) (succeeded, failed int) {
	for _, fr := range results {
		if fr.Error != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
