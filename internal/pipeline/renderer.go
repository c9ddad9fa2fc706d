package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/clarity/internal/model"
)

// Renderer writes reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteJSON(w, report) })
}

// WriteJSON writes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteMarkdown(w, report) })
}

// WriteMarkdown writes the report as Markdown
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) error {
	var b strings.Builder

	title := "Clarity Report"
	if report.Source != "" {
		title += ": " + report.Source
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", report.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Language:** %s\n", report.Language)
	if report.Style != "" {
		fmt.Fprintf(&b, "- **Style:** %s\n", report.Style)
	}
	fmt.Fprintf(&b, "- **Grammar checks:** %s\n", report.GrammarSource)
	if len(report.Degraded) > 0 {
		fmt.Fprintf(&b, "- **Degraded sections:** %s\n", strings.Join(report.Degraded, ", "))
	}
	b.WriteString("\n")

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Sentences | %d |\n", s.Sentences)
	fmt.Fprintf(&b, "| Clarity score | %s |\n", scoreText(s.Clarity))
	fmt.Fprintf(&b, "| Grammar score | %s |\n", scoreText(s.Grammar))
	fmt.Fprintf(&b, "| Grammar issues | %d |\n", s.Issues)
	fmt.Fprintf(&b, "| Ambiguities | %d |\n", s.Ambiguities)
	fmt.Fprintf(&b, "| Active / passive / unclear | %d / %d / %d |\n\n", s.Active, s.Passive, s.Unclear)

	if len(s.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, sig := range s.Signals {
			fmt.Fprintf(&b, "- %s **%s**: %s", severityMark(sig.Severity), sig.Type, sig.Description)
			if f, ok := sig.Data["formula"].(string); ok {
				fmt.Fprintf(&b, " (`%s`)", f)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.Sentences) > 0 {
		b.WriteString("## Sentences\n\n")
	}
	for i, sa := range report.Sentences {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, sa.Sentence.Text)
		fmt.Fprintf(&b, "Grammar %d · Clarity %d · Voice %s\n\n", sa.GrammarScore, sa.ClarityScore, sa.Voice)

		for _, is := range sa.Issues {
			fmt.Fprintf(&b, "- **%s** %s", is.Category, is.Message)
			if len(is.Replacements) > 0 && is.Replacements[0] != "" {
				fmt.Fprintf(&b, " (suggestion: `%s`)", is.Replacements[0])
			}
			b.WriteString("\n")
		}
		for _, a := range sa.Ambiguities {
			fmt.Fprintf(&b, "- **%s** `%s`: %s\n", a.Kind, a.Word, a.Suggestion)
		}
		for _, v := range sa.VoiceSuggestions {
			fmt.Fprintf(&b, "- **%s** %s\n", v.Direction, v.Converted)
		}
		if len(sa.Issues)+len(sa.Ambiguities)+len(sa.VoiceSuggestions) > 0 {
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Scores are deterministic: clarity = max(0, 100 - 20 x ambiguities), ")
		b.WriteString("grammar = max(0, 100 - 15 x issues), averaged over sentences._\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary prints a short human-readable summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	s := report.Summary
	source := report.Source
	if source == "" {
		source = "input"
	}

	fmt.Fprintf(w, "%s: %d sentences\n", source, s.Sentences)
	fmt.Fprintf(w, "  Clarity: %s   Grammar: %s (%s)\n", scoreText(s.Clarity), scoreText(s.Grammar), report.GrammarSource)
	fmt.Fprintf(w, "  Issues: %d   Ambiguities: %d   Passive: %d/%d\n",
		s.Issues, s.Ambiguities, s.Passive, s.Active+s.Passive)
	for _, sig := range s.Signals {
		if sig.Severity == model.SeverityInfo {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", severityMark(sig.Severity), sig.Description)
	}
	if len(report.Degraded) > 0 {
		fmt.Fprintf(w, "  degraded: %s\n", strings.Join(report.Degraded, ", "))
	}
}

func scoreText(p *int) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d/100", *p)
}

func severityMark(s model.SignalSeverity) string {
	switch s {
	case model.SeverityCritical:
		return "[!!]"
	case model.SeverityWarning:
		return "[!]"
	default:
		return "[i]"
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
