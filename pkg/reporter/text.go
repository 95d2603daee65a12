package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/rbfix/internal/ui/pretty"
	"github.com/yaklabco/rbfix/pkg/analysis"
	"github.com/yaklabco/rbfix/pkg/lint"
	"github.com/yaklabco/rbfix/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's offenses and returns how many were written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	displayPath := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(displayPath),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath, len(diagnostics)))

	for i := range diagnostics {
		diag := diagnostics[i]
		diag.FilePath = displayPath

		view := pretty.DiagnosticView{
			ShowContext: r.opts.ShowContext,
			RuleFormat:  r.opts.RuleFormat,
			Width:       r.width,
		}
		if r.opts.ShowContext {
			view.SourceLine = sourceLine(file.Result.FileResult, diag.StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, view))
	}

	fmt.Fprintln(r.bw)
	return len(diagnostics)
}

// sourceLine returns the text of a 1-based line of the linted file, or ""
// when the line is unavailable.
func sourceLine(result *lint.FileResult, line int) string {
	if result.File == nil || result.File.Buffer == nil {
		return ""
	}
	buf := result.File.Buffer
	if line < 1 || line > buf.LineCount() {
		return ""
	}
	return buf.Line(line)
}
