package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/rbfix/internal/ui/pretty"
	"github.com/yaklabco/rbfix/pkg/analysis"
)

// OffensesRenderer writes one line per rule with its offense count, most
// frequent first, followed by a total:
//
//	3  Layout/LineLength [Correctable]
//	1  Lint/Debugger
//	--
//	4  Total in 2 files
type OffensesRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewOffensesRenderer creates a new offense count renderer.
func NewOffensesRenderer(opts Options) *OffensesRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &OffensesRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *OffensesRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	width := len(strconv.Itoa(report.Totals.Offenses))

	for _, count := range report.ByRule {
		line := padLeft(strconv.Itoa(count.Count), width) + "  " + r.styles.RuleID.Render(count.RuleID)
		if count.Correctable > 0 {
			line += " " + r.styles.Correctable.Render("[Correctable]")
		}
		fmt.Fprintln(bw, line)
	}

	fmt.Fprintln(bw, "--")
	fmt.Fprintf(bw, "%s  %s\n",
		padLeft(strconv.Itoa(report.Totals.Offenses), width),
		r.styles.Bold.Render("Total in "+pretty.Plural(report.Totals.FilesWithOffenses, "file", "files")),
	)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush offenses: %w", err)
	}
	return nil
}

// padLeft pads s with spaces on the left to width. It must be applied
// before styling so ANSI codes do not count toward the width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
