// Package reporter writes lint results in the supported output formats.
//
// Text and diff output stream straight from the runner result. The other
// formats first build an analysis.Report and hand it to a Renderer.
package reporter

import (
	"cmp"
	"context"
	"fmt"

	"github.com/yaklabco/rbfix/pkg/analysis"
	"github.com/yaklabco/rbfix/pkg/runner"
)

// Reporter writes one run's result and returns the number of offenses it
// reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an analysis.Report.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to Reporter.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*analyzed)(nil)

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render %T: %w", a.renderer, err)
	}
	return report.Totals.Offenses, nil
}

var renderers = map[Format]func(Options) Renderer{
	FormatJSON:     func(o Options) Renderer { return NewJSONRenderer(o) },
	FormatSARIF:    func(o Options) Renderer { return NewSARIFRenderer(o) },
	FormatOffenses: func(o Options) Renderer { return NewOffensesRenderer(o) },
}

// New returns the Reporter for opts.Format, text when unset.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch format := cmp.Or(opts.Format, FormatText); format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		build, ok := renderers[format]
		if !ok {
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		return &analyzed{
			renderer: build(opts),
			opts:     analysis.Options{SortBy: analysis.SortByCount, WorkingDir: opts.WorkingDir},
		}, nil
	}
}
