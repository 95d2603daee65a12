package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/yaklabco/rbfix/pkg/analysis"
)

// JSONOutput is the top-level JSON document. Files and summary come from
// the embedded report.
type JSONOutput struct {
	Metadata JSONMetadata `json:"metadata"`
	*analysis.Report
}

// JSONMetadata describes the tool that produced the report.
type JSONMetadata struct {
	Version   string `json:"rbfix_version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// JSONRenderer writes an analysis.Report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	output := JSONOutput{
		Metadata: JSONMetadata{
			Version:   r.opts.ToolVersion,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		},
		Report: report,
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush JSON: %w", err)
	}
	return nil
}
