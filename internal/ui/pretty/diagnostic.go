package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/lint"
)

// contextIndent aligns source context under the offense line.
const contextIndent = "        "

// DiagnosticView controls how FormatDiagnostic renders an offense.
type DiagnosticView struct {
	// ShowContext prints SourceLine with a caret marker under the offense.
	ShowContext bool

	// SourceLine is the text of the offense's first line.
	SourceLine string

	// RuleFormat controls how the rule identifier is rendered.
	RuleFormat config.RuleFormat

	// Width clips the source context to this many columns; 0 disables clipping.
	Width int
}

// FormatDiagnostic formats a single offense for terminal output:
//
//	path:line:col  severity  message  (rule) [Correctable]
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, view DiagnosticView) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(view.RuleFormat, diag.RuleID, diag.RuleName)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	))
	if diag.HasFix() && !diag.Todo {
		builder.WriteString(" " + s.Correctable.Render("[Correctable]"))
	}
	builder.WriteString("\n")

	if view.ShowContext && view.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(view.SourceLine, diag.StartColumn, markerLength(diag, view.SourceLine), view.Width))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// markerLength returns how many characters of line the offense covers,
// at least one.
func markerLength(diag *lint.Diagnostic, line string) int {
	start := min(max(diag.StartColumn-1, 0), len(line))
	end := len(line)
	if diag.EndLine == diag.StartLine {
		end = min(max(diag.EndColumn-1, start), len(line))
	}
	return max(utf8.RuneCountInString(line[start:end]), 1)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker of
// length characters starting at the 1-based byte column. When width is
// positive, long lines are clipped to a window around the marker.
func (s *Styles) FormatSourceContext(line string, column, length, width int) string {
	runes := []rune(line)
	caretAt := utf8.RuneCountInString(line[:min(max(column-1, 0), len(line))])
	length = max(length, 1)

	prefix, suffix := "", ""
	if avail := width - len(contextIndent) - 2; width > 0 && len(runes) > avail && avail > 0 {
		start := max(0, min(caretAt-avail/4, len(runes)-avail))
		end := min(len(runes), start+avail)
		if start > 0 {
			prefix = "…"
		}
		if end < len(runes) {
			suffix = "…"
		}
		runes = runes[start:end]
		caretAt -= start
		length = min(length, max(len(runes)-caretAt, 1))
	}

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(prefix+string(runes)+suffix) + "\n")
	if column > 0 {
		padding := contextIndent + strings.Repeat(" ", utf8.RuneCountInString(prefix)+caretAt)
		builder.WriteString(padding + s.Caret.Render(strings.Repeat("^", length)) + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, offenseCount int) string {
	header := s.FilePath.Render(path)
	switch offenseCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 offense)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d offenses)", offenseCount))
	}
	return header
}
