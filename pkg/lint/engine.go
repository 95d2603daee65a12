package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/rbfix/internal/logging"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/directive"
	"github.com/yaklabco/rbfix/pkg/disable"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/rubyast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the parsed file.
	File *rubyast.File

	// Diagnostics contains all offenses found, in rule order.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// Suppressed counts offenses dropped because a rubocop:disable or
	// rubocop:todo directive already covers them.
	Suppressed int

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fix edits, todo
// directives included.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// CorrectableCount returns the number of diagnostics whose fix edits are
// scheduled for application.
func (fr *FileResult) CorrectableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Correctable {
			count++
		}
	}
	return count
}

// TodoCount returns the number of diagnostics silenced with a todo directive.
func (fr *FileResult) TodoCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Todo {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser parses Ruby files.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses and lints a single file.
//
// Offenses already covered by a directive are dropped. Fix edits of rules
// resolved for auto-fix are collected; offenses of rules resolved for
// DisableUncorrectable that carry no applied fix get todo directive edits
// instead. Files with syntax errors are reported but never edited.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	file, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	resolved := ResolveRules(e.Registry, cfg)
	index := directive.BuildIndex(file.Comments)
	nodes := NewNodeCache(file.Root)

	result := &FileResult{
		File:       file,
		RuleErrors: make(map[string]error),
	}

	var (
		allEdits []fix.TextEdit
		todos    []int
	)

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, file, cfg, rr.Config)
		ruleCtx.Registry = e.Registry
		ruleCtx.nodes = nodes

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for _, diag := range diags {
			if index.Disabled(rr.Rule.ID(), diag.StartLine) {
				result.Suppressed++
				continue
			}

			diag.Severity = rr.Severity
			if diag.FilePath == "" {
				diag.FilePath = path
			}
			if diag.RuleName == "" {
				diag.RuleName = rr.Rule.Name()
			}

			switch {
			case rr.Autocorrect && diag.HasFix():
				diag.Correctable = true
				allEdits = append(allEdits, diag.FixEdits...)
			case rr.DisableUncorrectable:
				todos = append(todos, len(result.Diagnostics))
			}

			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}

	if len(todos) > 0 {
		allEdits = append(allEdits, e.placeTodos(ctx, file, cfg, result.Diagnostics, todos)...)
	}

	if file.HasErrors {
		if len(allEdits) > 0 {
			logger.Debug("not fixing file with syntax errors", logging.FieldPath, path)
		}
		return result, nil
	}

	// Validate and prepare edits, merging deletions and filtering conflicts.
	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, len(content))
		if err != nil {
			// Validation error, not a conflict. Keep diagnostics, drop edits.
			logger.Debug("discarding invalid edits", logging.FieldPath, path, logging.FieldError, err)
			result.EditConflicts = true
			return result, nil
		}
		result.Edits = accepted
		result.SkippedEdits = skipped
		result.EditConflicts = len(skipped) > 0
		if result.EditConflicts {
			logger.Debug("skipped conflicting edits", logging.FieldPath, path, logging.FieldSkipped, len(skipped))
		}
	}

	return result, nil
}

// placeTodos computes todo directive edits for the diagnostics at the given
// indexes, marks them as Todo, and returns the edits.
//
// Offenses sharing a line, or sharing a heredoc, percent array, or continued
// string, are silenced by one directive naming all of their rules. The edits
// are attached to the first diagnostic of each group.
func (e *Engine) placeTodos(
	ctx context.Context,
	file *rubyast.File,
	cfg *config.Config,
	diags []Diagnostic,
	todos []int,
) []fix.TextEdit {
	logger := logging.FromContext(ctx)
	maxLen := NewPolicy(cfg).MaxLineLength()

	type group struct {
		first int
		names []string
	}

	var order []string
	groups := make(map[string]*group)
	for _, i := range todos {
		key := todoAnchor(file, diags[i])
		g, ok := groups[key]
		if !ok {
			g = &group{first: i}
			groups[key] = g
			order = append(order, key)
		}
		g.names = append(g.names, diags[i].RuleID)
		diags[i].FixEdits = nil
		diags[i].Todo = true
	}

	var edits []fix.TextEdit
	for _, key := range order {
		g := groups[key]
		d := &diags[g.first]

		placer := disable.NewPlacer(file, g.names, maxLen)
		d.FixEdits = fix.Lower(placer.Place(d.Range(file.Buffer)))
		edits = append(edits, d.FixEdits...)

		logger.Debug("placed todo directive",
			logging.FieldPath, file.Path,
			logging.FieldLine, d.StartLine,
			logging.FieldRule, g.names)
	}
	return edits
}

// todoAnchor keys a diagnostic by the atomic span containing it, or by its
// first line.
func todoAnchor(file *rubyast.File, d Diagnostic) string {
	if span, ok := disable.FindAtomicSpan(d.Range(file.Buffer), file.Root); ok {
		return fmt.Sprintf("span:%d", span.ExpandToWholeLines().Begin())
	}
	return fmt.Sprintf("line:%d", d.StartLine)
}
