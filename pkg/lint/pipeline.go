package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/rbfix/internal/logging"
	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fix"
	"github.com/yaklabco/rbfix/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop when PipelineOptions does not.
const DefaultMaxFixPasses = 10

// Errors ProcessFile wraps around the underlying cause.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of running one file through a Pipeline. The
// embedded FileResult comes from the last lint pass, so after a successful
// fix it lists only what is left.
type PipelineResult struct {
	*FileResult

	Path         string
	OriginalInfo *fsutil.FileInfo

	// Modified is set once any pass applied edits. ModifiedContent then holds
	// the fixed source and, in dry-run mode, Diff holds its diff.
	Modified        bool
	ModifiedContent []byte
	Diff            *fix.Diff

	// Skipped means the fixes were dropped, either because they broke the
	// parse or because the file changed on disk while it was being fixed.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int

	// TodosAdded counts offenses silenced by an inserted todo directive.
	TodosAdded int

	// Corrected counts offenses whose fixes were applied, summed over
	// passes. An edit deferred by a conflict is counted in the pass that
	// applies it.
	Corrected int
}

// Summary describes the result in a couple of words.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls a Pipeline run.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection rehashes the file before writing instead of only
	// comparing its size and modification time.
	StrictRaceDetection bool

	// ReParseAfterFix drops the fixes when the fixed source has syntax
	// errors.
	ReParseAfterFix bool

	// MaxFixPasses caps lint-and-fix iterations. Zero means
	// DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions lints without fixing and keeps both safety checks
// on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}

// Pipeline lints a file, fixes it in repeated passes, and writes the result
// back only when it still parses and nobody else touched the file.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a Pipeline over engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, runs the fix loop, and in fix mode writes the
// outcome back. Before writing it checks that the file is unchanged since it
// was read and takes a backup when enabled.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.run(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if result.Modified && !opts.DryRun {
		if err := p.write(ctx, result, original, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *Pipeline) write(ctx context.Context, result *PipelineResult, original []byte, opts PipelineOptions) error {
	info := result.OriginalInfo

	changed, err := fsutil.CheckModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		logging.FromContext(ctx).Warn("file changed on disk, not writing fixes", logging.FieldPath, info.Path)
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	if opts.Backup.Enabled {
		result.BackupCreated, err = fsutil.CreateBackup(ctx, info, original, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	if err := fsutil.WriteAtomic(ctx, info.Path, result.ModifiedContent, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// ProcessContent runs the fix loop over in-memory content and never touches
// the disk.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.run(ctx, path, originalContent, cfg, opts)
}

// run applies the fix loop, then the re-parse check and the dry-run diff.
func (p *Pipeline) run(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, err := p.fixLoop(ctx, path, originalContent, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.ReParseAfterFix {
		if reason := p.validate(ctx, path, content); reason != "" {
			logging.FromContext(ctx).Warn("discarding fixes", logging.FieldPath, path, logging.FieldReason, reason)
			result.Skipped = true
			result.SkipReason = reason
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

// fixLoop lints content and, in fix mode, applies the accepted edits and
// lints again until no edits remain or MaxFixPasses is reached. Edits skipped
// for conflicts, and directives for offenses revealed by earlier fixes, are
// picked up by later passes. The FileResult of the last pass is stored in
// result.
func (p *Pipeline) fixLoop(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) ([]byte, error) {
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		result.TodosAdded += fileResult.TodoCount()
		result.Corrected += fileResult.CorrectableCount()

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	logging.FromContext(ctx).Debug("fix loop done",
		logging.FieldPath, path, logging.FieldPasses, result.FixPasses)

	return content, nil
}

// validate re-parses fixed content and returns a reason to discard it, or "".
func (p *Pipeline) validate(ctx context.Context, path string, content []byte) string {
	file, err := p.Engine.Parser.Parse(ctx, path, content)
	if err != nil {
		return fmt.Sprintf("re-parse failed: %v", err)
	}
	if file.HasErrors {
		return "fixes introduced syntax errors"
	}
	return ""
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline errors.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BackupConfigFromConfig maps the backups section and --no-backups onto a
// backup configuration.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives run options from the merged config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg != nil {
		opts.Fix = cfg.Fix
		opts.DryRun = cfg.DryRun
		opts.Backup = BackupConfigFromConfig(cfg)
	}
	return opts
}
