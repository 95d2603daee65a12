package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/fsutil"
	"github.com/yaklabco/rbfix/pkg/lint"
)

func writeRuby(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.rb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(got)
}

func fixOptions() lint.PipelineOptions {
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true
	opts.Backup.Enabled = false
	return opts
}

func TestPipeline_ProcessFile_LintOnly(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	result, err := pipeline.ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.NotNil(t, result.OriginalInfo)
	assert.False(t, result.Modified)
	assert.False(t, result.Written)
	assert.Equal(t, "issues found", result.Summary())
	assert.Equal(t, "foo(1)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_Fix(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\nfoo(2)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), fixOptions())
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.True(t, result.Written)
	assert.False(t, result.BackupCreated)
	assert.Equal(t, 1, result.FixPasses)
	assert.Equal(t, 2, result.Corrected)
	assert.Equal(t, 2, result.TotalEditsApplied)
	assert.False(t, result.HasIssues(), "final pass sees the fixed content")
	assert.Equal(t, "bar(1)\nbar(2)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_MultiplePasses(t *testing.T) {
	t.Parallel()

	// Each pass halves the run of a's.
	path := writeRuby(t, "aaaa\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Shrink", "aa", "a")))

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), fixOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, result.FixPasses)
	assert.Equal(t, 3, result.Corrected)
	assert.Equal(t, "a\n", readFile(t, path))
}

func TestPipeline_ProcessFile_MaxFixPasses(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "aaaaaaaa\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Shrink", "aa", "a")))

	opts := fixOptions()
	opts.MaxFixPasses = 1

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FixPasses)
	assert.Equal(t, "aaaa\n", readFile(t, path))
}

func TestPipeline_ProcessFile_DisableUncorrectable(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\nbaz(2)\n")
	pipeline := lint.NewPipeline(newTestEngine(
		needleRule("Test/Foo", "foo", ""),
		needleRule("Test/Baz", "baz", "qux"),
	))

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(true), fixOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.TodosAdded)
	assert.Equal(t, 1, result.Corrected)
	assert.False(t, result.HasIssues(), "the todo directive suppresses the remaining offense")
	assert.Equal(t, "foo(1) # rubocop:todo Test/Foo\nqux(2)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	opts := fixOptions()
	opts.DryRun = true

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), opts)
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.False(t, result.Written)
	require.NotNil(t, result.Diff)
	assert.True(t, result.Diff.HasChanges())
	assert.Equal(t, 1, result.Diff.Additions)
	assert.Equal(t, 1, result.Diff.Deletions)
	assert.Equal(t, "bar(1)\n", string(result.ModifiedContent))
	assert.Equal(t, "foo(1)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_Backup(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	opts := fixOptions()
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), opts)
	require.NoError(t, err)

	assert.True(t, result.BackupCreated)
	assert.Equal(t, "fixed (backup created)", result.Summary())
	assert.Equal(t, "foo(1)\n", readFile(t, path+fsutil.BackupSuffix))
	assert.Equal(t, "bar(1)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_RejectsBrokenFix(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo(1)", "foo(1")))

	result, err := pipeline.ProcessFile(context.Background(), path, fixConfig(false), fixOptions())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "fixes introduced syntax errors", result.SkipReason)
	assert.False(t, result.Written)
	assert.Equal(t, "foo(1)\n", readFile(t, path))
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(newTestEngine())
	path := filepath.Join(t.TempDir(), "missing.rb")

	_, err := pipeline.ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, lint.ErrFileNotFound)
	assert.True(t, lint.IsPipelineError(err))
}

func TestPipeline_ProcessFile_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeRuby(t, "foo(1)\n")
	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.ProcessFile(ctx, path, fixConfig(false), fixOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(newTestEngine(needleRule("Test/Foo", "foo", "bar")))

	opts := fixOptions()
	opts.DryRun = true

	result, err := pipeline.ProcessContent(context.Background(), "mem.rb", []byte("foo\n"), fixConfig(false), opts)
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.Equal(t, "bar\n", string(result.ModifiedContent))
	require.NotNil(t, result.Diff)
	assert.Equal(t, "mem.rb", result.Diff.Path)
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *lint.PipelineResult
		want   string
	}{
		{"skipped", &lint.PipelineResult{Skipped: true, SkipReason: "busy"}, "skipped: busy"},
		{"written with backup", &lint.PipelineResult{Written: true, BackupCreated: true}, "fixed (backup created)"},
		{"written", &lint.PipelineResult{Written: true}, "fixed"},
		{"pending", &lint.PipelineResult{Modified: true}, "changes pending"},
		{
			"issues",
			&lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{{Message: "x"}}}},
			"issues found",
		},
		{"ok", &lint.PipelineResult{}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	t.Parallel()

	defaults := lint.DefaultPipelineOptions()
	assert.False(t, defaults.Fix)
	assert.False(t, defaults.DryRun)
	assert.True(t, defaults.StrictRaceDetection)
	assert.True(t, defaults.ReParseAfterFix)

	assert.Equal(t, defaults, lint.PipelineOptionsFromConfig(nil))

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true
	opts := lint.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Fix)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.ReParseAfterFix)
}

func TestBackupConfigFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fsutil.DefaultBackupConfig(), lint.BackupConfigFromConfig(nil))

	cfg := config.NewConfig()
	backup := lint.BackupConfigFromConfig(cfg)
	assert.True(t, backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, backup.Mode)

	cfg.NoBackups = true
	assert.False(t, lint.BackupConfigFromConfig(cfg).Enabled)
}

func TestIsPipelineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"file not found", lint.ErrFileNotFound, true},
		{"permission denied", lint.ErrPermissionDenied, true},
		{"parse failure", lint.ErrParseFailure, true},
		{"write failure", lint.ErrWriteFailure, true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lint.IsPipelineError(tt.err))
		})
	}
}
