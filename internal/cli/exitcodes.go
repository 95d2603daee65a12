package cli

import (
	"errors"

	"github.com/yaklabco/rbfix/pkg/config"
	"github.com/yaklabco/rbfix/pkg/runner"
)

// Exit codes for rbfix.
const (
	// ExitSuccess indicates successful execution with no failing offenses.
	ExitSuccess = 0

	// ExitLintErrors indicates offenses with error severity remain, or a
	// file could not be processed.
	ExitLintErrors = 1

	// ExitLintWarnings indicates warnings remain under --strict.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrLintIssuesFound is returned when the run ends with failing offenses.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage is returned for invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// issuesError carries the exit code of a run with failing offenses.
type issuesError struct {
	code int
}

func (e *issuesError) Error() string { return ErrLintIssuesFound.Error() }

func (e *issuesError) Unwrap() error { return ErrLintIssuesFound }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() || result.Stats.FilesErrored > 0 {
		return ExitLintErrors
	}

	if strict && result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var issues *issuesError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &issues):
		return issues.code
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
