package cli

import (
	"errors"

	"github.com/yaklabco/dllup/pkg/runner"
)

// Exit codes for dllup.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitDiagnostics indicates classification found degraded input in
	// strict mode.
	ExitDiagnostics = 1

	// ExitUnreadable indicates some files could not be read.
	ExitUnreadable = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrDiagnosticsFound is returned in strict mode when any file produced
	// diagnostics.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrUnreadableFiles is returned when some files could not be read.
	ErrUnreadableFiles = errors.New("some files could not be read")

	// ErrConfig wraps configuration loading and validation failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage wraps invalid flag values and arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitUnreadable
	case strict && result.HasDiagnostics():
		return ExitDiagnostics
	default:
		return ExitSuccess
	}
}

// errorForExitCode maps a result exit code to the error a command returns.
func errorForExitCode(code int) error {
	switch code {
	case ExitDiagnostics:
		return ErrDiagnosticsFound
	case ExitUnreadable:
		return ErrUnreadableFiles
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrUnreadableFiles):
		return ExitUnreadable
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only signals an exit status and needs no log
// line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrDiagnosticsFound) || errors.Is(err, ErrUnreadableFiles)
}
