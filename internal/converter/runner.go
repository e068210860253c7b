package converter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Result holds the outcome of a completed converter invocation
type Result struct {
	ExitCode int
	Stderr   string
}

// Runner is the process capability boundary. Run spawns the named executable
// and waits for it to exit. A Result is returned for any process that
// started and exited, clean or not; the error is non-nil only for spawn
// failures and context expiry. On context expiry the child has already been
// forcibly terminated and the returned error matches context.DeadlineExceeded
// or context.Canceled.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// execRunner runs real processes via os/exec
type execRunner struct{}

// NewRunner returns a Runner backed by os/exec
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	// stdio is never inherited; stdout is discarded, stderr captured for
	// diagnostic reporting
	var stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// CommandContext kills the child when the context expires; the
		// resulting "signal: killed" error must not be mistaken for a
		// converter failure
		if ctx.Err() != nil {
			return Result{Stderr: stderr.String()}, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}, nil
		}

		// Executable not found or not executable
		return Result{}, err
	}

	return Result{ExitCode: 0, Stderr: stderr.String()}, nil
}
