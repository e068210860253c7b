package converter

import (
	"fmt"
	"time"
)

// NotInstalledError indicates the converter binary is missing or unresponsive.
// Recoverable: the user installs LibreOffice and retries.
type NotInstalledError struct {
	Path string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf(`LibreOffice not found (looked for %s). Please install it:

  https://www.libreoffice.org/download/`, e.Path)
}

// SpawnError indicates the converter process could not be started at all
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start converter %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError indicates the converter rejected the input, usually a malformed
// or unsupported source file
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("converter exited with code %d", e.Code)
	if e.Stderr != "" {
		// Truncate stderr if too long
		stderr := e.Stderr
		if len(stderr) > 500 {
			stderr = stderr[:500] + "..."
		}
		msg += fmt.Sprintf("\nstderr: %s", stderr)
	}
	return msg
}

// OutputMissingError indicates the converter reported success but produced
// no artifact at the expected path
type OutputMissingError struct {
	Output string
}

func (e *OutputMissingError) Error() string {
	return fmt.Sprintf("converter exited cleanly but produced no output at %s", e.Output)
}

// TimeoutError indicates the converter exceeded its wall-clock bound and was
// forcibly terminated
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("conversion timed out after %s: the file may be too large or too complex", e.Timeout)
}

// NoOutputFilesError indicates image conversion exited cleanly but no page
// images matched the expected name pattern
type NoOutputFilesError struct {
	Pattern string
}

func (e *NoOutputFilesError) Error() string {
	return fmt.Sprintf("no page images produced (expected %s)", e.Pattern)
}
