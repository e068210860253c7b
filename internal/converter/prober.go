package converter

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultProbeTimeout bounds the availability probe
const DefaultProbeTimeout = 5 * time.Second

// Prober tests whether the converter is present and responsive by invoking
// it with a version-query argument. The result is never cached: a user who
// has just installed LibreOffice must be picked up by the next check.
type Prober struct {
	runner  Runner
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewProber creates a Prober for the given converter binary
func NewProber(runner Runner, binary string, timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Prober{
		runner:  runner,
		binary:  binary,
		timeout: timeout,
		logger:  logger,
	}
}

// CheckInstalled reports whether the converter is installed and responsive.
// It never returns an error: spawn failures, non-zero exits, and timeouts
// all read as not installed. A probe that exceeds the bound has its child
// process terminated by the runner.
func (p *Prober) CheckInstalled(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.runner.Run(ctx, p.binary, "--version")
	if err != nil {
		p.logger.DebugContext(ctx, "availability probe failed",
			"binary", p.binary,
			"error", err,
		)
		return false
	}
	if res.ExitCode != 0 {
		p.logger.DebugContext(ctx, "availability probe exited non-zero",
			"binary", p.binary,
			"exit_code", res.ExitCode,
		)
		return false
	}
	return true
}
