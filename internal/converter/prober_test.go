package converter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_CheckInstalled(t *testing.T) {
	tests := []struct {
		name      string
		result    Result
		err       error
		installed bool
	}{
		{"clean exit means installed", Result{ExitCode: 0}, nil, true},
		{"non-zero exit means not installed", Result{ExitCode: 1}, nil, false},
		{"spawn error means not installed", Result{}, errors.New("not found"), false},
		{"timeout means not installed", Result{}, context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{handler: func(string, []string) (Result, error) {
				return tt.result, tt.err
			}}
			p := NewProber(runner, "soffice", 0, nil)

			assert.Equal(t, tt.installed, p.CheckInstalled(context.Background()))

			require.Len(t, runner.calls, 1)
			assert.Equal(t, []string{"soffice", "--version"}, runner.calls[0])
		})
	}
}

func TestProber_BoundsTheProbe(t *testing.T) {
	var deadline time.Time
	runner := &fakeRunner{handler: func(string, []string) (Result, error) {
		return Result{ExitCode: 0}, nil
	}}

	p := NewProber(&deadlineRecorder{inner: runner, deadline: &deadline}, "soffice", 2*time.Second, nil)
	require.True(t, p.CheckInstalled(context.Background()))

	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestProber_RepeatedCallsAreIndependent(t *testing.T) {
	installed := false
	runner := &fakeRunner{handler: func(string, []string) (Result, error) {
		if installed {
			return Result{ExitCode: 0}, nil
		}
		return Result{}, errors.New("not found")
	}}
	p := NewProber(runner, "soffice", 0, nil)

	assert.False(t, p.CheckInstalled(context.Background()))

	// The user installed the converter between checks; no stale result
	installed = true
	assert.True(t, p.CheckInstalled(context.Background()))
}

// deadlineRecorder captures the context deadline the prober applies
type deadlineRecorder struct {
	inner    Runner
	deadline *time.Time
}

func (r *deadlineRecorder) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if d, ok := ctx.Deadline(); ok {
		*r.deadline = d
	}
	return r.inner.Run(ctx, name, args...)
}
