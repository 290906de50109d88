// Package runner executes external commands with a hard timeout, merged output
// capture and guaranteed cleanup of the spawned processes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/deixis/ftpilot/internal/command"
)

// DefaultTimeout applies when Runner.Timeout is zero.
const DefaultTimeout = 600 * time.Second

// NoTimeout disables the deadline. The process then runs until it exits or
// the caller's context is done.
const NoTimeout time.Duration = -1

// DefaultMaxOutput applies when Runner.MaxOutput is zero.
const DefaultMaxOutput = 16 << 20

// waitDelay bounds how long Run waits for output pipes held open by
// descendants after the process exited or was killed.
const waitDelay = 5 * time.Second

var (
	// ErrProcessTimeout reports a process killed after exceeding its deadline.
	// Run does not return it; TimedOut is set on the Result instead.
	ErrProcessTimeout = errors.New("process timeout")
	// ErrLaunchFailure is returned when the program could not be started.
	ErrLaunchFailure = errors.New("launch failure")
	// ErrEmptyCommand is returned for an empty argv.
	ErrEmptyCommand = errors.New("empty command")
)

// Runner executes commands from a fixed working directory.
type Runner struct {
	Workspace string
	Timeout   time.Duration
	MaxOutput int // bytes
}

// Run executes spec without a shell and blocks until it exits or the timeout
// elapses. Output of stdout and stderr is captured into one stream.
//
// A timed out process, together with its process group, is killed and the
// Result reports TimedOut with whatever output was captured. If the program
// cannot be started, Run returns an error wrapping ErrLaunchFailure along with
// a failed Result. No spawned process is left running when Run returns.
func (r *Runner) Run(ctx context.Context, spec command.Spec, label string) (Result, error) {
	if label == "" {
		label = command.StrategyOf(spec)
	}
	res := Result{
		RunID:    uuid.New().String(),
		Command:  append(command.Spec(nil), spec...),
		Label:    label,
		ExitCode: -1,
	}
	if len(spec) == 0 {
		return res, ErrEmptyCommand
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxOutput := r.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec[0], spec[1:]...)
	cmd.Dir = r.Workspace
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	// The same writer for both streams makes exec serialize the writes.
	var buf bytes.Buffer
	out := &limitWriter{buf: &buf, limit: maxOutput}
	cmd.Stdout = out
	cmd.Stderr = out

	res.Started = time.Now()
	if err := cmd.Start(); err != nil {
		res.Duration = time.Since(res.Started)
		return res, fmt.Errorf("%w: executing %s: %w", ErrLaunchFailure, spec[0], err)
	}
	runErr := cmd.Wait()
	killProcessGroup(cmd)
	res.Duration = time.Since(res.Started)

	res.Output = buf.String()
	res.Truncated = out.truncated
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err := runCtx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			res.TimedOut = true
			return res, nil
		}
		return res, fmt.Errorf("running %s: %w", spec[0], err)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) && !errors.Is(runErr, exec.ErrWaitDelay) {
			return res, fmt.Errorf("waiting for %s: %w", spec[0], runErr)
		}
	}
	res.Succeeded = res.ExitCode == 0
	return res, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf       *bytes.Buffer
	limit     int
	truncated bool
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		w.truncated = w.truncated || len(p) > 0
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		w.truncated = true
		return len(p), nil
	}
	return w.buf.Write(p)
}
