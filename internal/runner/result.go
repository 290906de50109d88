package runner

import (
	"time"

	"github.com/deixis/ftpilot/internal/command"
)

// Result holds the outcome of one command execution. It is never modified
// after Run returns.
type Result struct {
	RunID     string        // unique identifier for this run
	Command   command.Spec  // the argv that was executed
	Label     string        // context label, usually the strategy name
	Output    string        // stdout and stderr interleaved (may be truncated)
	ExitCode  int           // process exit code, -1 if it did not exit normally
	Succeeded bool          // exited before the timeout with code 0
	TimedOut  bool          // killed because the deadline elapsed
	Truncated bool          // true if output exceeded the size cap
	Started   time.Time     // wall-clock start
	Duration  time.Duration // time until the process was reaped
}

// Status returns a one-word summary of the result.
func (r Result) Status() string {
	switch {
	case r.TimedOut:
		return "timeout"
	case r.Succeeded:
		return "ok"
	default:
		return "failed"
	}
}
