// Package workflow ties the declarative workflow descriptors to command
// building and execution. It is consumed by both the MCP server and the
// CLI commands.
package workflow

import (
	"context"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/deixis/ftpilot/internal/batch"
	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/report"
	"github.com/deixis/ftpilot/internal/runner"
)

// singleGrace is added to the run timeout when a lone command goes through
// the orchestrator, so the runner's own deadline always fires first.
const singleGrace = 30 * time.Second

// Engine holds shared dependencies for all workflow operations.
type Engine struct {
	Session config.Session
	Runner  batch.Runner // nil: a runner.Runner built from Session
	Store   report.Store // nil: a DiskStore on Session.ResultsDir
	Logger  *zap.Logger

	Progress io.Writer           // batch progress bar output, optional
	OnDone   func(batch.Outcome) // per-task completion callback, optional
}

// Plan resolves the strategies of a fan-out and builds the commands of d.
func (e *Engine) Plan(d Descriptor, p Params) ([]command.Spec, error) {
	var strategies []string
	if p.All && d.Fanout {
		var err error
		strategies, err = Strategies(e.Session)
		if err != nil {
			return nil, err
		}
	}
	return Plan(e.Session, d, p, strategies)
}

// Execute runs specs and persists their output under the workflow label.
//
// A single command runs with the session's run timeout, or none for
// unbounded workflows such as live trading. More than one command goes
// through the bounded pool with the per-task timeout. A missing results
// directory aborts before anything is launched.
func (e *Engine) Execute(ctx context.Context, d Descriptor, specs []command.Spec) (batch.Summary, error) {
	if err := e.Session.Require(config.Results); err != nil {
		return batch.Summary{}, err
	}

	runTimeout := e.Session.Timeout
	if d.Unbounded {
		runTimeout = runner.NoTimeout
	}

	o := &batch.Orchestrator{
		Runner:      e.runner(runTimeout),
		Store:       e.store(),
		Namer:       report.Namer{MaxLength: e.Session.MaxNameLength},
		Workers:     e.Session.Workers,
		TaskTimeout: e.Session.TaskTimeout,
		Logger:      e.logger(),
		OnDone:      e.OnDone,
	}
	if len(specs) == 1 {
		o.Workers = 1
		o.TaskTimeout = runTimeout
		if runTimeout > 0 {
			o.TaskTimeout = runTimeout + singleGrace
		}
	} else {
		o.Progress = e.Progress
	}
	return o.Run(ctx, d.Label, specs), nil
}

func (e *Engine) runner(timeout time.Duration) batch.Runner {
	if e.Runner != nil {
		return e.Runner
	}
	return &runner.Runner{
		Workspace: e.Session.Root,
		Timeout:   timeout,
		MaxOutput: e.Session.MaxOutput,
	}
}

func (e *Engine) store() report.Store {
	if e.Store != nil {
		return e.Store
	}
	return report.NewDiskStore(e.Session.ResultsDir)
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

// ResolveProgram returns the absolute path of the trading runner, or
// ErrProgramUnavailable.
func ResolveProgram(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", ErrProgramUnavailable{Name: name}
	}
	return path, nil
}
