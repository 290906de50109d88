// Package batch runs many commands with bounded parallelism and persists each
// result as soon as its task completes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/report"
	"github.com/deixis/ftpilot/internal/runner"
)

const (
	DefaultWorkers     = 4
	DefaultTaskTimeout = 300 * time.Second
)

// ErrAbandoned is recorded for a task that exceeded the orchestrator timeout.
var ErrAbandoned = errors.New("task abandoned")

// Runner executes one command. Implemented by runner.Runner.
type Runner interface {
	Run(ctx context.Context, spec command.Spec, label string) (runner.Result, error)
}

// Orchestrator runs a batch of commands through a fixed pool of workers.
//
// Each task gets its own context bounded by TaskTimeout. Because the runner
// derives its process context from it, a task that exceeds TaskTimeout has its
// process group killed. Such a task is abandoned: its output is not persisted
// and the batch moves on.
type Orchestrator struct {
	Runner      Runner
	Store       report.Store
	Namer       report.Namer
	Workers     int
	TaskTimeout time.Duration // zero means DefaultTaskTimeout, negative disables it
	Logger      *zap.Logger
	Progress    io.Writer // optional progress bar output

	// OnDone, when set, is called once per task in completion order.
	// Calls are serialized.
	OnDone func(Outcome)
}

// Outcome is the result of one task.
type Outcome struct {
	Spec      command.Spec
	Result    runner.Result
	File      string // path of the persisted result, empty if nothing was stored
	Abandoned bool
	Err       error // launch, persistence or abandonment error
}

// Persisted reports whether the task's output was stored.
func (o Outcome) Persisted() bool { return o.File != "" }

// Summary collects the outcomes of a batch in completion order.
type Summary struct {
	ID       string
	Workflow string
	Outcomes []Outcome
}

// Counts tallies outcomes by kind.
type Counts struct {
	Total         int
	Succeeded     int
	Failed        int
	TimedOut      int
	Abandoned     int
	PersistErrors int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d total, %d succeeded, %d failed, %d timed out, %d abandoned, %d not saved",
		c.Total, c.Succeeded, c.Failed, c.TimedOut, c.Abandoned, c.PersistErrors)
}

// Counts tallies the summary's outcomes.
func (s Summary) Counts() Counts {
	c := Counts{Total: len(s.Outcomes)}
	for _, o := range s.Outcomes {
		switch {
		case o.Abandoned:
			c.Abandoned++
		case o.Result.TimedOut:
			c.TimedOut++
		case o.Result.Succeeded:
			c.Succeeded++
		default:
			c.Failed++
		}
		if !o.Abandoned && errors.Is(o.Err, report.ErrPersistence) {
			c.PersistErrors++
		}
	}
	return c
}

// Run executes specs and blocks until every task has finished or been
// abandoned. A failing task never affects the others. Cancelling ctx stops
// running tasks and skips tasks that have not started.
func (o *Orchestrator) Run(ctx context.Context, workflow string, specs []command.Spec) Summary {
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := o.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	taskTimeout := o.TaskTimeout
	if taskTimeout == 0 {
		taskTimeout = DefaultTaskTimeout
	}

	summary := Summary{ID: uuid.New().String(), Workflow: workflow}
	logger = logger.With(zap.String("batch_id", summary.ID), zap.String("workflow", workflow))
	logger.Info("batch started", zap.Int("tasks", len(specs)), zap.Int("workers", workers))

	var bar *progressbar.ProgressBar
	if o.Progress != nil {
		bar = progressbar.NewOptions(len(specs),
			progressbar.OptionSetWriter(o.Progress),
			progressbar.OptionSetDescription(workflow),
			progressbar.OptionShowCount(),
		)
	}

	var mu sync.Mutex
	done := func(out Outcome) {
		mu.Lock()
		defer mu.Unlock()
		summary.Outcomes = append(summary.Outcomes, out)
		if bar != nil {
			_ = bar.Add(1)
		}
		if o.OnDone != nil {
			o.OnDone(out)
		}
	}

	// Tasks never return an error, so no task cancels another.
	var g errgroup.Group
	g.SetLimit(workers)
	for _, spec := range specs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			done(o.task(ctx, logger, workflow, spec, taskTimeout))
			return nil
		})
	}
	_ = g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Info("batch finished", zap.Stringer("counts", summary.Counts()))
	return summary
}

func (o *Orchestrator) task(ctx context.Context, logger *zap.Logger, workflow string, spec command.Spec, timeout time.Duration) Outcome {
	out := Outcome{Spec: spec}
	logger = logger.With(zap.String("command", spec.String()))

	var (
		taskCtx context.Context
		cancel  context.CancelFunc
	)
	if timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		taskCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	res, err := o.Runner.Run(taskCtx, spec, command.StrategyOf(spec))
	out.Result = res
	logger = logger.With(zap.String("run_id", res.RunID))

	if errors.Is(taskCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		out.Abandoned = true
		out.Err = fmt.Errorf("%w after %s", ErrAbandoned, timeout)
		logger.Warn("task abandoned", zap.Duration("timeout", timeout))
		return out
	}
	if ctx.Err() != nil {
		out.Err = ctx.Err()
		return out
	}

	switch {
	case err != nil:
		// The program never ran; keep the diagnostic alongside other results.
		out.Err = err
		logger.Error("launch failed", zap.Error(err))
		if res.Output == "" {
			res.Output = err.Error()
		}
	case res.TimedOut:
		out.Err = runner.ErrProcessTimeout
		logger.Warn("process timed out", zap.Duration("duration", res.Duration))
	default:
		logger.Info("task finished",
			zap.Bool("succeeded", res.Succeeded),
			zap.Int("exit_code", res.ExitCode),
			zap.Duration("duration", res.Duration))
	}

	label := res.Label
	if label == "" {
		label = command.StrategyOf(spec)
	}
	name := o.Namer.Name(workflow, label, spec.String())
	file, perr := o.Store.Save(report.ResultFile{Name: name, Content: res.Output})
	if perr != nil {
		out.Err = errors.Join(out.Err, perr)
		logger.Error("persisting result", zap.String("file", name), zap.Error(perr))
		return out
	}
	out.File = file
	logger.Debug("result saved", zap.String("file", file))
	return out
}
