package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deixis/ftpilot/internal/batch"
	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/workflow"
)

var (
	flagConfigFile  string
	flagParams      workflow.Params
	flagWorkers     int
	flagTaskTimeout time.Duration
	flagDryRun      bool
)

var runCmd = &cobra.Command{
	Use:   "run <workflow>",
	Short: "Run a workflow non-interactively",
	Long: `Run a workflow from flags. Workflows: backtest, download, hyperopt, trade, plot.

Examples:
  ftpilot run backtest --config-file config.json --all --timeframe 5m --timerange 20240601-20240825
  ftpilot run hyperopt --config-file config.json --strategy Sample --loss SharpeHyperOptLoss \
      --spaces "roi stoploss" --epochs 100 --timeframe 1h --timerange 20240701-
  ftpilot run download --config-file config.json --timeframe "1m 5m 15m" --timerange 20240601- --dry-run`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: tags(),
	RunE:      doRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&flagConfigFile, "config-file", "c", "", "runner configuration file in the config directory (required)")
	f.StringVarP(&flagParams.Strategy, "strategy", "s", "", "strategy name")
	f.BoolVarP(&flagParams.All, "all", "a", false, "run once per strategy (backtest, hyperopt)")
	f.StringVar(&flagParams.Timeframe, "timeframe", "", "timeframe, several separated by spaces for download")
	f.StringVar(&flagParams.Timerange, "timerange", "", "timerange, e.g. 20240601-20240825")
	f.StringVar(&flagParams.Loss, "loss", "", "hyperopt loss function")
	f.StringVar(&flagParams.Spaces, "spaces", "", `hyperopt spaces, e.g. "roi stoploss"`)
	f.IntVarP(&flagParams.Epochs, "epochs", "e", 0, "hyperopt epochs")
	f.StringVar(&flagParams.Pairs, "pairs", "", "pairs to plot, e.g. BTC/USDT")
	f.IntVar(&flagWorkers, "workers", 0, "parallel commands in a batch (default from config)")
	f.DurationVar(&flagTaskTimeout, "task-timeout", 0, "per-command timeout in a batch (default from config)")
	f.BoolVar(&flagDryRun, "dry-run", false, "print the commands without running them")
	_ = runCmd.MarkFlagRequired("config-file")
}

func tags() []string {
	out := make([]string, len(workflow.Descriptors))
	for i, d := range workflow.Descriptors {
		out[i] = string(d.Tag)
	}
	return out
}

func doRun(cmd *cobra.Command, args []string) error {
	d, err := workflow.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w (valid: %s)", err, strings.Join(tags(), ", "))
	}
	s := session.
		WithConfigFile(flagConfigFile).
		WithWorkers(flagWorkers).
		WithTaskTimeout(flagTaskTimeout)

	e := newEngine(s)
	specs, err := e.Plan(d, flagParams)
	if err != nil {
		return err
	}
	if flagDryRun {
		for _, spec := range specs {
			fmt.Println(spec.String())
		}
		return nil
	}
	return execute(cmd.Context(), e, d, specs)
}

func newEngine(s config.Session) *workflow.Engine {
	return &workflow.Engine{
		Session: s,
		Logger:  zlog.Logger,
	}
}

// execute runs specs and prints each outcome. A single command also has its
// output echoed, as an operator watching one run expects.
func execute(ctx context.Context, e *workflow.Engine, d workflow.Descriptor, specs []command.Spec) error {
	printCommands(os.Stdout, specs)
	e.OnDone = func(o batch.Outcome) {
		if len(specs) == 1 {
			fmt.Println(o.Result.Output)
		}
		printOutcome(os.Stdout, o)
	}
	if len(specs) > 1 {
		e.Progress = os.Stderr
	}

	sum, err := e.Execute(ctx, d, specs)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, sum)
	if c := sum.Counts(); c.Succeeded != c.Total {
		return fmt.Errorf("%d of %d commands did not succeed", c.Total-c.Succeeded, c.Total)
	}
	return nil
}
