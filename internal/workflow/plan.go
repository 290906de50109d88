package workflow

import (
	"fmt"

	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/config"
)

// Plan builds the commands for workflow d. With p.All set on a fan-out
// workflow, one command is built per strategy in strategies.
func Plan(s config.Session, d Descriptor, p Params, strategies []string) ([]command.Spec, error) {
	if !(p.All && d.Fanout) {
		spec, err := build(s, d.Tag, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Label, err)
		}
		return []command.Spec{spec}, nil
	}

	if len(strategies) == 0 {
		return nil, fmt.Errorf("%s: %w in %s", d.Label, ErrNoStrategies, s.StrategiesDir)
	}
	specs := make([]command.Spec, 0, len(strategies))
	for _, name := range strategies {
		p.Strategy = name
		spec, err := build(s, d.Tag, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Label, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func build(s config.Session, tag Tag, p Params) (command.Spec, error) {
	switch tag {
	case Backtest:
		return command.Backtest(s, command.BacktestParams{
			Strategy:  p.Strategy,
			Timeframe: p.Timeframe,
			Timerange: p.Timerange,
		})
	case Download:
		return command.DownloadData(s, command.DownloadParams{
			Timeframe: p.Timeframe,
			Timerange: p.Timerange,
		})
	case Hyperopt:
		return command.Hyperopt(s, command.HyperoptParams{
			Strategy:  p.Strategy,
			Loss:      p.Loss,
			Spaces:    p.Spaces,
			Timeframe: p.Timeframe,
			Timerange: p.Timerange,
			Epochs:    p.Epochs,
		})
	case Trade:
		return command.Trade(s, command.TradeParams{Strategy: p.Strategy})
	case Plot:
		return command.PlotProfit(s, command.PlotParams{
			Strategy:  p.Strategy,
			Timeframe: p.Timeframe,
			Pairs:     p.Pairs,
			Timerange: p.Timerange,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWorkflow, tag)
}
