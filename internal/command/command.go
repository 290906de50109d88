// Package command builds freqtrade invocations as argument vectors.
//
// Builders are pure: they validate that required parameters are present and
// map them to flags in a fixed order. Values are never interpreted, so an
// unknown strategy or malformed timerange surfaces as a runner failure.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kballard/go-shellquote"

	"github.com/deixis/ftpilot/internal/config"
)

// Subcommands of the trading runner.
const (
	SubDownloadData = "download-data"
	SubBacktesting  = "backtesting"
	SubHyperopt     = "hyperopt"
	SubTrade        = "trade"
	SubPlotProfit   = "plot-profit"
)

// GeneralLabel is the context label used for commands not tied to a strategy.
const GeneralLabel = "general"

// ErrMissingParam is returned when a required parameter is empty.
var ErrMissingParam = errors.New("missing parameter")

// Spec is one invocable command: the program name followed by its arguments.
type Spec []string

// Program returns the program name, or "" for an empty Spec.
func (s Spec) Program() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Args returns the arguments following the program name.
func (s Spec) Args() []string {
	if len(s) < 2 {
		return nil
	}
	return s[1:]
}

// String returns the command quoted for a POSIX shell. Parse reverses it.
func (s Spec) String() string {
	return shellquote.Join(s...)
}

// Flag returns the value following name, if present.
func (s Spec) Flag(name string) (string, bool) {
	for i := 1; i < len(s)-1; i++ {
		if s[i] == name {
			return s[i+1], true
		}
	}
	return "", false
}

// Parse splits a shell-quoted command line into a Spec.
func Parse(line string) (Spec, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("parsing command %q: empty", line)
	}
	return Spec(words), nil
}

// StrategyOf returns the strategy passed to spec, or GeneralLabel.
func StrategyOf(spec Spec) string {
	if v, ok := spec.Flag("--strategy"); ok && v != "" {
		return v
	}
	return GeneralLabel
}

// DownloadParams are the inputs of download-data.
type DownloadParams struct {
	Timeframe string `validate:"required"` // one or more, space or comma separated
	Timerange string `validate:"required"`
}

// BacktestParams are the inputs of backtesting.
type BacktestParams struct {
	Strategy  string `validate:"required"`
	Timeframe string `validate:"required"`
	Timerange string `validate:"required"`
}

// HyperoptParams are the inputs of hyperopt.
type HyperoptParams struct {
	Strategy  string `validate:"required"`
	Loss      string `validate:"required"`
	Spaces    string `validate:"required"` // space separated, e.g. "roi stoploss"
	Timeframe string `validate:"required"`
	Timerange string `validate:"required"`
	Epochs    int    `validate:"required"`
}

// TradeParams are the inputs of trade.
type TradeParams struct {
	Strategy string `validate:"required"`
}

// PlotParams are the inputs of plot-profit.
type PlotParams struct {
	Strategy  string `validate:"required"`
	Timeframe string `validate:"required"`
	Pairs     string `validate:"required"`
	Timerange string `validate:"required"`
}

var validate = validator.New()

func check(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			names = append(names, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(names, ", "))
	}
	return err
}

func base(s config.Session, sub string) (Spec, error) {
	if s.Program == "" {
		return nil, fmt.Errorf("%w: program", ErrMissingParam)
	}
	if s.ConfigFile == "" {
		return nil, fmt.Errorf("%w: config file", ErrMissingParam)
	}
	return Spec{s.Program, sub}, nil
}

// DownloadData builds `download-data`. A space-separated list of timeframes is
// joined with commas as the runner expects.
func DownloadData(s config.Session, p DownloadParams) (Spec, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	spec, err := base(s, SubDownloadData)
	if err != nil {
		return nil, err
	}
	timeframe := p.Timeframe
	if strings.ContainsAny(timeframe, " \t") {
		timeframe = strings.Join(strings.Fields(timeframe), ",")
	}
	return append(spec,
		"--config", s.ConfigPath(),
		"--timeframe", timeframe,
		"--timerange", p.Timerange,
	), nil
}

// Backtest builds `backtesting`.
func Backtest(s config.Session, p BacktestParams) (Spec, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	spec, err := base(s, SubBacktesting)
	if err != nil {
		return nil, err
	}
	return append(spec,
		"--strategy", p.Strategy,
		"--config", s.ConfigPath(),
		"--timerange", p.Timerange,
		"--timeframe", p.Timeframe,
	), nil
}

// Hyperopt builds `hyperopt`. Spaces are passed as separate arguments, the way
// the runner's --spaces option consumes them.
func Hyperopt(s config.Session, p HyperoptParams) (Spec, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	spec, err := base(s, SubHyperopt)
	if err != nil {
		return nil, err
	}
	spec = append(spec,
		"--strategy", p.Strategy,
		"--hyperopt-loss", p.Loss,
		"--spaces",
	)
	spec = append(spec, strings.Fields(p.Spaces)...)
	return append(spec,
		"--timerange", p.Timerange,
		"-e", fmt.Sprint(p.Epochs),
		"--config", s.ConfigPath(),
		"--timeframe", p.Timeframe,
	), nil
}

// Trade builds `trade`.
func Trade(s config.Session, p TradeParams) (Spec, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	spec, err := base(s, SubTrade)
	if err != nil {
		return nil, err
	}
	return append(spec,
		"--strategy", p.Strategy,
		"--config", s.ConfigPath(),
	), nil
}

// PlotProfit builds `plot-profit`.
func PlotProfit(s config.Session, p PlotParams) (Spec, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	spec, err := base(s, SubPlotProfit)
	if err != nil {
		return nil, err
	}
	return append(spec,
		"--strategy", p.Strategy,
		"--config", s.ConfigPath(),
		"--timeframe", p.Timeframe,
		"--pairs", p.Pairs,
		"--timerange", p.Timerange,
	), nil
}
