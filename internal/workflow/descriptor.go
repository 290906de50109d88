package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deixis/ftpilot/internal/config"
)

// Tag identifies a workflow on the command line.
type Tag string

const (
	Backtest Tag = "backtest"
	Download Tag = "download"
	Hyperopt Tag = "hyperopt"
	Trade    Tag = "trade"
	Plot     Tag = "plot"
)

// Param names one input of a workflow.
type Param string

const (
	ParamStrategy  Param = "strategy"
	ParamTimeframe Param = "timeframe"
	ParamTimerange Param = "timerange"
	ParamLoss      Param = "loss"
	ParamSpaces    Param = "spaces"
	ParamEpochs    Param = "epochs"
	ParamPairs     Param = "pairs"
)

// Prompt returns the question asked for p.
func (p Param) Prompt() string {
	switch p {
	case ParamStrategy:
		return "Select strategy:"
	case ParamTimeframe:
		return "Select timeframe:"
	case ParamTimerange:
		return "Select timerange:"
	case ParamLoss:
		return "Select loss function:"
	case ParamSpaces:
		return "Select spaces:"
	case ParamEpochs:
		return "Enter the number of epochs:"
	case ParamPairs:
		return "Enter the currency pair (e.g., LTC/USDT):"
	}
	return string(p) + ":"
}

// Free reports whether p is typed rather than chosen from a list.
func (p Param) Free() bool {
	return p == ParamEpochs || p == ParamPairs
}

// Descriptor declares a workflow: how it is labelled, which parameters it
// needs in prompt order and whether it can fan out over every strategy.
type Descriptor struct {
	Tag         Tag
	Label       string  // also the result file prefix
	Params      []Param // excluding the strategy
	Strategy    bool    // requires a strategy
	Fanout      bool    // offers running once per strategy
	ScopeAll    string  // menu entry for the fan-out
	ScopeOne    string  // menu entry for a single strategy
	Unbounded   bool    // runs without a timeout
	Description string
}

// Descriptors lists the workflows in menu order.
var Descriptors = []Descriptor{
	{
		Tag:         Backtest,
		Label:       "Test Strategies",
		Params:      []Param{ParamTimeframe, ParamTimerange},
		Strategy:    true,
		Fanout:      true,
		ScopeAll:    "Test All Strategies",
		ScopeOne:    "Test Selected Strategy",
		Description: "Backtest one strategy or all of them in parallel",
	},
	{
		Tag:         Download,
		Label:       "Download Data",
		Params:      []Param{ParamTimeframe, ParamTimerange},
		Description: "Download market data for the configured pairs",
	},
	{
		Tag:         Hyperopt,
		Label:       "Hyperopt",
		Params:      []Param{ParamLoss, ParamSpaces, ParamEpochs, ParamTimeframe, ParamTimerange},
		Strategy:    true,
		Fanout:      true,
		ScopeAll:    "Optimize All Strategies",
		ScopeOne:    "Optimize Selected Strategy",
		Description: "Run hyperparameter optimization",
	},
	{
		Tag:         Trade,
		Label:       "Trade",
		Strategy:    true,
		Unbounded:   true,
		Description: "Start trading with a strategy",
	},
	{
		Tag:         Plot,
		Label:       "Plot",
		Params:      []Param{ParamTimeframe, ParamPairs, ParamTimerange},
		Strategy:    true,
		Description: "Plot the profit of a strategy",
	},
}

// Lookup finds a descriptor by tag or label, ignoring case.
func Lookup(name string) (Descriptor, error) {
	for _, d := range Descriptors {
		if strings.EqualFold(string(d.Tag), name) || strings.EqualFold(d.Label, name) {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownWorkflow, name)
}

// Labels returns the menu labels of all workflows.
func Labels() []string {
	labels := make([]string, len(Descriptors))
	for i, d := range Descriptors {
		labels[i] = d.Label
	}
	return labels
}

// Params holds the values collected for a workflow.
type Params struct {
	Strategy  string
	All       bool // run once per strategy
	Timeframe string
	Timerange string
	Loss      string
	Spaces    string
	Epochs    int
	Pairs     string
}

// Set assigns value to p. Epochs must be a non-negative integer.
func (ps *Params) Set(p Param, value string) error {
	value = strings.TrimSpace(value)
	switch p {
	case ParamStrategy:
		ps.Strategy = value
	case ParamTimeframe:
		ps.Timeframe = value
	case ParamTimerange:
		ps.Timerange = value
	case ParamLoss:
		ps.Loss = value
	case ParamSpaces:
		ps.Spaces = value
	case ParamPairs:
		ps.Pairs = value
	case ParamEpochs:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: epochs must be a number, got %q", ErrInvalidParam, value)
		}
		ps.Epochs = n
	default:
		return fmt.Errorf("%w: %s", ErrInvalidParam, p)
	}
	return nil
}

// Choices returns the options offered for p in workflow d. Free parameters
// have none.
func Choices(c *config.Config, d Descriptor, p Param) []string {
	switch p {
	case ParamTimeframe:
		if d.Tag == Download {
			return c.DownloadTimeframes()
		}
		return c.Timeframes()
	case ParamTimerange:
		return c.Timeranges()
	case ParamLoss:
		return c.LossFunctions()
	case ParamSpaces:
		return c.Spaces()
	}
	return nil
}
