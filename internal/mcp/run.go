package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/ftpilot/internal/batch"
	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/workflow"
)

type planParams struct {
	Workflow   string `json:"workflow" jsonschema:"workflow tag or label: backtest, download, hyperopt, trade or plot"`
	ConfigFile string `json:"config_file" jsonschema:"runner configuration file in the config directory (e.g. config.json)"`
	Strategy   string `json:"strategy,omitempty" jsonschema:"strategy name without extension"`
	All        bool   `json:"all,omitempty" jsonschema:"run once per strategy (backtest and hyperopt only)"`
	Timeframe  string `json:"timeframe,omitempty" jsonschema:"candle timeframe (e.g. 5m); download accepts several separated by spaces"`
	Timerange  string `json:"timerange,omitempty" jsonschema:"freqtrade timerange (e.g. 20240601-20240825)"`
	Loss       string `json:"loss,omitempty" jsonschema:"hyperopt loss function (e.g. SharpeHyperOptLoss)"`
	Spaces     string `json:"spaces,omitempty" jsonschema:"hyperopt spaces separated by spaces (e.g. roi stoploss)"`
	Epochs     int    `json:"epochs,omitempty" jsonschema:"hyperopt epochs"`
	Pairs      string `json:"pairs,omitempty" jsonschema:"pairs for plot (e.g. BTC/USDT)"`
}

func (p planParams) params() workflow.Params {
	return workflow.Params{
		Strategy:  p.Strategy,
		All:       p.All,
		Timeframe: p.Timeframe,
		Timerange: p.Timerange,
		Loss:      p.Loss,
		Spaces:    p.Spaces,
		Epochs:    p.Epochs,
		Pairs:     p.Pairs,
	}
}

func (h *handler) plan(p planParams) (*workflow.Engine, workflow.Descriptor, []command.Spec, error) {
	_, s, store := h.snapshot()
	d, err := workflow.Lookup(p.Workflow)
	if err != nil {
		return nil, d, nil, err
	}
	e := h.engine(s.WithConfigFile(p.ConfigFile), store)
	specs, err := e.Plan(d, p.params())
	if err != nil {
		return nil, d, nil, err
	}
	return e, d, specs, nil
}

func (h *handler) planHandler(ctx context.Context, req *mcp.CallToolRequest, params planParams) (*mcp.CallToolResult, any, error) {
	_, _, specs, err := h.plan(params)
	if err != nil {
		return errorResult(err.Error())
	}
	lines := make([]string, len(specs))
	for i, spec := range specs {
		lines[i] = spec.String()
	}
	return textResult(strings.Join(lines, "\n"))
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params planParams) (*mcp.CallToolResult, any, error) {
	e, d, specs, err := h.plan(params)
	if err != nil {
		return errorResult(err.Error())
	}
	sum, err := e.Execute(ctx, d, specs)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(formatSummary(sum))
}

func formatSummary(sum batch.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", sum.Workflow, sum.Counts())
	for _, o := range sum.Outcomes {
		status := o.Result.Status()
		if o.Abandoned {
			status = "abandoned"
		}
		fmt.Fprintf(&b, "%-9s %s\n", status, o.Spec)
		if o.Persisted() {
			fmt.Fprintf(&b, "          result: %s\n", filepath.Base(o.File))
		}
		if o.Err != nil {
			fmt.Fprintf(&b, "          error: %v\n", o.Err)
		}
	}
	return b.String()
}
