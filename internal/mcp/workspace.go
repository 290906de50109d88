package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/ftpilot/internal/workflow"
)

type workflowsParams struct{}

func (h *handler) workflowsHandler(ctx context.Context, req *sdkmcp.CallToolRequest, _ workflowsParams) (*sdkmcp.CallToolResult, any, error) {
	cfg, s, _ := h.snapshot()
	var b strings.Builder

	fmt.Fprintf(&b, "Program: %s\n", s.Program)
	fmt.Fprintf(&b, "Results: %s\n\n", s.ResultsDir)

	fmt.Fprintln(&b, "Workflows:")
	for _, d := range workflow.Descriptors {
		params := make([]string, 0, len(d.Params)+1)
		if d.Strategy {
			params = append(params, string(workflow.ParamStrategy))
		}
		for _, p := range d.Params {
			params = append(params, string(p))
		}
		fmt.Fprintf(&b, "  %-9s %s: %s\n", d.Tag, d.Label, d.Description)
		if len(params) > 0 {
			fmt.Fprintf(&b, "            params: %s\n", strings.Join(params, ", "))
		}
		if d.Fanout {
			fmt.Fprintln(&b, "            all=true runs once per strategy")
		}
	}

	writeList(&b, "Strategies", func() ([]string, error) { return workflow.Strategies(s) })
	writeList(&b, "Config files", func() ([]string, error) { return workflow.ConfigFiles(s) })

	fmt.Fprintf(&b, "\nTimeframes: %s\n", strings.Join(cfg.Timeframes(), ", "))
	fmt.Fprintf(&b, "Timeranges: %s\n", strings.Join(cfg.Timeranges(), ", "))
	fmt.Fprintf(&b, "Loss functions: %s\n", strings.Join(cfg.LossFunctions(), ", "))
	fmt.Fprintf(&b, "Spaces: %s\n", strings.Join(cfg.Spaces(), " | "))
	return textResult(b.String())
}

func writeList(b *strings.Builder, title string, list func() ([]string, error)) {
	items, err := list()
	fmt.Fprintf(b, "\n%s:", title)
	switch {
	case err != nil:
		fmt.Fprintf(b, " unavailable (%v)\n", err)
	case len(items) == 0:
		fmt.Fprintln(b, " none")
	default:
		fmt.Fprintf(b, " %s\n", strings.Join(items, ", "))
	}
}
