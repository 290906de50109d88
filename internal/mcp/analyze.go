package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/ftpilot/internal/analyze"
)

type analyzeParams struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"only result files starting with this prefix (default: Test)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"number of results to return (default: 10)"`
}

func (h *handler) analyzeHandler(ctx context.Context, req *mcp.CallToolRequest, params analyzeParams) (*mcp.CallToolResult, any, error) {
	cfg, s, _ := h.snapshot()
	a := &analyze.Analyzer{
		Prefix: cfg.AnalyzePrefix(),
		Limit:  cfg.AnalyzeLimit(),
		Logger: h.logger,
	}
	if params.Prefix != "" {
		a.Prefix = params.Prefix
	}
	if params.Limit > 0 {
		a.Limit = params.Limit
	}

	records, err := a.Analyze(s.ResultsDir)
	if err != nil {
		return errorResult(err.Error())
	}
	var b strings.Builder
	if err := analyze.Render(&b, records); err != nil {
		return errorResult(err.Error())
	}
	return textResult(b.String())
}
