package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectParams struct {
	File string `json:"file" jsonschema:"result file name as returned by ftp_run or ftp_analyze"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.File == "" {
		return errorResult("file is required")
	}
	_, _, store := h.snapshot()

	result, err := store.Load(filepath.Base(params.File))
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load result %s: %v", params.File, err))
	}
	if result.Content == "" {
		return textResult(fmt.Sprintf("Result %s is empty.", result.Name))
	}
	return textResult(result.Content)
}
