// Package mcp provides the ftpilot MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/deixis/ftpilot"
	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/report"
	"github.com/deixis/ftpilot/internal/workflow"
)

//go:embed instructions.md
var Instructions string

// cacheSize is the number of result files kept in memory for ftp_inspect.
const cacheSize = 16

// handler holds shared dependencies for all tool handlers.
type handler struct {
	mu      sync.RWMutex
	cfg     *config.Config
	session config.Session
	store   report.Store
	logger  *zap.Logger
}

// NewServer creates an MCP server with all ftpilot tools registered. Results
// are read and written through an LRU cache in front of the results directory.
func NewServer(cfg *config.Config, root string, opts ...ServerOption) *mcp.Server {
	var so serverOptions
	for _, o := range opts {
		o(&so)
	}
	if so.logger == nil {
		so.logger = zap.NewNop()
	}

	h := &handler{logger: so.logger}
	h.reset(cfg, root)

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "ftpilot", Version: ftpilot.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "ftp_workflows",
		Description: "List the available workflows with their parameters, strategies and config files.",
	}, h.workflowsHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ftp_plan",
		Description: `Build the freqtrade command lines for a workflow without running them.

Use this to check parameters before ftp_run. Returns one shell-quoted command per line.`,
	}, h.planHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "ftp_run",
		Description: `Run a workflow and archive each command's output in the results directory.

Multiple commands (all=true) run in parallel with a per-task timeout. Returns one line per
command with its status and result file. Read a result with ftp_inspect.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "ftp_analyze",
		Description: "Rank archived backtest results by total profit and return the best ones as a table.",
	}, h.analyzeHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "ftp_inspect",
		Description: "Return the captured output of an archived result file.",
	}, h.inspectHandler)

	return s
}

// ServerOption configures the ftpilot MCP server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	logger *zap.Logger
}

// WithLogger sets the logger used by tool handlers.
func WithLogger(l *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = l
	}
}

func (h *handler) reset(cfg *config.Config, root string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
	h.session = cfg.Session(root)
	h.store = report.NewLRUStore(cacheSize, report.NewDiskStore(h.session.ResultsDir))
}

// snapshot returns the current configuration. Sessions are values, so
// callers can use them while the workspace is updated.
func (h *handler) snapshot() (*config.Config, config.Session, report.Store) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg, h.session, h.store
}

func (h *handler) engine(s config.Session, store report.Store) *workflow.Engine {
	return &workflow.Engine{Session: s, Store: store, Logger: h.logger}
}

// updateWorkspaceFromRoots queries the client for MCP roots and reloads the
// configuration if a valid root is returned.
// This is called during session initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}

	loaded, err := config.Load(u.Path)
	if err != nil {
		h.logger.Warn("loading workspace config", zap.String("root", u.Path), zap.Error(err))
		return
	}
	h.reset(loaded.Config, loaded.Root)
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
