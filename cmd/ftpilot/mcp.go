package main

import (
	"context"
	"fmt"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ftmcp "github.com/deixis/ftpilot/internal/mcp"
)

var (
	flagHTTP         string
	flagInstructions bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing the workflows, planning,
execution, analysis and result inspection as tools. Serves stdio unless --http is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagInstructions {
			fmt.Print(ftmcp.Instructions)
			return nil
		}
		return serve(cmd.Context(), flagHTTP)
	},
}

func init() {
	mcpCmd.Flags().BoolVar(&flagInstructions, "instructions", false, "print model instructions and exit")
	mcpCmd.Flags().StringVar(&flagHTTP, "http", "", "start HTTP server on address (e.g. :9090)")
}

func serve(ctx context.Context, httpAddr string) error {
	server := ftmcp.NewServer(cfg, session.Root, ftmcp.WithLogger(zlog.Logger))
	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	zlog.Info("listening", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
