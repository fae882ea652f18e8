package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VanshTheJudged/mcp-server/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a standalone Model Context Protocol server over the company dataset.

By default the server speaks over stdin/stdout, suitable for local agent
integrations. With --transport http it serves the MCP Streamable HTTP
transport on --mcp-address instead.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	mcpCmd.Flags().String("transport", string(mcp.TransportStdio), "MCP transport: stdio or http")
	mcpCmd.Flags().String("mcp-address", "127.0.0.1:8081", "Address to listen on for the http transport")

	if err := viper.BindPFlag("mcp.config", mcpCmd.Flags().Lookup("config")); err != nil {
		slog.Error("Failed to bind config flag", "error", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("mcp.transport", mcpCmd.Flags().Lookup("transport")); err != nil {
		slog.Error("Failed to bind transport flag", "error", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("mcp.address", mcpCmd.Flags().Lookup("mcp-address")); err != nil {
		slog.Error("Failed to bind mcp-address flag", "error", err)
		os.Exit(1)
	}

	if err := mcpCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

func runMCP(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, svc, err := buildService(ctx, viper.GetString("mcp.config"))
	if err != nil {
		return err
	}

	srv := mcp.New(svc, slog.Default())

	switch transport := mcp.Transport(viper.GetString("mcp.transport")); transport {
	case mcp.TransportStdio:
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, viper.GetString("mcp.address"))
	default:
		return fmt.Errorf("unknown transport %q: must be %q or %q", transport, mcp.TransportStdio, mcp.TransportHTTP)
	}
}
