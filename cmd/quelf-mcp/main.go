package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JakobGM/quelf/internal/adapters/cachefile"
	mcpadapter "github.com/JakobGM/quelf/internal/adapters/mcp"
	"github.com/JakobGM/quelf/internal/adapters/sqlite"
	"github.com/JakobGM/quelf/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("quelf-mcp: %v", err)
	}

	store, err := cachefile.Load(cfg.CachePath())
	if err != nil {
		log.Fatalf("quelf-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"quelf-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterSummaryTool(mcpServer, sqlite.NewIndex(), cfg.DatabasePath())

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("quelf-mcp: %v", err)
	}
}
