package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JakobGM/quelf/internal/application/commands"
	"github.com/JakobGM/quelf/internal/domain"
	"github.com/JakobGM/quelf/internal/ports"
)

// RegisterReadTools adds the read-only session cache tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.SessionStore) {
	s.AddTool(syncStatusTool(), syncStatusHandler(store))
	s.AddTool(listSessionsTool(), listSessionsHandler(store))
	s.AddTool(getSessionTool(), getSessionHandler(store))
}

// --- sync_status ---

func syncStatusTool() mcp.Tool {
	return mcp.NewTool("sync_status",
		mcp.WithDescription("Report the state of the local sleep session cache: file path, session count, and the id range covered."),
	)
}

func syncStatusHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewStatusCommand(store)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", result.Message)
		if result.FirstStart != nil {
			fmt.Fprintf(&sb, "first night: %s\n", result.FirstStart.Format(time.RFC3339))
		}
		if result.NewestStart != nil {
			fmt.Fprintf(&sb, "newest night: %s\n", result.NewestStart.Format(time.RFC3339))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_sessions ---

func listSessionsTool() mcp.Tool {
	return mcp.NewTool("list_sessions",
		mcp.WithDescription("List cached sleep sessions, newest first. Each line carries the session id, start time, time in bed, and sleep quality."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions to return (default 10, 0 for all)"),
		),
	)
}

func listSessionsHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 10)

		cmd := commands.NewListSessionsCommand(store, limit)
		records, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(records) == 0 {
			return mcp.NewToolResultText("No sessions cached."), nil
		}

		var sb strings.Builder
		for _, rec := range records {
			sb.WriteString(formatRecord(rec))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_session ---

func getSessionTool() mcp.Tool {
	return mcp.NewTool("get_session",
		mcp.WithDescription("Return the raw JSON payload of one cached sleep session by its id."),
		mcp.WithNumber("id",
			mcp.Description("Session id"),
			mcp.Required(),
		),
	)
}

func getSessionHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetInt("id", 0)
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		cmd := commands.NewShowSessionCommand(store, id)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(string(result.Session.Raw)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecord(rec domain.SleepRecord) string {
	start := "-"
	if rec.Start != nil {
		start = rec.Start.Format(time.RFC3339)
	}
	inBed := "-"
	if rec.TimeInBed != nil {
		inBed = rec.TimeInBed.String()
	}
	quality := "-"
	if rec.Quality != nil {
		quality = fmt.Sprintf("%.0f%%", *rec.Quality*100)
	}
	return fmt.Sprintf("%d  %s  %s  %s", rec.ID, start, inBed, quality)
}
