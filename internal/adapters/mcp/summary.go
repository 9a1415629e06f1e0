package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/JakobGM/quelf/internal/ports"
)

// RegisterSummaryTool adds the analytics-backed sleep_summary tool. The
// database is opened per call so a rebuild by the CLI is picked up without
// restarting the server.
func RegisterSummaryTool(s *server.MCPServer, index ports.AnalyticsIndex, dbPath string) {
	s.AddTool(sleepSummaryTool(), sleepSummaryHandler(index, dbPath))
}

func sleepSummaryTool() mcp.Tool {
	return mcp.NewTool("sleep_summary",
		mcp.WithDescription("Aggregate sleep statistics per weekday from the analytics database: nights, average time in bed, quality-weighted sleep, steps, and sleep quality."),
	)
}

func sleepSummaryHandler(index ports.AnalyticsIndex, dbPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := os.Stat(dbPath); err != nil {
			return toolError(fmt.Errorf("no analytics database at %s; run 'quelf-cli export sqlite' first", dbPath))
		}

		if err := index.Open(dbPath); err != nil {
			return toolError(err)
		}
		defer index.Close()

		nights, err := index.NightCount()
		if err != nil {
			return toolError(err)
		}
		if nights == 0 {
			return mcp.NewToolResultText("No sessions indexed."), nil
		}

		avgInBed, err := index.AverageTimeInBed()
		if err != nil {
			return toolError(err)
		}
		rows, err := index.WeekdaySummary()
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d nights indexed, average %.1fh in bed\n\n", nights, avgInBed)
		for _, row := range rows {
			fmt.Fprintf(&sb, "%-9s  %3d nights  in bed %.1fh  slept %.1fh  quality %.0f%%\n",
				row.Weekday, row.Nights, row.AvgInBed, row.AvgSlept, row.AvgRating*100)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
