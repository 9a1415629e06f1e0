package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/application/commands"
	"github.com/JakobGM/quelf/internal/domain"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached sleep sessions, newest first",
	Long: `List cached sleep sessions, newest first. Each line carries the
session id, start time, time in bed, and sleep quality.

Examples:
  quelf-cli list
  quelf-cli list --limit 30
  quelf-cli list --limit 0   # everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		listCmd := commands.NewListSessionsCommand(store, listLimit)
		records, err := listCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, rec := range records {
			fmt.Println(formatRecord(rec))
		}
		return nil
	},
}

// formatRecord renders one flattened session as a listing line. Absent
// fields show as "-".
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

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "maximum sessions to list (0 for all)")
}
