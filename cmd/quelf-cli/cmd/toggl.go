package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/adapters/sqlite"
	"github.com/JakobGM/quelf/internal/application/commands"
)

var (
	togglSince string
	togglUntil string
)

var togglCmd = &cobra.Command{
	Use:   "toggl [summary|sync]",
	Short: "Report or store tracked time from Toggl",
	Long: `Report or store time tracking data from the Toggl reports API.
Periods default to the last 30 days.

Examples:
  quelf-cli toggl summary
  quelf-cli toggl summary --since 2026-07-01 --until 2026-07-31
  quelf-cli toggl sync`,
}

var togglSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate tracked time per project",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, until, err := togglPeriod()
		if err != nil {
			return err
		}

		summaryCmd := commands.NewTogglSummaryCommand(newTracker(), since, until)
		result, err := summaryCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, project := range result.Summary.ByProject {
			fmt.Printf("%-24s %s\n", project.Project, project.Total)
		}
		return nil
	},
}

var togglSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Store detailed time entries in the analytics database",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, until, err := togglPeriod()
		if err != nil {
			return err
		}

		syncCmd := commands.NewTogglSyncCommand(newTracker(), sqlite.NewIndex(), cfg.DatabasePath(), since, until)
		result, err := syncCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

// togglPeriod resolves the --since/--until flags. Unset flags default to
// the last 30 days.
func togglPeriod() (time.Time, time.Time, error) {
	until := time.Now()
	since := until.AddDate(0, 0, -30)

	var err error
	if togglSince != "" {
		since, err = time.Parse("2006-01-02", togglSince)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since date %q (want YYYY-MM-DD)", togglSince)
		}
	}
	if togglUntil != "" {
		until, err = time.Parse("2006-01-02", togglUntil)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until date %q (want YYYY-MM-DD)", togglUntil)
		}
	}
	return since, until, nil
}

func init() {
	rootCmd.AddCommand(togglCmd)
	togglCmd.AddCommand(togglSummaryCmd)
	togglCmd.AddCommand(togglSyncCmd)
	togglCmd.PersistentFlags().StringVar(&togglSince, "since", "", "start of the period (YYYY-MM-DD)")
	togglCmd.PersistentFlags().StringVar(&togglUntil, "until", "", "end of the period (YYYY-MM-DD)")
}
