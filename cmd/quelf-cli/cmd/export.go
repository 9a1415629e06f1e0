package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/adapters/sqlite"
	"github.com/JakobGM/quelf/internal/application/commands"
)

var (
	exportCSVOutput string
	exportDBPath    string
)

var exportCmd = &cobra.Command{
	Use:   "export [csv|sqlite]",
	Short: "Project the cache into an analysis format",
	Long: `Project the cached sessions into a tabular format for analysis.

Examples:
  quelf-cli export csv
  quelf-cli export csv --output sleep.csv
  quelf-cli export sqlite
  quelf-cli export sqlite --db /tmp/quelf.db`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write flattened sessions as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportCSVOutput != "" {
			f, err := os.Create(exportCSVOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		exportCmd := commands.NewExportCSVCommand(store, out)
		result, err := exportCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if exportCSVOutput != "" {
			fmt.Printf("%s to %s\n", result.Message, exportCSVOutput)
		}
		return nil
	},
}

var exportSQLiteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Rebuild the analytics database from the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		dbPath := exportDBPath
		if dbPath == "" {
			dbPath = cfg.DatabasePath()
		}

		exportCmd := commands.NewExportSQLiteCommand(store, sqlite.NewIndex(), dbPath)
		result, err := exportCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportSQLiteCmd)
	exportCSVCmd.Flags().StringVarP(&exportCSVOutput, "output", "o", "", "write to a file instead of stdout")
	exportSQLiteCmd.Flags().StringVar(&exportDBPath, "db", "", "database path (default from config)")
}
