package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/application/commands"
)

var downloadUnzip bool

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the account's full data export",
	Long: `Download the account's full data export archive. With --unzip the
archive is extracted next to itself so the records file can be imported
into the cache.

Examples:
  quelf-cli download
  quelf-cli download --unzip`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zipPath := cfg.ExportZipPath()
		downloadCmd := commands.NewDownloadCommand(newSource(), zipPath)
		if downloadUnzip {
			downloadCmd = downloadCmd.WithUnzip(filepath.Dir(zipPath))
		}

		result, err := downloadCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [records-file]",
	Short: "Seed the cache from an extracted export file",
	Long: `Seed the session cache from an extracted export records file. Only
sessions not yet cached are inserted. Without an argument the file from
the last 'download --unzip' is used.

Examples:
  quelf-cli import
  quelf-cli import ~/Downloads/data_json.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordsPath := cfg.ExportRecordsPath()
		if len(args) == 1 {
			recordsPath = args[0]
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		importCmd := commands.NewImportCommand(store, newSource(), recordsPath)
		result, err := importCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(importCmd)
	downloadCmd.Flags().BoolVar(&downloadUnzip, "unzip", false, "extract the archive after downloading")
}
