package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/adapters/editor"
	"github.com/JakobGM/quelf/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [edit|path]",
	Short: "Inspect or edit the configuration file",
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in your editor",
	Long: `Open the configuration file in $EDITOR. If the file does not
exist yet, a commented starter template is written first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := activeConfigPath()
		if err := config.WriteTemplate(path); err != nil {
			return err
		}
		return editor.Open(path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(activeConfigPath())
	},
}

// activeConfigPath resolves the config file the other commands would
// load: the --config flag when given, the default location otherwise.
func activeConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
}
