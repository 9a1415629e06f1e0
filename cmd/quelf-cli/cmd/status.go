package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the local session cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		statusCmd := commands.NewStatusCommand(store)
		result, err := statusCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		if result.FirstStart != nil {
			fmt.Printf("first night:  %s\n", result.FirstStart.Format(time.RFC3339))
		}
		if result.NewestStart != nil {
			fmt.Printf("newest night: %s\n", result.NewestStart.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
