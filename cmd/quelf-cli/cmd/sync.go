package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/application"
	"github.com/JakobGM/quelf/internal/application/commands"
	"github.com/JakobGM/quelf/internal/domain"
)

var syncQuiet bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch all sleep sessions not yet cached",
	Long: `Fetch every sleep session the remote service knows about that is not
yet in the local cache. The walk resumes from the newest cached session,
so an interrupted sync continues where it stopped.

Examples:
  quelf-cli sync
  quelf-cli sync --quiet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		var opts []application.WalkerOption
		if !syncQuiet {
			opts = append(opts, application.WithProgress(func(done, expected int, s domain.Session) {
				fmt.Printf("fetched session %d (%d/%d)\n", s.ID, done, expected)
			}))
		}

		syncCmd := commands.NewSyncCommand(newWalker(store, opts...))
		result, err := syncCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVarP(&syncQuiet, "quiet", "q", false, "suppress per-session progress lines")
}
