package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JakobGM/quelf/internal/application/commands"
)

var showRemote bool

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the raw payload of one session",
	Long: `Show the raw JSON payload of one cached session. With --remote the
session is fetched from the service when it is not cached yet, and
cached on the way through.

Examples:
  quelf-cli show 2492
  quelf-cli show 2492 --remote`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		showCmd := commands.NewShowSessionCommand(store, id)
		if showRemote {
			showCmd = showCmd.WithRemoteFallback(newWalker(store))
		}

		result, err := showCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(string(result.Session.Raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRemote, "remote", false, "fetch from the service when not cached")
}
