package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// removeCmd represents the rm command
var removeCmd = &cobra.Command{
	Use:     "rm <event>",
	Aliases: []string{"remove"},
	Short:   "Remove a ledger entry",
	Long: `Remove deletes the entry for the given event name.

Example:
  probledger rm rain`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Printf("removed %s\n", args[0])
	return nil
}
