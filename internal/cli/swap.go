package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// swapCmd represents the swap command
var swapCmd = &cobra.Command{
	Use:   "swap <event-a> <event-b>",
	Short: "Swap the values of two ledger entries",
	Long: `Swap exchanges the probability values of two entries in one atomic
step. Both entries must exist.

Example:
  probledger swap rain storm`,
	Args: cobra.ExactArgs(2),
	RunE: runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)
}

func runSwap(cmd *cobra.Command, args []string) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Swap(ctx, args[0], args[1]); err != nil {
		return err
	}

	for _, event := range args {
		entry, err := s.Get(ctx, event)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%g\n", entry.Event, entry.Value)
	}
	return nil
}
