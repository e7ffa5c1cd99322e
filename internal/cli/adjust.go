package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// adjustCmd represents the adjust command
var adjustCmd = &cobra.Command{
	Use:   "adjust <event> <delta>",
	Short: "Add a delta to an entry's probability value",
	Long: `Adjust adds the given delta to the stored value. The delta may be
negative, and the result is stored as-is even when it leaves the
conventional [0,1] range.

Example:
  probledger adjust rain 0.2
  probledger adjust rain -- -0.1`,
	Args: cobra.ExactArgs(2),
	RunE: runAdjust,
}

func init() {
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(cmd *cobra.Command, args []string) error {
	event := args[0]
	delta, err := parseFloatArg("delta", args[1])
	if err != nil {
		return err
	}

	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	entry, err := s.Adjust(context.Background(), event, delta)
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%g\n", entry.Event, entry.Value)
	return nil
}
