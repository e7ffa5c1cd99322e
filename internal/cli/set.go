package cli

import (
	"context"
	"fmt"

	"github.com/pmarkov/probledger/internal/model"
	"github.com/spf13/cobra"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <event> <value>",
	Short: "Set an entry's probability value, creating it if needed",
	Long: `Set replaces the stored value for the event, creating the entry
when it does not exist yet. No validation is performed on the value.

Example:
  probledger set rain 0.45`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	event := args[0]
	value, err := parseFloatArg("value", args[1])
	if err != nil {
		return err
	}

	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Put(context.Background(), model.Entry{Event: event, Value: value}); err != nil {
		return err
	}

	fmt.Printf("set %s\t%g\n", event, value)
	return nil
}
