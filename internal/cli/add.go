package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmarkov/probledger/internal/model"
	"github.com/pmarkov/probledger/internal/store"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <event> <value>",
	Short: "Add a new probability entry to the ledger",
	Long: `Add creates a new entry pairing an event name with a probability
value. It refuses to overwrite an existing entry; use 'set' for that.

The value is stored exactly as given. Nothing requires it to lie
within [0,1].

Example:
  probledger add rain 0.3
  probledger add "late delivery" 0.07`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	err = s.Create(context.Background(), model.Entry{Event: event, Value: value})
	if errors.Is(err, store.ErrExists) {
		return fmt.Errorf("entry %q already exists (use 'set' to overwrite)", event)
	}
	if err != nil {
		return err
	}

	fmt.Printf("added %s\t%g\n", event, value)
	return nil
}
