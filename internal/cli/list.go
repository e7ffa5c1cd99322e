package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ledger entries",
	Long: `List prints every entry in the ledger, ordered by event name and
then by value.

Example:
  probledger list
  probledger list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List(context.Background())
	if err != nil {
		return err
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling entries: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("ledger is empty")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s\t%g\n", entry.Event, entry.Value)
	}
	return nil
}
