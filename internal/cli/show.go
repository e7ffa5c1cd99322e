package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var showJSON bool

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <event>",
	Short: "Show a single ledger entry",
	Long: `Show prints the entry stored for the given event name.

Example:
  probledger show rain
  probledger show rain --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	entry, err := s.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	return printEntry(entry, showJSON)
}
