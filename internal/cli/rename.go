package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a ledger entry",
	Long: `Rename changes an entry's event name, keeping its value. It fails
when the old name is missing or the new name is already taken.

Example:
  probledger rename rain storm`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	s, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Rename(context.Background(), args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("renamed %s -> %s\n", args[0], args[1])
	return nil
}
