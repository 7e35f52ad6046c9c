/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new workspace",
	Long: `Allocate a fresh workspace directory under the workspace root and
print its name. Use the name with --workspace to run commands in it
later.

Examples:
  bbx create
  bbx create --mode ephemeral`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}

		id, name, err := e.CreateWorkspace()
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}

		ws, err := e.Registry().Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Created workspace %s\n", name)
		fmt.Printf("  Directory: %s\n", ws.RootDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
