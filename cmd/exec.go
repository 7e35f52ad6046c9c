/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var execDir string

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run an allowlisted command in a workspace",
	Long: `Run a command inside a workspace through the command gateway. The
command must match the allowlist (npm/yarn/pnpm, node, git and
read-only utilities); anything else is rejected before execution.
Scaffolding commands trigger the fallback chain, install commands run
without a timeout.

Examples:
  bbx exec "npm create vite@latest my-app -- --template react-ts"
  bbx exec --workspace ws-20260825-1530-a1b "npm run build"
  bbx exec -w ws-20260825-1530-a1b --dir my-app "npm test"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}

		id, err := targetWorkspace(e)
		if err != nil {
			return err
		}

		result, err := e.Execute(id, strings.Join(args, " "), execDir)
		if err != nil {
			return err
		}

		if result.Output != "" {
			fmt.Println(result.Output)
		}
		if result.ExitCode != 0 {
			fmt.Fprintln(os.Stderr, result.Error)
			os.Exit(result.ExitCode)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().StringVar(&execDir, "dir", "", "Working directory for this command (relative to the workspace)")
	rootCmd.AddCommand(execCmd)
}
