/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sony-level/buildbox/internal/engine"
)

// filesCmd groups the workspace file operations
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Read, write and list workspace files",
	Long: `Containment-checked file operations against a workspace. Paths are
resolved relative to the workspace working directory; anything that
resolves outside the workspace root is refused.

Examples:
  bbx files ls -w ws-20260825-1530-a1b src
  bbx files cat -w ws-20260825-1530-a1b src/App.tsx
  echo "body" | bbx files write -w ws-20260825-1530-a1b notes.txt
  bbx files rm -w ws-20260825-1530-a1b dist
  bbx files tree -w ws-20260825-1530-a1b`,
}

var filesLsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a workspace directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		e, id, err := filesTarget()
		if err != nil {
			return err
		}

		names, err := e.ListDir(id, path, "")
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var filesCatCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a workspace file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, id, err := filesTarget()
		if err != nil {
			return err
		}

		content, err := e.ReadFile(id, args[0], "")
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var filesWriteCmd = &cobra.Command{
	Use:   "write <path> [content]",
	Short: "Write a workspace file (content argument or stdin)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string
		if len(args) == 2 {
			content = args[1]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			content = string(data)
		}

		e, id, err := filesTarget()
		if err != nil {
			return err
		}
		return e.WriteFile(id, args[0], content, "")
	},
}

var filesRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a workspace file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, id, err := filesTarget()
		if err != nil {
			return err
		}
		return e.Delete(id, args[0], "")
	},
}

var filesTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "List every project file in the workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, id, err := filesTarget()
		if err != nil {
			return err
		}

		entries, err := e.ListAllFiles(id, "")
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Println(entry.Path)
		}
		return nil
	},
}

func filesTarget() (*engine.Engine, string, error) {
	e, err := newEngine()
	if err != nil {
		return nil, "", err
	}
	id, err := targetWorkspace(e)
	if err != nil {
		return nil, "", err
	}
	return e, id, nil
}

func init() {
	filesCmd.AddCommand(filesLsCmd, filesCatCmd, filesWriteCmd, filesRmCmd, filesTreeCmd)
	rootCmd.AddCommand(filesCmd)
}
