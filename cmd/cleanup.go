/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sony-level/buildbox/internal/config"
	"github.com/sony-level/buildbox/internal/workspace"
)

var (
	cleanupAll       bool
	cleanupOlderThan time.Duration
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove workspace directories",
	Long: `Remove workspace directories under the workspace root. By default only
workspaces older than --older-than are removed; --all removes every
one.

Examples:
  bbx cleanup
  bbx cleanup --older-than 1h
  bbx cleanup --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(modeFlag, workspaceRoot, timeoutFlag)
		if err != nil {
			return err
		}

		if cleanupAll {
			if err := workspace.CleanupAll(cfg.WorkspaceRoot); err != nil {
				return err
			}
			fmt.Println("Removed all workspaces")
			return nil
		}

		cleaned, err := workspace.CleanupStale(cfg.WorkspaceRoot, cleanupOlderThan)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d stale workspace(s)\n", cleaned)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupAll, "all", false, "Remove every workspace, regardless of age")
	cleanupCmd.Flags().DurationVar(&cleanupOlderThan, "older-than", 24*time.Hour, "Remove workspaces older than this")
	rootCmd.AddCommand(cleanupCmd)
}
