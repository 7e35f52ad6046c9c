/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sony-level/buildbox/internal/config"
)

var statusJSON bool

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine mode and on-disk workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(modeFlag, workspaceRoot, timeoutFlag)
		if err != nil {
			return err
		}

		names, err := listWorkspaceDirs(cfg.WorkspaceRoot)
		if err != nil {
			return err
		}

		if statusJSON {
			out := struct {
				Mode          string   `json:"mode"`
				WorkspaceRoot string   `json:"workspace_root"`
				Workspaces    []string `json:"workspaces"`
			}{cfg.Mode, cfg.WorkspaceRoot, names}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Mode:           %s\n", cfg.Mode)
		fmt.Printf("Workspace root: %s\n", cfg.WorkspaceRoot)
		fmt.Printf("Workspaces:     %d\n", len(names))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

// listWorkspaceDirs returns workspace directory names under root, oldest
// naming first
func listWorkspaceDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace root %s: %w", filepath.Clean(root), err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Emit status as JSON")
	rootCmd.AddCommand(statusCmd)
}
