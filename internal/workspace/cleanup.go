// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Cleanup functionality

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CleanupAll removes every workspace directory under the root.
// Use with caution - registry records should be cleared alongside.
func CleanupAll(root string) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat workspace root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read workspace root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove workspace %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// CleanupStale removes workspace directories older than maxAge.
// Useful for cleaning up abandoned workspaces. Returns the number removed.
func CleanupStale(root string, maxAge time.Duration) (int, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat workspace root %s: %w", root, err)
	}
	if !info.IsDir() {
		return 0, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("failed to read workspace root: %w", err)
	}

	now := time.Now()
	cleaned := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryInfo, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(entryInfo.ModTime()) >= maxAge {
			wsPath := filepath.Join(root, entry.Name())
			if err := os.RemoveAll(wsPath); err == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}
