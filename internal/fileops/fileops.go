// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace file and directory operations

package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/paths"
	"github.com/sony-level/buildbox/internal/workspace"
)

// ErrAccessDenied indicates a path failed containment; the operation was
// refused before touching disk
var ErrAccessDenied = errors.New("access denied: path outside workspace")

// MaxListedFiles caps ListAll results to bound response size
const MaxListedFiles = 200

// skipDirs are directory names excluded from recursive listing: hidden
// entries are excluded separately by prefix
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// Entry is one file in a recursive listing
type Entry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Config holds configuration for file operations
type Config struct {
	Resolver *paths.Resolver
	Logger   zerolog.Logger
}

// Ops provides containment-checked file and directory operations.
// Every entry point resolves through the path resolver and re-verifies
// containment before any disk access.
type Ops struct {
	resolver *paths.Resolver
	logger   zerolog.Logger
}

// New creates file operations backed by the given resolver
func New(config *Config) *Ops {
	return &Ops{
		resolver: config.Resolver,
		logger:   config.Logger,
	}
}

// resolve maps callerPath into the workspace and re-checks containment
func (o *Ops) resolve(ws *workspace.Workspace, callerPath string) (string, error) {
	abs, err := o.resolver.Resolve(ws, callerPath)
	if err != nil {
		o.logger.Warn().Str("path", callerPath).Msg("path resolution refused")
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, callerPath)
	}

	// Defense in depth against a bug in any resolution branch
	if !o.resolver.Contains(abs) {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, callerPath)
	}

	return abs, nil
}

// Read returns the file's content
func (o *Ops) Read(ws *workspace.Workspace, callerPath string) (string, error) {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", callerPath, err)
	}
	return string(data), nil
}

// Write stores content, creating parent directories as needed
func (o *Ops) Write(ws *workspace.Workspace, callerPath, content string) error {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", callerPath, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", callerPath, err)
	}
	return nil
}

// List returns the names of entries in a directory, directories suffixed
// with a separator
func (o *Ops) List(ws *workspace.Workspace, callerPath string) ([]string, error) {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", callerPath, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += string(filepath.Separator)
		}
		names = append(names, name)
	}
	return names, nil
}

// Mkdir creates a directory and any missing parents
func (o *Ops) Mkdir(ws *workspace.Workspace, callerPath string) error {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", callerPath, err)
	}
	return nil
}

// Delete removes a file or directory tree
func (o *Ops) Delete(ws *workspace.Workspace, callerPath string) error {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return err
	}

	// Never delete the workspace roots themselves through a file op
	if abs == ws.RootDir || abs == o.resolver.Root() {
		return fmt.Errorf("%w: refusing to delete workspace root", ErrAccessDenied)
	}

	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("failed to delete %s: %w", callerPath, err)
	}
	return nil
}

// Exists reports whether the path exists in the workspace
func (o *Ops) Exists(ws *workspace.Workspace, callerPath string) (bool, error) {
	abs, err := o.resolve(ws, callerPath)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", callerPath, err)
	}
	return true, nil
}

// ListAll walks the workspace working directory and returns every regular
// file with its content, excluding hidden entries, dependency directories
// and build output, capped at MaxListedFiles
func (o *Ops) ListAll(ws *workspace.Workspace) ([]Entry, error) {
	root := ws.WorkingDir
	if !o.resolver.Contains(root) {
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, root)
	}

	var out []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if len(out) >= MaxListedFiles {
			return filepath.SkipAll
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		out = append(out, Entry{Path: rel, Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}

	return out, nil
}
