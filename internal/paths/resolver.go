// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace path resolution and containment

package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sony-level/buildbox/internal/workspace"
)

// ErrOutsideWorkspace indicates a resolved path fell outside the
// process-wide workspace root. The operation must be refused.
var ErrOutsideWorkspace = errors.New("path resolves outside the workspace root")

// DefaultLegacyPrefixes are absolute prefixes from the previous filesystem
// layout that callers may still send. They are stripped and re-anchored on
// the workspace's current working directory.
var DefaultLegacyPrefixes = []string{
	"/home/user/app",
	"/app",
}

// Resolver maps caller-supplied paths to absolute paths strictly inside the
// process-wide workspace root.
type Resolver struct {
	root           string
	legacyPrefixes []string
}

// NewResolver creates a resolver for the given process-wide workspace root.
// The root must already be absolute.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root:           filepath.Clean(root),
		legacyPrefixes: DefaultLegacyPrefixes,
	}
}

// Root returns the process-wide workspace root
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps callerPath into the workspace. Rules, in order:
//  1. legacy absolute prefix: strip and resolve the remainder against the
//     workspace's current working directory
//  2. workspace-root prefix: rebase onto the current working directory by
//     relative-path translation (paths already under the working directory
//     pass through unchanged)
//  3. relative path: resolve against the current working directory
//  4. absolute path already under the process-wide root: unchanged
//  5. fallback: only the base name, relative to the working directory
//
// The result is guaranteed to lie under the process-wide workspace root.
func (r *Resolver) Resolve(ws *workspace.Workspace, callerPath string) (string, error) {
	if ws == nil {
		return "", fmt.Errorf("workspace is nil")
	}

	callerPath = strings.TrimSpace(callerPath)
	resolved := r.resolve(ws, callerPath)
	resolved = filepath.Clean(resolved)

	// Re-verify after every branch: a bug in any rule must not let a path
	// escape the workspace root.
	if !r.Contains(resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, callerPath)
	}

	return resolved, nil
}

func (r *Resolver) resolve(ws *workspace.Workspace, callerPath string) string {
	if callerPath == "" || callerPath == "." {
		return ws.WorkingDir
	}

	// Rule 1: legacy absolute prefix from the previous layout
	for _, prefix := range r.legacyPrefixes {
		if rest, ok := stripPrefix(callerPath, prefix); ok {
			return filepath.Join(ws.WorkingDir, rest)
		}
	}

	// Rule 2: workspace-root-prefixed path, rebased onto the working
	// directory. A path already under the working directory needs no
	// translation; one under the workspace root but not the working
	// directory is rebased so stale pre-scaffold paths keep working.
	if isUnder(ws.WorkingDir, callerPath) {
		return callerPath
	}
	if rest, ok := stripPrefix(callerPath, ws.RootDir); ok {
		return filepath.Join(ws.WorkingDir, rest)
	}

	// Rule 3: relative path against the working directory
	if !filepath.IsAbs(callerPath) {
		return filepath.Join(ws.WorkingDir, callerPath)
	}

	// Rule 4: absolute path already inside the process-wide root
	if isUnder(r.root, callerPath) {
		return callerPath
	}

	// Rule 5: last-resort containment, keep only the base name
	return filepath.Join(ws.WorkingDir, filepath.Base(callerPath))
}

// Contains reports whether path lies under the process-wide workspace root.
// File-operation entry points call this again before touching disk.
func (r *Resolver) Contains(path string) bool {
	return isUnder(r.root, filepath.Clean(path))
}

// stripPrefix returns the remainder of path after prefix when path equals
// prefix or is nested under it
func stripPrefix(path, prefix string) (string, bool) {
	if path == prefix {
		return "", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix+"/"), true
	}
	return "", false
}

// isUnder reports whether path is root or a descendant of root
func isUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
