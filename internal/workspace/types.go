// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace types and constants

package workspace

import "time"

const (
	// NamePrefix prefixes every generated workspace name
	NamePrefix = "ws"

	// NpmCacheDirName is the per-workspace npm cache directory
	NpmCacheDirName = ".npm-cache"
)

// Workspace is the logical stand-in for a container: an isolated directory
// tree plus metadata tracking its current working directory.
type Workspace struct {
	ID         string
	Name       string
	RootDir    string
	WorkingDir string
	CreatedAt  time.Time
}

// Summary is the read-only view exposed through status reporting
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RootDir    string `json:"root_dir"`
	WorkingDir string `json:"working_dir"`
	AgeSeconds int64  `json:"age_seconds"`
}

// Summary returns the status view of the workspace
func (w *Workspace) Summary() Summary {
	return Summary{
		ID:         w.ID,
		Name:       w.Name,
		RootDir:    w.RootDir,
		WorkingDir: w.WorkingDir,
		AgeSeconds: int64(time.Since(w.CreatedAt).Seconds()),
	}
}

// clone returns a copy so registry internals never escape by reference
func (w *Workspace) clone() *Workspace {
	c := *w
	return &c
}
