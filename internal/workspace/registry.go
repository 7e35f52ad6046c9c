// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// In-memory workspace registry

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnknownWorkspace indicates a caller contract violation: the registry was
// asked for a workspace id it never issued.
var ErrUnknownWorkspace = fmt.Errorf("unknown workspace id")

// RegistryConfig holds configuration for registry creation
type RegistryConfig struct {
	// Root is the process-wide workspace root; every workspace lives under it
	Root string

	// Store defaults to the in-memory store
	Store Store

	// Logger for registry events
	Logger zerolog.Logger
}

// Registry owns all workspace records. Records are handed out as copies;
// mutation happens only through registry operations, so the backing store is
// the single source of truth for each workspace's working directory.
type Registry struct {
	root   string
	logger zerolog.Logger

	mu       sync.RWMutex
	store    Store
	activeID string
}

// NewRegistry creates a registry rooted at config.Root, creating the root
// directory if needed
func NewRegistry(config *RegistryConfig) (*Registry, error) {
	if config == nil || config.Root == "" {
		return nil, fmt.Errorf("registry config requires a workspace root")
	}

	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace root %s: %w", root, err)
	}

	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}

	return &Registry{
		root:   root,
		logger: config.Logger,
		store:  store,
	}, nil
}

// Root returns the process-wide workspace root
func (r *Registry) Root() string {
	return r.root
}

// Create allocates a new workspace directory and registers it
func (r *Registry) Create() (*Workspace, error) {
	name, err := GenerateName()
	if err != nil {
		return nil, fmt.Errorf("failed to generate workspace name: %w", err)
	}

	rootDir := filepath.Join(r.root, name)
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", rootDir, err)
	}

	ws := &Workspace{
		ID:         uuid.NewString(),
		Name:       name,
		RootDir:    rootDir,
		WorkingDir: rootDir,
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	r.store.Put(ws)
	if r.activeID == "" {
		r.activeID = ws.ID
	}
	r.mu.Unlock()

	r.logger.Info().Str("workspace_id", ws.ID).Str("name", ws.Name).Str("root", rootDir).Msg("created workspace")

	return ws.clone(), nil
}

// Adopt registers an existing workspace directory under the root by name,
// issuing it a fresh id. Used to reattach to workspaces that survived a
// previous process.
func (r *Registry) Adopt(name string) (*Workspace, error) {
	rootDir := filepath.Join(r.root, name)
	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("no workspace directory named %s under %s", name, r.root)
	}

	ws := &Workspace{
		ID:         uuid.NewString(),
		Name:       name,
		RootDir:    rootDir,
		WorkingDir: rootDir,
		CreatedAt:  info.ModTime(),
	}

	r.mu.Lock()
	r.store.Put(ws)
	if r.activeID == "" {
		r.activeID = ws.ID
	}
	r.mu.Unlock()

	r.logger.Info().Str("workspace_id", ws.ID).Str("name", name).Msg("adopted existing workspace")

	return ws.clone(), nil
}

// Get returns a copy of the workspace record for id.
// Returns ErrUnknownWorkspace for ids the registry never issued.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.store.Get(id)
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkspace, id)
	}
	return ws.clone(), nil
}

// GetOrCreateActive returns the active workspace, creating one if none
// exists. Calling it twice returns the same workspace both times.
func (r *Registry) GetOrCreateActive() (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.store.Get(r.activeID)
	r.mu.RUnlock()

	if ok {
		return ws.clone(), nil
	}
	return r.Create()
}

// SetWorkingDir updates the workspace's current working directory.
// The new directory must lie under the workspace root.
func (r *Registry) SetWorkingDir(id, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkspace, id)
	}

	if !isUnder(ws.RootDir, abs) {
		return fmt.Errorf("working directory %s is outside workspace root %s", abs, ws.RootDir)
	}

	ws.WorkingDir = abs
	r.store.Put(ws)
	r.logger.Debug().Str("workspace_id", id).Str("working_dir", abs).Msg("updated working directory")
	return nil
}

// Remove drops the workspace record. Underlying files are retained for
// diagnostics; directory removal is a separate cleanup concern.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	r.store.Delete(id)
	if r.activeID == id {
		r.activeID = ""
	}
	r.mu.Unlock()
}

// Clear drops every workspace record without touching disk
func (r *Registry) Clear() {
	r.mu.Lock()
	r.store.Clear()
	r.activeID = ""
	r.mu.Unlock()
}

// Len returns the number of registered workspaces
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Len()
}

// List returns copies of all workspace records, oldest first
func (r *Registry) List() []*Workspace {
	r.mu.RLock()
	stored := r.store.List()
	out := make([]*Workspace, 0, len(stored))
	for _, ws := range stored {
		out = append(out, ws.clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Summaries returns the status view of all workspaces, oldest first
func (r *Registry) Summaries() []Summary {
	list := r.List()
	out := make([]Summary, 0, len(list))
	for _, ws := range list {
		out = append(out, ws.Summary())
	}
	return out
}

// isUnder reports whether path is root or a descendant of root.
// Both arguments must be absolute and cleaned.
func isUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
