// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Engine facade over registry, gateway and file operations

package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/fileops"
	"github.com/sony-level/buildbox/internal/gateway"
	"github.com/sony-level/buildbox/internal/paths"
	"github.com/sony-level/buildbox/internal/scaffold"
	"github.com/sony-level/buildbox/internal/workspace"
)

// Config holds configuration for engine construction
type Config struct {
	// WorkspaceRoot is the process-wide directory all workspaces live under
	WorkspaceRoot string

	// Mode labels how workspaces are rooted; surfaced through Status
	Mode string

	// CommandTimeout bounds general commands; zero uses the gateway default
	CommandTimeout time.Duration

	// Fetch overrides the scaffold mirror fetch (for testing)
	Fetch scaffold.FetchFunc

	// SettleDelay overrides the scaffold settle delay (for testing)
	SettleDelay time.Duration

	Logger zerolog.Logger
}

// Engine is the workspace manager and sandboxed command-execution core.
// It emulates isolation with plain process execution and filesystem
// containment; no container runtime is involved.
type Engine struct {
	mode     string
	registry *workspace.Registry
	resolver *paths.Resolver
	gateway  *gateway.Gateway
	files    *fileops.Ops
	logger   zerolog.Logger
}

// New creates an engine rooted at config.WorkspaceRoot
func New(config *Config) (*Engine, error) {
	registry, err := workspace.NewRegistry(&workspace.RegistryConfig{
		Root:   config.WorkspaceRoot,
		Logger: config.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace registry: %w", err)
	}

	resolver := paths.NewResolver(registry.Root())

	gw := gateway.New(&gateway.Config{
		Registry:       registry,
		Resolver:       resolver,
		CommandTimeout: config.CommandTimeout,
		Fetch:          config.Fetch,
		SettleDelay:    config.SettleDelay,
		Logger:         config.Logger,
	})

	files := fileops.New(&fileops.Config{
		Resolver: resolver,
		Logger:   config.Logger,
	})

	mode := config.Mode
	if mode == "" {
		mode = "local"
	}

	return &Engine{
		mode:     mode,
		registry: registry,
		resolver: resolver,
		gateway:  gw,
		files:    files,
		logger:   config.Logger,
	}, nil
}

// Registry exposes the workspace registry for maintenance commands
func (e *Engine) Registry() *workspace.Registry {
	return e.registry
}

// CreateWorkspace allocates a new workspace and returns its id and name
func (e *Engine) CreateWorkspace() (id, name string, err error) {
	ws, err := e.registry.Create()
	if err != nil {
		return "", "", err
	}
	return ws.ID, ws.Name, nil
}

// GetOrCreateActiveWorkspace returns the active workspace, creating one if
// none exists
func (e *Engine) GetOrCreateActiveWorkspace() (*workspace.Workspace, error) {
	return e.registry.GetOrCreateActive()
}

// AttachWorkspace reattaches to an existing on-disk workspace by name and
// returns its new id
func (e *Engine) AttachWorkspace(name string) (string, error) {
	ws, err := e.registry.Adopt(name)
	if err != nil {
		return "", err
	}
	return ws.ID, nil
}

// Execute runs command against the workspace through the gateway.
// workingDirOverride, when non-empty, selects the execution directory for
// this call only. Unknown workspace ids are a caller contract violation
// and return an error; every execution failure comes back inside Result.
func (e *Engine) Execute(workspaceID, command, workingDirOverride string) (*gateway.Result, error) {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return nil, err
	}
	return e.gateway.Execute(ws, command), nil
}

// ReadFile returns file content from the workspace
func (e *Engine) ReadFile(workspaceID, path, workingDirOverride string) (string, error) {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return "", err
	}
	return e.files.Read(ws, path)
}

// WriteFile stores file content in the workspace
func (e *Engine) WriteFile(workspaceID, path, content, workingDirOverride string) error {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return err
	}
	return e.files.Write(ws, path, content)
}

// ListDir lists a directory in the workspace
func (e *Engine) ListDir(workspaceID, path, workingDirOverride string) ([]string, error) {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return nil, err
	}
	return e.files.List(ws, path)
}

// Mkdir creates a directory in the workspace
func (e *Engine) Mkdir(workspaceID, path, workingDirOverride string) error {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return err
	}
	return e.files.Mkdir(ws, path)
}

// Delete removes a file or directory in the workspace
func (e *Engine) Delete(workspaceID, path, workingDirOverride string) error {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return err
	}
	return e.files.Delete(ws, path)
}

// Exists reports whether a path exists in the workspace
func (e *Engine) Exists(workspaceID, path, workingDirOverride string) (bool, error) {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return false, err
	}
	return e.files.Exists(ws, path)
}

// ListAllFiles returns every project file in the workspace working
// directory with its content
func (e *Engine) ListAllFiles(workspaceID, workingDirOverride string) ([]fileops.Entry, error) {
	ws, err := e.resolveTarget(workspaceID, workingDirOverride)
	if err != nil {
		return nil, err
	}
	return e.files.ListAll(ws)
}

// SetWorkingDirectory moves the workspace's working directory to path,
// which is resolved and containment-checked first
func (e *Engine) SetWorkingDirectory(workspaceID, path string) error {
	ws, err := e.registry.Get(workspaceID)
	if err != nil {
		return err
	}

	resolved, err := e.resolver.Resolve(ws, path)
	if err != nil {
		return err
	}
	return e.registry.SetWorkingDir(workspaceID, resolved)
}

// Cleanup clears all registry entries. Workspace files stay on disk for
// diagnostics and in-flight subprocesses are not drained.
func (e *Engine) Cleanup() {
	count := e.registry.Len()
	e.registry.Clear()
	e.logger.Info().Int("workspaces", count).Msg("cleared workspace registry")
}

// Status reports the engine mode and registered workspaces
func (e *Engine) Status() Status {
	return Status{
		Mode:                 e.mode,
		ActiveWorkspaceCount: e.registry.Len(),
		Workspaces:           e.registry.Summaries(),
	}
}

// resolveTarget fetches the workspace record and applies a per-call
// working-directory override
func (e *Engine) resolveTarget(workspaceID, workingDirOverride string) (*workspace.Workspace, error) {
	ws, err := e.registry.Get(workspaceID)
	if err != nil {
		return nil, err
	}

	if workingDirOverride != "" {
		resolved, err := e.resolver.Resolve(ws, workingDirOverride)
		if err != nil {
			return nil, err
		}
		ws.WorkingDir = resolved
	}

	return ws, nil
}
