// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for scaffold tier ordering and post-success handling

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/buildbox/internal/install"
	"github.com/sony-level/buildbox/internal/workspace"
)

type fixture struct {
	registry *workspace.Registry
	ws       *workspace.Workspace
	installs []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	workspace.ResetNameState()

	registry, err := workspace.NewRegistry(&workspace.RegistryConfig{
		Root:   t.TempDir(),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	ws, err := registry.Create()
	require.NoError(t, err)

	return &fixture{registry: registry, ws: ws}
}

func (f *fixture) installer() *install.Installer {
	return install.NewInstaller(&install.InstallerConfig{
		Logger: zerolog.Nop(),
		Run: func(dir, command string) (string, int, error) {
			f.installs = append(f.installs, command)
			return "", 0, nil
		},
	})
}

func (f *fixture) orchestrator(run RunFunc, fetch FetchFunc) *Orchestrator {
	return NewOrchestrator(&Config{
		Registry:    f.registry,
		Installer:   f.installer(),
		Run:         run,
		Fetch:       fetch,
		SettleDelay: time.Millisecond,
		Logger:      zerolog.Nop(),
	})
}

func TestScaffoldPrimarySuccess(t *testing.T) {
	f := newFixture(t)

	run := func(dir, command string) (string, int, error) {
		// Primary tool creates the project directory itself
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "my-app"), 0755))
		return "Scaffolding project...", 0, nil
	}

	result, err := f.orchestrator(run, nil).Scaffold(f.ws, "npm create vite@latest my-app -- --template react-ts")
	require.NoError(t, err)

	assert.Equal(t, TierPrimary, result.Tier)
	assert.True(t, result.DirConfirmed)
	assert.True(t, result.Installed)

	// Working directory moved to the project root
	updated, err := f.registry.Get(f.ws.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.ws.RootDir, "my-app"), updated.WorkingDir)

	// Installer ran its first strategy
	assert.Equal(t, []string{"npm install"}, f.installs)
}

func TestScaffoldEngineIncompatFallsToMirror(t *testing.T) {
	f := newFixture(t)

	fetchCalls := 0
	run := func(dir, command string) (string, int, error) {
		return "npm ERR! code EBADENGINE\nnpm ERR! Unsupported engine", 1, nil
	}
	fetch := func(template, dest string) error {
		fetchCalls++
		assert.Equal(t, "react-ts", template)
		return os.MkdirAll(dest, 0755)
	}

	result, err := f.orchestrator(run, fetch).Scaffold(f.ws, "npm create vite@latest my-app -- --template react-ts")
	require.NoError(t, err)

	assert.Equal(t, TierMirror, result.Tier)
	assert.Equal(t, 1, fetchCalls)
	assert.True(t, result.DirConfirmed)

	updated, err := f.registry.Get(f.ws.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.ws.RootDir, "my-app"), updated.WorkingDir)
	assert.True(t, result.Installed)
}

func TestScaffoldUnrecognizedFailureStopsChain(t *testing.T) {
	f := newFixture(t)

	fetchCalls := 0
	run := func(dir, command string) (string, int, error) {
		return "npm ERR! network ETIMEDOUT", 1, nil
	}
	fetch := func(template, dest string) error {
		fetchCalls++
		return nil
	}

	_, err := f.orchestrator(run, fetch).Scaffold(f.ws, "npm create vite@latest my-app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ETIMEDOUT")

	// Neither tier 2 nor tier 3 ran
	assert.Zero(t, fetchCalls)
	assert.NoDirExists(t, filepath.Join(f.ws.RootDir, "my-app"))

	// Working directory unchanged
	updated, getErr := f.registry.Get(f.ws.ID)
	require.NoError(t, getErr)
	assert.Equal(t, f.ws.RootDir, updated.WorkingDir)
}

func TestScaffoldMirrorFailureFallsToSynthesis(t *testing.T) {
	f := newFixture(t)

	run := func(dir, command string) (string, int, error) {
		return "Unsupported engine", 1, nil
	}
	fetch := func(template, dest string) error {
		return fmt.Errorf("mirror unreachable")
	}

	result, err := f.orchestrator(run, fetch).Scaffold(f.ws, "npm create vite@latest my-app -- --template react-ts")
	require.NoError(t, err)
	assert.Equal(t, TierSynth, result.Tier)

	projectDir := filepath.Join(f.ws.RootDir, "my-app")
	manifest, readErr := os.ReadFile(filepath.Join(projectDir, "package.json"))
	require.NoError(t, readErr)
	for _, script := range []string{`"dev"`, `"build"`, `"lint"`, `"preview"`} {
		assert.Contains(t, string(manifest), script)
	}

	assert.FileExists(t, filepath.Join(projectDir, "index.html"))
	assert.FileExists(t, filepath.Join(projectDir, "src", "main.tsx"))
	assert.FileExists(t, filepath.Join(projectDir, "src", "App.tsx"))
	assert.FileExists(t, filepath.Join(projectDir, "src", "index.css"))
	assert.FileExists(t, filepath.Join(projectDir, "vite.config.ts"))
}

func TestScaffoldMissingDirectoryLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)

	// Primary tool claims success but never creates the directory
	run := func(dir, command string) (string, int, error) {
		return "done", 0, nil
	}

	result, err := f.orchestrator(run, nil).Scaffold(f.ws, "npm create vite@latest ghost-app")
	require.NoError(t, err)

	assert.Equal(t, TierPrimary, result.Tier)
	assert.False(t, result.DirConfirmed)
	assert.False(t, result.Installed)

	updated, getErr := f.registry.Get(f.ws.ID)
	require.NoError(t, getErr)
	assert.Equal(t, f.ws.RootDir, updated.WorkingDir)
}
