// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scaffold orchestration with tiered degradation

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/fallback"
	"github.com/sony-level/buildbox/internal/install"
	"github.com/sony-level/buildbox/internal/workspace"
)

// DefaultSettleDelay is how long the orchestrator waits for the filesystem
// to settle after a tier reports success before confirming the project
// directory
const DefaultSettleDelay = 500 * time.Millisecond

// Tier names in degradation order
const (
	TierPrimary = "primary-tool"
	TierMirror  = "mirror-fetch"
	TierSynth   = "synthetic"
)

// RunFunc executes a shell command in dir and returns its combined output
// and exit code
type RunFunc func(dir, command string) (output string, exitCode int, err error)

// FetchFunc fetches a template's file tree into dest
type FetchFunc func(template, dest string) error

// Config holds configuration for the orchestrator
type Config struct {
	Registry  *workspace.Registry
	Installer *install.Installer
	Run       RunFunc

	// Fetch defaults to MirrorFetch
	Fetch FetchFunc

	// SettleDelay defaults to DefaultSettleDelay
	SettleDelay time.Duration

	Logger zerolog.Logger
}

// Result describes a completed scaffold
type Result struct {
	Tier         string
	Request      Request
	ProjectDir   string
	DirConfirmed bool
	Installed    bool
	Output       string
}

// Orchestrator degrades through scaffold tiers: the official tool first,
// then a mirror fetch of the template tree, then a hand-synthesized
// minimal project.
type Orchestrator struct {
	registry    *workspace.Registry
	installer   *install.Installer
	run         RunFunc
	fetch       FetchFunc
	settleDelay time.Duration
	logger      zerolog.Logger
}

// NewOrchestrator creates an orchestrator from config
func NewOrchestrator(config *Config) *Orchestrator {
	fetch := config.Fetch
	if fetch == nil {
		fetch = MirrorFetch
	}
	settle := config.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}

	return &Orchestrator{
		registry:    config.Registry,
		installer:   config.Installer,
		run:         config.Run,
		fetch:       fetch,
		settleDelay: settle,
		logger:      config.Logger,
	}
}

// Scaffold runs the project-creation command through the tier chain. The
// second tier is attempted only when the primary tool fails with a
// recognized engine-incompatibility signature; unrecognized failures
// terminate the chain and are reported as-is. On tier success the workspace
// working directory moves to the new project root and dependencies are
// installed.
func (o *Orchestrator) Scaffold(ws *workspace.Workspace, command string) (*Result, error) {
	req := ParseRequest(command)
	projectDir := filepath.Join(ws.WorkingDir, req.ProjectName)

	result := &Result{
		Request:    req,
		ProjectDir: projectDir,
	}

	var primaryOutput string

	tiers := []fallback.Tier{
		{
			Name: TierPrimary,
			Attempt: func() error {
				o.logger.Info().Str("command", command).Msg("running primary scaffold tool")

				output, exitCode, err := o.run(ws.WorkingDir, command)
				primaryOutput = output
				if err != nil {
					return fmt.Errorf("primary scaffold tool failed: %w: %s", err, output)
				}
				if exitCode != 0 {
					return fmt.Errorf("primary scaffold tool exited with code %d: %s", exitCode, output)
				}
				result.Output = output
				return nil
			},
			Recoverable: func(err error) bool {
				return isEngineIncompatibility(primaryOutput, err)
			},
		},
		{
			Name: TierMirror,
			Attempt: func() error {
				o.logger.Info().Str("template", req.Template).Str("dest", projectDir).Msg("fetching template from mirror")
				return o.fetch(req.Template, projectDir)
			},
			// Any mirror failure may still be served by synthesis
			Recoverable: func(error) bool { return true },
		},
		{
			Name: TierSynth,
			Attempt: func() error {
				o.logger.Info().Str("project", req.ProjectName).Str("dest", projectDir).Msg("synthesizing minimal project")
				return Synthesize(req.ProjectName, projectDir)
			},
		},
	}

	tier, err := fallback.Run(tiers)
	if err != nil {
		o.logger.Error().Err(err).Str("command", command).Msg("scaffold failed")
		return nil, err
	}
	result.Tier = tier

	// Let the filesystem settle before confirming the project directory
	time.Sleep(o.settleDelay)

	info, statErr := os.Stat(projectDir)
	if statErr != nil || !info.IsDir() {
		// Explicit anomaly: the tier reported success but the directory is
		// not there. Leave the working directory unchanged so the caller
		// sees consistent state.
		o.logger.Warn().Str("tier", tier).Str("dir", projectDir).Msg("scaffold tier succeeded but project directory not found")
		return result, nil
	}
	result.DirConfirmed = true

	if err := o.registry.SetWorkingDir(ws.ID, projectDir); err != nil {
		return nil, fmt.Errorf("failed to update working directory after scaffold: %w", err)
	}

	result.Installed = o.installer.Install(projectDir)

	o.logger.Info().
		Str("tier", tier).
		Str("project", req.ProjectName).
		Bool("installed", result.Installed).
		Msg("scaffold complete")

	return result, nil
}
