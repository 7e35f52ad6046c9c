// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command gateway: classification, rewriting, bounded execution

package gateway

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/install"
	"github.com/sony-level/buildbox/internal/paths"
	"github.com/sony-level/buildbox/internal/scaffold"
	"github.com/sony-level/buildbox/internal/workspace"
)

// Config holds configuration for the gateway
type Config struct {
	Registry *workspace.Registry
	Resolver *paths.Resolver

	// CommandTimeout bounds general commands; defaults to
	// DefaultCommandTimeout. Install and scaffold commands are unbounded.
	CommandTimeout time.Duration

	// Fetch overrides the scaffold mirror fetch (for testing)
	Fetch scaffold.FetchFunc

	// SettleDelay overrides the scaffold settle delay (for testing)
	SettleDelay time.Duration

	Logger zerolog.Logger
}

// Gateway gatekeeps which commands may run against a workspace, rewrites
// them for environment compatibility, and executes them with bounded
// buffering and policy-selected timeouts
type Gateway struct {
	registry     *workspace.Registry
	resolver     *paths.Resolver
	orchestrator *scaffold.Orchestrator
	timeout      time.Duration
	logger       zerolog.Logger
}

// New creates a gateway and wires its runner into the scaffold
// orchestrator and dependency installer
func New(config *Config) *Gateway {
	timeout := config.CommandTimeout
	if timeout == 0 {
		timeout = DefaultCommandTimeout
	}

	g := &Gateway{
		registry: config.Registry,
		resolver: config.Resolver,
		timeout:  timeout,
		logger:   config.Logger,
	}

	// Install and scaffold subprocesses run unbounded with caches scoped
	// to the directory they operate in
	unboundedRun := func(dir, command string) (string, int, error) {
		return g.spawn(dir, command, 0, commandEnv(dir))
	}

	installer := install.NewInstaller(&install.InstallerConfig{
		Run:    install.RunFunc(unboundedRun),
		Logger: config.Logger,
	})

	g.orchestrator = scaffold.NewOrchestrator(&scaffold.Config{
		Registry:    config.Registry,
		Installer:   installer,
		Run:         scaffold.RunFunc(unboundedRun),
		Fetch:       config.Fetch,
		SettleDelay: config.SettleDelay,
		Logger:      config.Logger,
	})

	return g
}

// Execute runs rawCommand against the workspace. Every failure mode comes
// back as a structured Result; execution errors never propagate as faults.
func (g *Gateway) Execute(ws *workspace.Workspace, rawCommand string) *Result {
	command := Preprocess(rawCommand)

	class, allowed := Classify(command)
	if !allowed {
		g.logger.Warn().Str("command", command).Msg("command rejected by allowlist")
		return rejection(fmt.Sprintf("command not allowed: %s", command))
	}

	switch class {
	case ClassScaffold:
		return g.executeScaffold(ws, command)
	case ClassChangeDir:
		return g.executeChangeDir(ws, command)
	}

	dir := ws.WorkingDir

	// Compound "cd dir && tool": the cd segment selects the execution
	// directory, the tool runs there
	if target, rest, ok := SplitCompound(command); ok {
		resolved, err := g.resolver.Resolve(ws, target)
		if err != nil {
			return rejection(fmt.Sprintf("cannot change directory to %s: %v", target, err))
		}
		dir = resolved
		command = rest
	}

	if err := validateScript(dir, command); err != nil {
		g.logger.Warn().Str("command", command).Err(err).Msg("pre-flight validation failed")
		return rejection(err.Error())
	}

	timeout := g.timeout
	if class == ClassInstall {
		timeout = 0
	}

	output, exitCode, err := g.spawn(dir, command, timeout, commandEnv(ws.RootDir))
	if err != nil {
		return &Result{Output: output, Error: err.Error(), ExitCode: exitCode}
	}
	if exitCode != 0 {
		return &Result{
			Output:   output,
			Error:    fmt.Sprintf("command exited with code %d", exitCode),
			ExitCode: exitCode,
		}
	}

	return &Result{Output: output, ExitCode: 0}
}

// executeScaffold hands a project-creation command to the orchestrator and
// folds its outcome into a structured result
func (g *Gateway) executeScaffold(ws *workspace.Workspace, command string) *Result {
	res, err := g.orchestrator.Scaffold(ws, command)
	if err != nil {
		return rejection(err.Error())
	}

	summary := fmt.Sprintf("scaffolded %s (template %s) via %s", res.Request.ProjectName, res.Request.Template, res.Tier)
	if !res.DirConfirmed {
		summary += "; project directory not found after scaffold"
	} else if !res.Installed {
		summary += "; dependency install incomplete, retry with npm install"
	}

	output := res.Output
	if output != "" {
		output += "\n"
	}
	return &Result{Output: output + summary, ExitCode: 0}
}

// executeChangeDir resolves an explicit "cd <dir>" against the workspace
// and updates its working directory
func (g *Gateway) executeChangeDir(ws *workspace.Workspace, command string) *Result {
	target := strings.TrimSpace(command[len("cd"):])

	resolved, err := g.resolver.Resolve(ws, target)
	if err != nil {
		return rejection(fmt.Sprintf("cannot change directory to %s: %v", target, err))
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return rejection(fmt.Sprintf("no such directory: %s", target))
	}

	if err := g.registry.SetWorkingDir(ws.ID, resolved); err != nil {
		return rejection(err.Error())
	}

	return &Result{Output: resolved, ExitCode: 0}
}
