// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Dependency installation with ordered fallback strategies

package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/fallback"
)

// RunFunc executes a shell command in dir and returns its combined output
// and exit code. A non-nil error covers spawn failures, timeouts and
// non-zero exits.
type RunFunc func(dir, command string) (output string, exitCode int, err error)

// Strategy is one named install attempt
type Strategy struct {
	Name    string
	Command string

	// Precondition gates the strategy; nil means always eligible
	Precondition func(projectDir string) bool
}

// DefaultStrategies returns the install strategies in priority order.
// The lockfile-exact strategy is skipped up front when no lockfile exists,
// since it would be a guaranteed failure.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "standard", Command: "npm install"},
		{Name: "legacy-peer-deps", Command: "npm install --legacy-peer-deps"},
		{Name: "force", Command: "npm install --force"},
		{Name: "lockfile-exact", Command: "npm ci", Precondition: HasLockfile},
	}
}

// HasLockfile reports whether the project carries an npm lockfile
func HasLockfile(projectDir string) bool {
	for _, name := range []string{"package-lock.json", "npm-shrinkwrap.json"} {
		if _, err := os.Stat(filepath.Join(projectDir, name)); err == nil {
			return true
		}
	}
	return false
}

// InstallerConfig holds configuration for the installer
type InstallerConfig struct {
	Run        RunFunc
	Strategies []Strategy
	Logger     zerolog.Logger
}

// Installer tries install strategies in order until one succeeds
type Installer struct {
	run        RunFunc
	strategies []Strategy
	logger     zerolog.Logger
}

// NewInstaller creates an installer. Strategies default to
// DefaultStrategies when nil.
func NewInstaller(config *InstallerConfig) *Installer {
	strategies := config.Strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	return &Installer{
		run:        config.Run,
		strategies: strategies,
		logger:     config.Logger,
	}
}

// Install runs strategies against projectDir until one exits zero.
// Exhaustion is non-fatal for the surrounding scaffold: the project stays
// on disk in a buildable-but-not-yet-installed state and the caller may
// retry through the normal command path. Returns whether any strategy
// succeeded.
func (i *Installer) Install(projectDir string) bool {
	tiers := make([]fallback.Tier, 0, len(i.strategies))

	for _, s := range i.strategies {
		strategy := s
		tiers = append(tiers, fallback.Tier{
			Name: strategy.Name,
			Precondition: func() bool {
				if strategy.Precondition == nil {
					return true
				}
				ok := strategy.Precondition(projectDir)
				if !ok {
					i.logger.Debug().Str("strategy", strategy.Name).Msg("precondition not met, skipping install strategy")
				}
				return ok
			},
			Attempt: func() error {
				i.logger.Info().Str("strategy", strategy.Name).Str("dir", projectDir).Msg("attempting dependency install")

				output, exitCode, err := i.run(projectDir, strategy.Command)
				if err != nil {
					return fmt.Errorf("%s failed: %w", strategy.Name, err)
				}
				if exitCode != 0 {
					return fmt.Errorf("%s exited with code %d: %s", strategy.Name, exitCode, tail(output, 400))
				}
				return nil
			},
			// Every install failure moves on to the next strategy
			Recoverable: func(error) bool { return true },
		})
	}

	name, err := fallback.Run(tiers)
	if err != nil {
		i.logger.Warn().Err(err).Str("dir", projectDir).Msg("all install strategies failed, project left uninstalled")
		return false
	}

	i.logger.Info().Str("strategy", name).Str("dir", projectDir).Msg("dependency install succeeded")
	return true
}

// tail returns at most n trailing bytes of s
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
