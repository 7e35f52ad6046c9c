// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Engine configuration with precedence: CLI > ENV > config file > defaults

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ModeLocal runs workspaces under a per-user directory
	ModeLocal = "local"
	// ModeEphemeral runs workspaces under the system temp directory
	ModeEphemeral = "ephemeral"

	// DefaultMode is used when no mode is configured
	DefaultMode = ModeLocal
)

// Config represents the engine configuration from file
type Config struct {
	Mode           string `json:"mode" yaml:"mode"`
	WorkspaceRoot  string `json:"workspace_root" yaml:"workspace_root"`
	CommandTimeout string `json:"command_timeout" yaml:"command_timeout"` // e.g., "45s"
	KeepWorkspaces bool   `json:"keep_workspaces" yaml:"keep_workspaces"`
}

// ConfigPaths returns the paths to check for config files in order
func ConfigPaths() []string {
	var paths []string

	// Current directory
	paths = append(paths, ".buildbox.yaml", ".buildbox.yml", ".buildbox.json")

	// XDG config directory
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths,
			filepath.Join(xdg, "buildbox", "config.yaml"),
			filepath.Join(xdg, "buildbox", "config.yml"),
			filepath.Join(xdg, "buildbox", "config.json"),
		)
	}

	// Home directory
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "buildbox", "config.yaml"),
			filepath.Join(home, ".config", "buildbox", "config.yml"),
			filepath.Join(home, ".buildbox.yaml"),
			filepath.Join(home, ".buildbox.json"),
		)
	}

	return paths
}

// LoadFile loads configuration from the first config file found.
// A missing config file is not an error.
func LoadFile() (*Config, error) {
	for _, path := range ConfigPaths() {
		cfg, err := loadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		// Continue if file not found, return error for parse failures
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, nil
}

func loadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Resolve merges CLI values over environment, config file and defaults and
// returns the effective configuration
func Resolve(cliMode, cliRoot string, cliTimeout time.Duration) (*Config, error) {
	cfg := &Config{Mode: DefaultMode}

	// Config file (lowest priority)
	if fileCfg, err := LoadFile(); err != nil {
		return nil, err
	} else if fileCfg != nil {
		if fileCfg.Mode != "" {
			cfg.Mode = fileCfg.Mode
		}
		cfg.WorkspaceRoot = fileCfg.WorkspaceRoot
		cfg.CommandTimeout = fileCfg.CommandTimeout
		cfg.KeepWorkspaces = fileCfg.KeepWorkspaces
	}

	// Environment variables
	if env := os.Getenv("BUILDBOX_MODE"); env != "" {
		cfg.Mode = env
	}
	if env := os.Getenv("BUILDBOX_WORKSPACE_ROOT"); env != "" {
		cfg.WorkspaceRoot = env
	}

	// CLI flags (highest priority)
	if cliMode != "" {
		cfg.Mode = cliMode
	}
	if cliRoot != "" {
		cfg.WorkspaceRoot = cliRoot
	}
	if cliTimeout > 0 {
		cfg.CommandTimeout = cliTimeout.String()
	}

	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = DefaultWorkspaceRoot(cfg.Mode)
	}

	return cfg, nil
}

// DefaultWorkspaceRoot derives the process-wide workspace root from the
// operating mode
func DefaultWorkspaceRoot(mode string) string {
	if mode == ModeEphemeral {
		return filepath.Join(os.TempDir(), "buildbox-workspaces")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".buildbox", "workspaces")
	}
	return filepath.Join(os.TempDir(), "buildbox-workspaces")
}

// Timeout parses the configured command timeout, falling back to zero
// (meaning: use the gateway default) on absence or parse failure
func (c *Config) Timeout() time.Duration {
	if c.CommandTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil {
		return 0
	}
	return d
}
