// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for configuration precedence

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp isolates the test from any .buildbox.* in the repo root
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
}

func TestResolveDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Resolve("", "", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Mode != DefaultMode {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.WorkspaceRoot == "" {
		t.Error("expected a derived workspace root")
	}
	if cfg.Timeout() != 0 {
		t.Errorf("unset timeout should parse to zero, got %v", cfg.Timeout())
	}
}

func TestResolvePrecedence(t *testing.T) {
	chdirTemp(t)

	fileCfg := "mode: local\nworkspace_root: /from/file\ncommand_timeout: 90s\n"
	if err := os.WriteFile(".buildbox.yaml", []byte(fileCfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// File alone
	cfg, err := Resolve("", "", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.WorkspaceRoot != "/from/file" || cfg.Timeout() != 90*time.Second {
		t.Errorf("file config not applied: %+v", cfg)
	}

	// Environment beats file
	t.Setenv("BUILDBOX_MODE", ModeEphemeral)
	t.Setenv("BUILDBOX_WORKSPACE_ROOT", "/from/env")
	cfg, err = Resolve("", "", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Mode != ModeEphemeral || cfg.WorkspaceRoot != "/from/env" {
		t.Errorf("env should override file: %+v", cfg)
	}

	// CLI beats environment
	cfg, err = Resolve(ModeLocal, "/from/cli", 10*time.Second)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Mode != ModeLocal || cfg.WorkspaceRoot != "/from/cli" {
		t.Errorf("cli should override env: %+v", cfg)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
}

func TestResolveJSONConfig(t *testing.T) {
	chdirTemp(t)

	fileCfg := `{"mode": "ephemeral", "keep_workspaces": true}`
	if err := os.WriteFile(".buildbox.json", []byte(fileCfg), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Resolve("", "", 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Mode != ModeEphemeral || !cfg.KeepWorkspaces {
		t.Errorf("json config not applied: %+v", cfg)
	}
}

func TestDefaultWorkspaceRootByMode(t *testing.T) {
	ephemeral := DefaultWorkspaceRoot(ModeEphemeral)
	if !filepath.IsAbs(ephemeral) {
		t.Errorf("expected absolute path, got %s", ephemeral)
	}

	local := DefaultWorkspaceRoot(ModeLocal)
	if local == ephemeral {
		t.Errorf("modes should derive different roots, both %s", local)
	}
}
