// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for path resolution and containment

package paths

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sony-level/buildbox/internal/workspace"
)

func testWorkspace(root string) *workspace.Workspace {
	rootDir := filepath.Join(root, "ws-test")
	return &workspace.Workspace{
		ID:         "test-id",
		Name:       "ws-test",
		RootDir:    rootDir,
		WorkingDir: rootDir,
		CreatedAt:  time.Now(),
	}
}

func TestResolveRelative(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	got, err := r.Resolve(ws, "src/App.tsx")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want := filepath.Join(ws.WorkingDir, "src", "App.tsx")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveLegacyPrefix(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	for _, input := range []string{"/home/user/app/src/main.tsx", "/app/src/main.tsx"} {
		got, err := r.Resolve(ws, input)
		if err != nil {
			t.Fatalf("resolve %s failed: %v", input, err)
		}
		want := filepath.Join(ws.WorkingDir, "src", "main.tsx")
		if got != want {
			t.Errorf("resolve %s: expected %s, got %s", input, want, got)
		}
	}
}

func TestResolveWorkspaceRootRebase(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	// Working directory has moved into the scaffolded project; a stale
	// path against the workspace root is rebased onto it.
	ws.WorkingDir = filepath.Join(ws.RootDir, "my-app")

	got, err := r.Resolve(ws, filepath.Join(ws.RootDir, "src", "App.tsx"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := filepath.Join(ws.WorkingDir, "src", "App.tsx")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	// A path already under the working directory passes through unchanged
	direct := filepath.Join(ws.WorkingDir, "index.html")
	got, err = r.Resolve(ws, direct)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != direct {
		t.Errorf("expected %s unchanged, got %s", direct, got)
	}
}

func TestResolveAbsoluteInsideRoot(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	other := filepath.Join(root, "ws-other", "notes.txt")
	got, err := r.Resolve(ws, other)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != other {
		t.Errorf("expected %s unchanged, got %s", other, got)
	}
}

func TestResolveAbsoluteOutsideFallsBackToBaseName(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	got, err := r.Resolve(ws, "/etc/hosts")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := filepath.Join(ws.WorkingDir, "hosts")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	for _, input := range []string{
		"../../etc/passwd",
		"../../../../etc/passwd",
		"src/../../../etc/shadow",
	} {
		if _, err := r.Resolve(ws, input); err == nil {
			t.Errorf("expected containment violation for %s", input)
		}
	}
}

func TestResolveAlwaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)
	ws := testWorkspace(root)

	inputs := []string{
		".", "", "README.md", "src/deep/nested/file.ts",
		"/home/user/app/index.html", "/app",
		filepath.Join(ws.RootDir, "anything"),
		"/usr/local/bin/node",
	}

	for _, input := range inputs {
		got, err := r.Resolve(ws, input)
		if err != nil {
			t.Fatalf("resolve %q failed: %v", input, err)
		}
		rel, err := filepath.Rel(root, got)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "..") {
			t.Errorf("resolve %q escaped the root: %s", input, got)
		}
	}
}
