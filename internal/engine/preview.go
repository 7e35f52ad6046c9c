// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Dev server preview detection

package engine

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

const (
	// vitePort is Vite's default dev server port
	vitePort = 5173
	// fallbackPort is assumed for non-Vite dev scripts
	fallbackPort = 3000

	probeTimeout = 250 * time.Millisecond
)

var viteConfigNames = []string{
	"vite.config.ts",
	"vite.config.js",
	"vite.config.mts",
	"vite.config.mjs",
}

var portAssignment = regexp.MustCompile(`port:\s*(\d{2,5})`)

// GetPreviewHint inspects the workspace's project and reports the port a
// dev server would use. Projects with a Vite config get Vite's port (or
// the one pinned in the config); anything else with a dev script gets the
// conventional default. Returns an error when the project has no dev
// entry point at all.
func (e *Engine) GetPreviewHint(workspaceID string) (*PreviewHint, error) {
	ws, err := e.registry.Get(workspaceID)
	if err != nil {
		return nil, err
	}

	port, err := detectDevPort(ws.WorkingDir)
	if err != nil {
		return nil, err
	}

	hint := &PreviewHint{
		Port:      port,
		URL:       fmt.Sprintf("http://localhost:%d", port),
		Listening: probePort(port),
	}

	e.logger.Debug().Int("port", hint.Port).Bool("listening", hint.Listening).Msg("computed preview hint")
	return hint, nil
}

func detectDevPort(dir string) (int, error) {
	for _, name := range viteConfigNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if m := portAssignment.FindSubmatch(data); m != nil {
			if port, err := strconv.Atoi(string(m[1])); err == nil {
				return port, nil
			}
		}
		return vitePort, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return 0, fmt.Errorf("no dev server found: %w", err)
	}
	var manifest struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return 0, fmt.Errorf("failed to parse package.json: %w", err)
	}
	if _, ok := manifest.Scripts["dev"]; !ok {
		return 0, fmt.Errorf("no dev script in package.json")
	}
	return fallbackPort, nil
}

// probePort reports whether something accepts connections on the port
func probePort(port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)), probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
