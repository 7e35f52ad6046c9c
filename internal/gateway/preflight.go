// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Pre-flight validation of named script invocations

package gateway

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// runScriptPattern extracts the script name from a "run <script>" invocation
var runScriptPattern = regexp.MustCompile(`^(?:npm|yarn|pnpm)\s+run\s+(\S+)`)

// packageManifest is the slice of package.json the gateway cares about
type packageManifest struct {
	Scripts map[string]string `json:"scripts"`
}

// validateScript fails fast when a named script is missing from the target
// project's manifest, enumerating the available alternatives instead of
// letting the underlying tool produce an opaque error. Commands that do not
// invoke a named script, and projects without a manifest, pass through.
func validateScript(dir, command string) error {
	m := runScriptPattern.FindStringSubmatch(command)
	if m == nil {
		return nil
	}
	script := m[1]

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		// No manifest to validate against; let the tool report
		return nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	if _, ok := manifest.Scripts[script]; ok {
		return nil
	}

	available := make([]string, 0, len(manifest.Scripts))
	for name := range manifest.Scripts {
		available = append(available, name)
	}
	sort.Strings(available)

	if len(available) == 0 {
		return fmt.Errorf("script %q not found in package.json (no scripts defined)", script)
	}
	return fmt.Errorf("script %q not found in package.json; available scripts: %s", script, strings.Join(available, ", "))
}
