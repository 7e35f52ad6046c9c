// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command preprocessing for runtime compatibility

package gateway

import (
	"regexp"
	"strings"
)

// legacyCdPrefix matches a leading "cd <legacy-absolute-path> &&" segment.
// Directory context is owned by the workspace, not the caller's literal
// path from the previous filesystem layout.
var legacyCdPrefix = regexp.MustCompile(`^cd\s+(?:/home/user/app|/app)(?:/[^\s&|;]*)?\s*&&\s*`)

// bunRewrites substitutes fast-runtime invocations that are unreliable in
// the target runtime for their stable npm equivalents. Order matters:
// longer prefixes first.
var bunRewrites = []struct{ from, to string }{
	{"bun install", "npm install"},
	{"bun add ", "npm install "},
	{"bun remove ", "npm uninstall "},
	{"bun run ", "npm run "},
	{"bun x ", "npx "},
	{"bunx ", "npx "},
}

// Preprocess rewrites a raw command for environment compatibility.
// Scaffold-creation invocations pass through intact for the orchestrator.
func Preprocess(raw string) string {
	cmd := strings.TrimSpace(raw)

	cmd = legacyCdPrefix.ReplaceAllString(cmd, "")
	cmd = strings.TrimSpace(cmd)

	for _, rw := range bunRewrites {
		if cmd == strings.TrimSpace(rw.from) {
			cmd = strings.TrimSpace(rw.to)
			break
		}
		if strings.HasPrefix(cmd, rw.from) {
			cmd = rw.to + strings.TrimPrefix(cmd, rw.from)
			break
		}
	}

	return cmd
}
