// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command allowlist classification

package gateway

import (
	"regexp"
	"strings"

	"github.com/sony-level/buildbox/internal/scaffold"
)

// installPatterns identify install/download-class commands that may
// legitimately run long and therefore get no timeout
var installPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(npm|yarn|pnpm)\s+(install|ci|i|add|update|up|upgrade)(\s|$)`),
	regexp.MustCompile(`^git\s+(clone|fetch|pull)(\s|$)`),
}

// generalPatterns are the allowlisted shapes for ordinary commands:
// package-manager invocations, common read-only shell utilities, and
// version control
var generalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(npm|yarn|pnpm)\s+(run|start|test|exec|view|ls|list|outdated|audit|config|pkg|version|-v|--version)(\s|$)`),
	regexp.MustCompile(`^npx\s+\S+`),
	regexp.MustCompile(`^node(\s|$)`),
	regexp.MustCompile(`^(ls|cat|pwd|echo|grep|find|head|tail|wc|stat|du|tree|which|env|printenv|file|sort|uniq)(\s|$)`),
	regexp.MustCompile(`^git(\s|$)`),
}

// cdPattern matches an explicit directory change with a single target
var cdPattern = regexp.MustCompile(`^cd\s+[^&|;><]+$`)

// compoundPattern splits a "cd <dir> && <rest>" form
var compoundPattern = regexp.MustCompile(`^cd\s+([^&|;><\s]+)\s*&&\s*(.+)$`)

// Classify checks the processed command against the allowlist and returns
// its execution class. Commands matching no allowlisted shape are rejected
// and must never be spawned.
func Classify(command string) (Class, bool) {
	command = strings.TrimSpace(command)
	if command == "" {
		return ClassGeneral, false
	}

	// Compound "cd dir && tool" keeps the class of the tool part; any
	// further chaining in the tail is rejected by the recursive call
	if target, rest, ok := SplitCompound(command); ok && target != "" {
		return Classify(rest)
	}

	// Pipes, redirections, chaining and substitution turn an allowlisted
	// tool into an arbitrary shell program
	if hasShellMetachars(command) {
		return ClassGeneral, false
	}

	if scaffold.IsScaffoldCommand(command) {
		return ClassScaffold, true
	}

	for _, p := range installPatterns {
		if p.MatchString(command) {
			return ClassInstall, true
		}
	}

	if cdPattern.MatchString(command) {
		return ClassChangeDir, true
	}

	for _, p := range generalPatterns {
		if p.MatchString(command) {
			return ClassGeneral, true
		}
	}

	return ClassGeneral, false
}

// hasShellMetachars reports whether the command contains shell control
// characters beyond plain words and flags
func hasShellMetachars(command string) bool {
	return strings.ContainsAny(command, ";|><`&") || strings.Contains(command, "$(")
}

// SplitCompound splits a "cd <dir> && <rest>" command into its directory
// target and trailing command
func SplitCompound(command string) (target, rest string, ok bool) {
	m := compoundPattern.FindStringSubmatch(strings.TrimSpace(command))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}
