// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command gateway types and constants

package gateway

import "time"

const (
	// DefaultCommandTimeout bounds general commands. Install and
	// download-class commands run without a timeout since they may
	// legitimately take minutes.
	DefaultCommandTimeout = 45 * time.Second

	// TimeoutExitCode is reported when a command is killed by its timeout
	TimeoutExitCode = 124
)

// Class describes how a processed command is executed
type Class int

const (
	// ClassGeneral commands run with the short default timeout
	ClassGeneral Class = iota
	// ClassInstall commands (installs, downloads, clones) run unbounded
	ClassInstall
	// ClassScaffold commands are handed to the scaffold orchestrator
	ClassScaffold
	// ClassChangeDir commands update the workspace working directory
	ClassChangeDir
)

// Result is the immutable outcome of one execution request. Absence of
// Error implies success by convention, but ExitCode is always explicit.
type Result struct {
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// rejection builds the structured result for a command that is refused
// before ever being spawned
func rejection(msg string) *Result {
	return &Result{Error: msg, ExitCode: 1}
}
