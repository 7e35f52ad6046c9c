// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Windows-specific process handling

//go:build windows

package gateway

import (
	"os/exec"
)

// setPlatformProcessGroup configures platform-specific process attributes.
// Windows does not use Unix-style process groups; CommandContext handles
// termination via TerminateProcess.
func setPlatformProcessGroup(cmd *exec.Cmd) {
}

// killProcessGroup kills the process and its children. On Windows we rely
// on Process.Kill, which calls TerminateProcess.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
