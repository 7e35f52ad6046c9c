// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Subprocess execution with bounded capture and per-class timeouts

package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sony-level/buildbox/internal/workspace"
)

// spawn runs command through the shell in dir. timeout <= 0 means
// unbounded. The returned error is non-nil only for spawn failures and
// timeouts; an ordinary non-zero exit comes back as (output, code, nil).
func (g *Gateway) spawn(dir, command string, timeout time.Duration, extraEnv []string) (string, int, error) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)

	stdout := newLimitedBuffer(MaxOutputBytes)
	stderr := newLimitedBuffer(MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Kill the whole process group on cancellation so npm's child
	// processes do not outlive the timeout
	setPlatformProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = 5 * time.Second

	g.logger.Debug().Str("command", command).Str("dir", dir).Dur("timeout", timeout).Msg("spawning command")

	err := cmd.Run()
	output := string(aggregateOutput(stdout.Bytes(), stderr.Bytes()))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return output, TimeoutExitCode, fmt.Errorf("command timed out after %v", timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, 1, fmt.Errorf("failed to run command: %w", err)
	}

	return output, 0, nil
}

// commandEnv scopes package-manager caches under baseDir so installs never
// touch a shared global cache and trip cross-workspace permission issues
func commandEnv(baseDir string) []string {
	return []string{
		"npm_config_cache=" + filepath.Join(baseDir, workspace.NpmCacheDirName),
		"npm_config_update_notifier=false",
		"NO_UPDATE_NOTIFIER=1",
		"CI=true",
	}
}
