/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sony-level/buildbox/internal/config"
	"github.com/sony-level/buildbox/internal/engine"
)

var (
	// Global flags
	modeFlag      string
	workspaceRoot string
	timeoutFlag   time.Duration
	verbose       bool

	// Workspace selection
	workspaceName string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bbx",
	Short: "Sandboxed workspaces for building web projects",
	Long: `bbx (buildbox) manages isolated workspace directories and runs
allowlisted build commands inside them. Commands are rewritten for
environment compatibility, scaffolding falls back through mirror
fetch and synthetic generation, and every file operation is
containment-checked against the workspace root.

Examples:
  bbx create
  bbx exec "npm create vite@latest my-app -- --template react-ts"
  bbx exec --workspace ws-20260825-1530-a1b "npm run build"
  bbx files tree --workspace ws-20260825-1530-a1b
  bbx status
  bbx cleanup --older-than 24h`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI logger; debug level when --verbose is set
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// newEngine resolves the effective configuration and builds an engine
func newEngine() (*engine.Engine, error) {
	cfg, err := config.Resolve(modeFlag, workspaceRoot, timeoutFlag)
	if err != nil {
		return nil, err
	}

	return engine.New(&engine.Config{
		WorkspaceRoot:  cfg.WorkspaceRoot,
		Mode:           cfg.Mode,
		CommandTimeout: cfg.Timeout(),
		Logger:         newLogger(),
	})
}

// targetWorkspace picks the workspace for this invocation: the one named
// by --workspace, or the active one (created on demand)
func targetWorkspace(e *engine.Engine) (string, error) {
	if workspaceName != "" {
		return e.AttachWorkspace(workspaceName)
	}
	ws, err := e.GetOrCreateActiveWorkspace()
	if err != nil {
		return "", err
	}
	return ws.ID, nil
}

func init() {
	// Persistent flags - available to all subcommands
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Workspace mode: local or ephemeral (default from config)")
	rootCmd.PersistentFlags().StringVar(&workspaceRoot, "workspace-root", "", "Directory all workspaces live under")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Timeout for general commands (default 45s; installs are unbounded)")
	rootCmd.PersistentFlags().StringVarP(&workspaceName, "workspace", "w", "", "Reattach to an existing workspace by name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
