// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Shared types for the engine facade

package engine

import "github.com/sony-level/buildbox/internal/workspace"

// Status is a point-in-time snapshot of the engine
type Status struct {
	Mode                 string              `json:"mode"`
	ActiveWorkspaceCount int                 `json:"active_workspace_count"`
	Workspaces           []workspace.Summary `json:"workspaces"`
}

// PreviewHint describes where a dev server for the workspace's project
// would listen, and whether something is already listening there
type PreviewHint struct {
	Port      int    `json:"port"`
	URL       string `json:"url"`
	Listening bool   `json:"listening"`
}
