// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Template mirror fetching via shallow git clone

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// templateMirrors maps logical template names to mirror repositories
// holding the corresponding starter file tree
var templateMirrors = map[string]string{
	"react":      "https://github.com/sony-level/starter-react.git",
	"react-ts":   "https://github.com/sony-level/starter-react-ts.git",
	"vue":        "https://github.com/sony-level/starter-vue.git",
	"vue-ts":     "https://github.com/sony-level/starter-vue-ts.git",
	"svelte":     "https://github.com/sony-level/starter-svelte.git",
	"svelte-ts":  "https://github.com/sony-level/starter-svelte-ts.git",
	"vanilla":    "https://github.com/sony-level/starter-vanilla.git",
	"vanilla-ts": "https://github.com/sony-level/starter-vanilla-ts.git",
}

// MirrorURL returns the mirror repository for a logical template name.
// Unknown templates fall back to the default template's mirror.
func MirrorURL(template string) string {
	if url, ok := templateMirrors[template]; ok {
		return url
	}
	return templateMirrors[DefaultTemplate]
}

// MirrorFetch materializes only the template's file tree (no version-control
// history) into dest: shallow single-branch clone of HEAD, then removal of
// the git metadata. A partial clone is removed on failure.
func MirrorFetch(template, dest string) error {
	url := MirrorURL(template)

	_, err := git.PlainClone(dest, false, &git.CloneOptions{
		URL:           url,
		Depth:         1,
		SingleBranch:  true,
		ReferenceName: plumbing.HEAD,
	})
	if err != nil {
		_ = os.RemoveAll(dest)
		return fmt.Errorf("failed to fetch template %s from mirror: %w", template, err)
	}

	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("failed to strip git metadata: %w", err)
	}

	return nil
}
