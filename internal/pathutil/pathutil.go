// Package pathutil expands catalog paths and matches the working
// directory against workspace roots.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand turns a catalog path into an absolute one: `~` becomes the
// home directory and the result is canonicalized so symlinked roots
// (for example /var -> /private/var) still compare equal. Paths that
// do not exist yet are returned expanded but uncanonicalized.
func Expand(path string) string {
	expanded := expandTilde(path)
	if resolved, err := filepath.EvalSymlinks(expanded); err == nil {
		if abs, err := filepath.Abs(resolved); err == nil {
			return abs
		}
		return resolved
	}
	return expanded
}

func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// WorkspacePath pairs a workspace id with its expanded root.
type WorkspacePath struct {
	ID   string
	Path string
}

// MostSpecificWorkspace returns the id of the workspace whose expanded
// root is the longest prefix of current. Workspaces may nest; the inner
// one wins. Returns "" when nothing matches. Ties keep the earlier
// entry, so iteration order must be stable.
func MostSpecificWorkspace(current string, workspaces []WorkspacePath) string {
	bestLen := -1
	best := ""
	for _, ws := range workspaces {
		if !strings.HasPrefix(current, ws.Path) {
			continue
		}
		if len(ws.Path) > bestLen {
			bestLen = len(ws.Path)
			best = ws.ID
		}
	}
	return best
}
