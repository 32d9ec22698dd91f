package worktree

import (
	"path/filepath"

	"github.com/rafaeltab/rafaeltab/internal/config"
)

// Merged is the effective worktree configuration for one workspace:
// the global config with the workspace overrides folded in.
type Merged struct {
	SymlinkFiles []string
	OnCreate     []string
}

// Merge layers a workspace worktree config over the global one. Global
// entries come first in their original order; workspace entries are
// appended unless an identical entry is already present.
func Merge(global *config.WorktreeConfig, workspace *config.WorkspaceWorktreeConfig) Merged {
	var m Merged
	if global != nil {
		m.SymlinkFiles = append(m.SymlinkFiles, global.SymlinkFiles...)
		m.OnCreate = append(m.OnCreate, global.OnCreate...)
	}
	if workspace != nil {
		m.SymlinkFiles = appendMissing(m.SymlinkFiles, workspace.SymlinkFiles)
		m.OnCreate = appendMissing(m.OnCreate, workspace.OnCreate)
	}
	return m
}

func (m Merged) IsEmpty() bool {
	return len(m.SymlinkFiles) == 0 && len(m.OnCreate) == 0
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		if !contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// Path returns where a worktree for branch lives: a sibling of the
// main repo directory named after the branch. Slashes in the branch
// name produce nested directories.
func Path(repoRoot, branch string) string {
	return filepath.Join(filepath.Dir(repoRoot), branch)
}
