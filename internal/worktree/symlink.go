package worktree

import (
	"fmt"
	"os"
	"path/filepath"
)

// SymlinkResult reports what happened for each configured pattern.
type SymlinkResult struct {
	// Created holds worktree-relative paths of links that were made.
	Created []string
	// Skipped holds worktree-relative paths whose target already
	// existed.
	Skipped []string
}

// CreateSymlinks globs each pattern against the main repo root and
// links every match into the worktree at the same relative path. Link
// targets are absolute so they survive moves of the worktree.
// Existing targets are skipped, not replaced.
func CreateSymlinks(repoRoot, worktreePath string, patterns []string) (SymlinkResult, error) {
	var res SymlinkResult
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(repoRoot, pattern))
		if err != nil {
			return res, fmt.Errorf("bad symlink pattern %q: %w", pattern, err)
		}
		for _, src := range matches {
			rel, err := filepath.Rel(repoRoot, src)
			if err != nil {
				return res, err
			}
			target := filepath.Join(worktreePath, rel)
			if _, err := os.Lstat(target); err == nil {
				res.Skipped = append(res.Skipped, rel)
				continue
			}
			abs, err := filepath.Abs(src)
			if err != nil {
				return res, err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return res, err
			}
			if err := os.Symlink(abs, target); err != nil {
				return res, err
			}
			res.Created = append(res.Created, rel)
		}
	}
	return res, nil
}
