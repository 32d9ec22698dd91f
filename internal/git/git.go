// Package git wraps the version-control operations the worktree and
// session flows need. Reference lookups go through go-git; the worktree
// lifecycle uses the real git binary because go-git does not support
// linked-worktree management.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rafaeltab/rafaeltab/internal/execx"
)

var (
	// ErrDetachedHead is returned when HEAD does not point at a branch.
	ErrDetachedHead = errors.New("detached HEAD")
	// ErrNotInRepo is returned when a path is not inside a git repository.
	ErrNotInRepo = errors.New("not in a git repository")
)

// BranchLocation says where a branch exists.
type BranchLocation int

const (
	// BranchMissing means the branch exists neither locally nor remotely.
	BranchMissing BranchLocation = iota
	// BranchLocal means refs/heads/<branch> exists.
	BranchLocal
	// BranchRemote means refs/remotes/<remote>/<branch> exists.
	BranchRemote
)

// Branch describes a branch lookup result.
type Branch struct {
	Location BranchLocation
	// Remote is set when Location is BranchRemote.
	Remote string
}

// WorktreeInfo is one entry of `git worktree list --porcelain`. The
// first listed worktree is the main checkout.
type WorktreeInfo struct {
	Path   string
	Branch string
	IsMain bool
}

// Adapter executes git operations rooted at arbitrary directories.
type Adapter struct {
	exec execx.Executor
}

func NewAdapter(exec execx.Executor) *Adapter {
	return &Adapter{exec: exec}
}

// RootWorktreePath resolves the main worktree's root from any path
// inside the repository, linked worktrees included.
func (a *Adapter) RootWorktreePath(ctx context.Context, dir string) (string, error) {
	out, err := a.exec.Output(ctx, dir, "git", "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInRepo, dir)
	}
	commonDir := strings.TrimSpace(out)
	if filepath.Base(commonDir) == ".git" {
		return filepath.Dir(commonDir), nil
	}
	// Bare or unusual layout: fall back to the porcelain listing, whose
	// first entry is the main worktree.
	worktrees, err := a.ListWorktrees(ctx, dir)
	if err != nil || len(worktrees) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotInRepo, dir)
	}
	return worktrees[0].Path, nil
}

// CurrentBranch returns the branch checked out at dir, or
// ErrDetachedHead when HEAD is detached.
func (a *Adapter) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := a.exec.Output(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInRepo, dir)
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// LookupBranch reports whether branch exists locally, on origin, or not
// at all. Reads go through go-git so no subprocess is spawned.
func (a *Adapter) LookupBranch(repoRoot string, branch string) Branch {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Branch{Location: BranchMissing}
	}
	if _, err := repo.Reference(plumbing.NewBranchReferenceName(branch), false); err == nil {
		return Branch{Location: BranchLocal}
	}
	if _, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), false); err == nil {
		return Branch{Location: BranchRemote, Remote: "origin"}
	}
	return Branch{Location: BranchMissing}
}

// CreateWorktree runs the `git worktree add` variant matching where the
// branch lives: check out a local branch, track a remote one, or create
// a new branch from base. Parent directories are created first so
// branch names with slashes land in nested directories.
func (a *Adapter) CreateWorktree(ctx context.Context, repoRoot string, branch string, worktreePath string, location Branch, base string) error {
	if _, err := os.Stat(worktreePath); err == nil {
		return fmt.Errorf("worktree path already exists: %s", worktreePath)
	}
	if parent := filepath.Dir(worktreePath); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}

	var args []string
	switch location.Location {
	case BranchLocal:
		args = []string{"worktree", "add", worktreePath, branch}
	case BranchRemote:
		args = []string{"worktree", "add", "--track", "-b", branch, worktreePath, location.Remote + "/" + branch}
	default:
		if base == "" {
			base = "HEAD"
		}
		args = []string{"worktree", "add", "-b", branch, worktreePath, base}
	}
	if _, err := a.exec.CombinedOutput(ctx, repoRoot, "git", args...); err != nil {
		return err
	}
	return nil
}

// RemoveWorktree removes a linked worktree.
func (a *Adapter) RemoveWorktree(ctx context.Context, worktreePath string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, worktreePath)
	if _, err := a.exec.CombinedOutput(ctx, worktreePath, "git", args...); err != nil {
		return err
	}
	return nil
}

// IsCleanStatus reports whether the working copy at dir has no
// uncommitted or staged changes.
func (a *Adapter) IsCleanStatus(ctx context.Context, dir string) (bool, error) {
	out, err := a.exec.Output(ctx, dir, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotInRepo, dir)
	}
	return strings.TrimSpace(out) == "", nil
}

// HasUnpushedCommits reports whether dir's branch has commits its
// upstream does not. A branch with no upstream counts as unpushed.
func (a *Adapter) HasUnpushedCommits(ctx context.Context, dir string) (bool, error) {
	branch, err := a.CurrentBranch(ctx, dir)
	if err != nil {
		return false, err
	}
	if _, err := a.exec.Output(ctx, dir, "git", "rev-parse", "--abbrev-ref", branch+"@{upstream}"); err != nil {
		return true, nil
	}
	out, err := a.exec.Output(ctx, dir, "git", "log", "@{upstream}..HEAD", "--oneline")
	if err != nil {
		return false, nil
	}
	return strings.TrimSpace(out) != "", nil
}

// ListWorktrees parses `git worktree list --porcelain`.
func (a *Adapter) ListWorktrees(ctx context.Context, repoRoot string) ([]WorktreeInfo, error) {
	out, err := a.exec.Output(ctx, repoRoot, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInRepo, repoRoot)
	}
	return parseWorktrees(out), nil
}

// LinkedWorktrees lists every worktree except the main one.
func (a *Adapter) LinkedWorktrees(ctx context.Context, repoRoot string) ([]WorktreeInfo, error) {
	worktrees, err := a.ListWorktrees(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	linked := make([]WorktreeInfo, 0, len(worktrees))
	for _, wt := range worktrees {
		if !wt.IsMain {
			linked = append(linked, wt)
		}
	}
	return linked, nil
}

func parseWorktrees(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current *WorktreeInfo

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "worktree "):
			worktrees = append(worktrees, WorktreeInfo{
				Path:   strings.TrimPrefix(line, "worktree "),
				IsMain: len(worktrees) == 0,
			})
			current = &worktrees[len(worktrees)-1]
		case strings.HasPrefix(line, "branch "):
			if current != nil {
				current.Branch = shortBranch(strings.TrimPrefix(line, "branch "))
			}
		case line == "detached":
			if current != nil && current.Branch == "" {
				current.Branch = "HEAD"
			}
		}
	}
	return worktrees
}

func shortBranch(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, "refs/heads/")
	return ref
}

// IsLinkedWorktree reports whether path is a linked worktree: its .git
// is a file whose content points at the shared store.
func IsLinkedWorktree(path string) bool {
	dotGit := filepath.Join(path, ".git")
	info, err := os.Stat(dotGit)
	if err != nil || info.IsDir() {
		return false
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(string(data)), "gitdir:")
}

// RemoveEmptyParentDirs walks upward from path removing empty
// directories, stopping at stopAt (exclusive) or at the first directory
// that still has entries.
func RemoveEmptyParentDirs(path string, stopAt string) error {
	current := filepath.Dir(path)
	for current != stopAt && strings.HasPrefix(current, stopAt) {
		entries, err := os.ReadDir(current)
		if err != nil || len(entries) > 0 {
			return nil
		}
		if err := os.Remove(current); err != nil {
			return fmt.Errorf("remove directory %s: %w", current, err)
		}
		current = filepath.Dir(current)
	}
	return nil
}
