package worktree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/execx"
	"github.com/rafaeltab/rafaeltab/internal/git"
	"github.com/rafaeltab/rafaeltab/internal/pathutil"
	"github.com/rafaeltab/rafaeltab/internal/session"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

// ConfirmFunc asks the user before a mutating step. A nil ConfirmFunc
// answers yes.
type ConfirmFunc func(title, description string) (bool, error)

// Engine drives the two worktree lifecycle flows, start and complete.
type Engine struct {
	exec    execx.Executor
	git     *git.Adapter
	mux     *tmux.Adapter
	out     io.Writer
	confirm ConfirmFunc
}

func NewEngine(exec execx.Executor, gitAdapter *git.Adapter, mux *tmux.Adapter, out io.Writer, confirm ConfirmFunc) *Engine {
	return &Engine{exec: exec, git: gitAdapter, mux: mux, out: out, confirm: confirm}
}

// StartOptions configure one start run.
type StartOptions struct {
	Doc    *config.Document
	Cwd    string
	Branch string
	// Force continues without any worktree configuration.
	Force bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// StartResult reports a run that did not fail outright. Partial means
// the worktree and session exist but a setup command failed, so the
// client was not switched.
type StartResult struct {
	WorktreePath  string
	SessionName   string
	Cancelled     bool
	Partial       bool
	FailedCommand string
}

// Start creates a worktree for a branch next to the main repo, wires
// it up per the merged worktree configuration, and drops the user into
// a fresh tmux session for it.
func (e *Engine) Start(ctx context.Context, opts StartOptions) (StartResult, error) {
	var res StartResult

	wsID := pathutil.MostSpecificWorkspace(opts.Cwd, opts.Doc.WorkspacePaths())
	if wsID == "" {
		return res, &Error{Kind: ErrNotInWorkspace}
	}
	ws, _ := opts.Doc.FindWorkspace(wsID)

	repoRoot, err := e.git.RootWorktreePath(ctx, opts.Cwd)
	if err != nil {
		if errors.Is(err, git.ErrNotInRepo) {
			return res, &Error{Kind: ErrNotInGitRepo, Path: opts.Cwd}
		}
		return res, gitError(err)
	}

	if opts.Doc.Worktree == nil && ws.Worktree == nil && !opts.Force {
		return res, &Error{Kind: ErrConfigMissing, Workspace: ws.Name}
	}
	merged := Merge(opts.Doc.Worktree, ws.Worktree)

	base, err := e.git.CurrentBranch(ctx, repoRoot)
	if err != nil {
		if errors.Is(err, git.ErrDetachedHead) {
			return res, &Error{Kind: ErrDetachedHead}
		}
		return res, gitError(err)
	}

	location := e.git.LookupBranch(repoRoot, opts.Branch)
	wtPath := Path(repoRoot, opts.Branch)
	if _, err := os.Lstat(wtPath); err == nil {
		return res, &Error{Kind: ErrPathConflict, Path: wtPath}
	}
	res.WorktreePath = wtPath

	if !opts.Yes {
		ok, err := e.ask("Create worktree?", startSummary(opts.Branch, wtPath, location, base, merged))
		if err != nil {
			return res, &Error{Kind: ErrIO, Message: err.Error()}
		}
		if !ok {
			res.Cancelled = true
			return res, nil
		}
	}

	if err := e.git.CreateWorktree(ctx, repoRoot, opts.Branch, wtPath, location, base); err != nil {
		return res, gitError(err)
	}
	fmt.Fprintf(e.out, "Created worktree at %s\n", wtPath)

	if len(merged.SymlinkFiles) > 0 {
		links, err := CreateSymlinks(repoRoot, wtPath, merged.SymlinkFiles)
		for _, rel := range links.Created {
			fmt.Fprintf(e.out, "  Linked %s\n", rel)
		}
		for _, rel := range links.Skipped {
			fmt.Fprintf(e.out, "  Skipped %s (already exists)\n", rel)
		}
		if err != nil {
			fmt.Fprintf(e.out, "Warning: creating symlinks: %v\n", err)
		}
	}

	failedCmd, cmdErr := runOnCreate(ctx, e.exec, wtPath, merged.OnCreate, e.out)
	if cmdErr != nil {
		fmt.Fprintf(e.out, "Warning: command failed: %s: %v\n", failedCmd, cmdErr)
	}

	name := session.WorktreeSessionName(ws.Name, opts.Branch)
	res.SessionName = name
	sess, err := e.mux.NewSession(ctx, tmux.NewSessionRequest{
		DescriptionID: session.WorktreeID(name),
		Name:          name,
		Path:          wtPath,
		Windows:       toTmuxWindows(session.WindowsFor(opts.Doc, ws.ID)),
	})
	if err != nil {
		return res, &Error{Kind: ErrIO, Message: fmt.Sprintf("creating session %s: %v", name, err)}
	}

	if failedCmd != "" {
		res.Partial = true
		res.FailedCommand = failedCmd
		return res, nil
	}

	if err := e.mux.SwitchClient(ctx, sess.ID); err != nil {
		fmt.Fprintf(e.out, "Warning: could not switch client: %v\n", err)
	}
	return res, nil
}

// CompleteOptions configure one complete run.
type CompleteOptions struct {
	Doc *config.Document
	Cwd string
	// Branch selects a worktree by branch name. Empty means the
	// worktree the current directory is in.
	Branch string
	// Force skips the uncommitted and unpushed safety checks.
	Force bool
	// Yes skips the confirmation prompt.
	Yes bool
}

// CompleteResult reports a finished or cancelled complete run.
type CompleteResult struct {
	Branch       string
	WorktreePath string
	Cancelled    bool
}

// Complete tears a worktree down: safety checks, session cleanup,
// `git worktree remove`, and pruning of directories the branch name
// nested the worktree under.
func (e *Engine) Complete(ctx context.Context, opts CompleteOptions) (CompleteResult, error) {
	var res CompleteResult

	mainRepo, err := e.git.RootWorktreePath(ctx, opts.Cwd)
	if err != nil {
		if errors.Is(err, git.ErrNotInRepo) {
			return res, &Error{Kind: ErrNotInGitRepo, Path: opts.Cwd}
		}
		return res, gitError(err)
	}

	branch := opts.Branch
	if branch == "" {
		branch, err = e.git.CurrentBranch(ctx, opts.Cwd)
		if err != nil {
			return res, gitError(err)
		}
	}

	worktrees, err := e.git.ListWorktrees(ctx, mainRepo)
	if err != nil {
		return res, gitError(err)
	}
	var target string
	for _, wt := range worktrees {
		if !wt.IsMain && wt.Branch == branch {
			target = wt.Path
			break
		}
	}
	if target == "" {
		if opts.Branch != "" {
			return res, &Error{Kind: ErrWorktreeNotFound, Branch: branch}
		}
		return res, &Error{Kind: ErrIsMainRepo, Path: opts.Cwd}
	}
	res.Branch = branch
	res.WorktreePath = target

	if !opts.Force {
		clean, err := e.git.IsCleanStatus(ctx, target)
		if err != nil {
			return res, gitError(err)
		}
		if !clean {
			return res, &Error{Kind: ErrUncommittedChanges, Path: target}
		}
		unpushed, err := e.git.HasUnpushedCommits(ctx, target)
		if err != nil {
			return res, gitError(err)
		}
		if unpushed {
			return res, &Error{Kind: ErrUnpushedCommits, Path: target}
		}
	}

	if !opts.Yes {
		ok, err := e.ask("Remove worktree?", completeSummary(branch, target))
		if err != nil {
			return res, &Error{Kind: ErrIO, Message: err.Error()}
		}
		if !ok {
			res.Cancelled = true
			return res, nil
		}
	}

	var ws config.Workspace
	var hasWorkspace bool
	if id := pathutil.MostSpecificWorkspace(mainRepo, opts.Doc.WorkspacePaths()); id != "" {
		ws, hasWorkspace = opts.Doc.FindWorkspace(id)
	}

	// Move the client home before the worktree session dies under it.
	if hasWorkspace {
		if main, ok, err := e.mux.FindSession(ctx, ws.Name); err == nil && ok {
			if err := e.mux.SwitchClient(ctx, main.ID); err != nil {
				fmt.Fprintf(e.out, "Warning: could not switch client: %v\n", err)
			}
		}
	}

	sessionName := "worktree-" + branch
	if hasWorkspace {
		sessionName = session.WorktreeSessionName(ws.Name, branch)
	}
	if sess, ok, err := e.mux.FindSession(ctx, sessionName); err == nil && ok {
		if err := e.mux.KillSession(ctx, sess.ID); err != nil {
			fmt.Fprintf(e.out, "Warning: could not kill session %s: %v\n", sessionName, err)
		}
	}

	// git refuses to remove the worktree the process sits in.
	if opts.Cwd == target || strings.HasPrefix(opts.Cwd, target+string(filepath.Separator)) {
		if err := os.Chdir(mainRepo); err != nil {
			fmt.Fprintf(e.out, "Warning: could not change directory: %v\n", err)
		}
	}

	if err := e.git.RemoveWorktree(ctx, target, opts.Force); err != nil {
		return res, gitError(err)
	}
	fmt.Fprintf(e.out, "Removed worktree at %s\n", target)

	if err := git.RemoveEmptyParentDirs(target, filepath.Dir(mainRepo)); err != nil {
		fmt.Fprintf(e.out, "Warning: cleaning parent directories: %v\n", err)
	}
	return res, nil
}

func (e *Engine) ask(title, description string) (bool, error) {
	if e.confirm == nil {
		return true, nil
	}
	return e.confirm(title, description)
}

func startSummary(branch, path string, location git.Branch, base string, merged Merged) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Branch: %s\n", branch)
	fmt.Fprintf(&b, "Path:   %s\n", path)
	switch location.Location {
	case git.BranchLocal:
		b.WriteString("Status: Existing branch (local)\n")
	case git.BranchRemote:
		fmt.Fprintf(&b, "Status: Existing branch (remote %s/%s)\n", location.Remote, branch)
	default:
		fmt.Fprintf(&b, "Status: New branch (will be created from %s)\n", base)
	}
	if n := len(merged.SymlinkFiles); n > 0 {
		fmt.Fprintf(&b, "Symlink patterns: %d\n", n)
	}
	if n := len(merged.OnCreate); n > 0 {
		fmt.Fprintf(&b, "Setup commands:   %d\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func completeSummary(branch, path string) string {
	return fmt.Sprintf("Branch: %s\nPath:   %s", branch, path)
}

func toTmuxWindows(windows []config.Window) []tmux.Window {
	out := make([]tmux.Window, 0, len(windows))
	for _, w := range windows {
		out = append(out, tmux.Window{Name: w.Name, Command: w.Command})
	}
	return out
}
