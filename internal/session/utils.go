package session

import (
	"context"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/git"
	"github.com/rafaeltab/rafaeltab/internal/pathutil"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

// Utils covers the session chores shared by the tmux and worktree
// commands: window selection and worktree-session backfill.
type Utils struct {
	git *git.Adapter
	mux *tmux.Adapter
}

func NewUtils(gitAdapter *git.Adapter, mux *tmux.Adapter) *Utils {
	return &Utils{git: gitAdapter, mux: mux}
}

// WindowsFor returns the override windows for a workspace when the
// session table has an entry for it, otherwise the default windows.
// There is no merging.
func WindowsFor(doc *config.Document, workspaceID string) []config.Window {
	for _, override := range doc.Tmux.Sessions {
		if override.IsWorkspace() && override.WorkspaceID == workspaceID {
			return override.Windows
		}
	}
	return doc.Tmux.DefaultWindows
}

// WorktreeSessionName is the stable naming contract between session
// creation and `worktree complete`.
func WorktreeSessionName(workspaceName string, branch string) string {
	return workspaceName + "-" + branch
}

// CreateWorktreeSessions backfills one session per linked worktree of
// the workspace's repository. Runs after a switch has already
// succeeded, so every failure is swallowed: a workspace that is not a
// git repository simply has no worktree sessions.
func (u *Utils) CreateWorktreeSessions(ctx context.Context, doc *config.Document, workspace config.Workspace) {
	root := pathutil.Expand(workspace.Root)
	worktrees, err := u.git.LinkedWorktrees(ctx, root)
	if err != nil || len(worktrees) == 0 {
		return
	}

	windows := WindowsFor(doc, workspace.ID)
	for _, wt := range worktrees {
		name := WorktreeSessionName(workspace.Name, wt.Branch)
		if _, exists, err := u.mux.FindSession(ctx, name); err != nil || exists {
			continue
		}
		_, _ = u.mux.NewSession(ctx, tmux.NewSessionRequest{
			DescriptionID: WorktreeID(name),
			Name:          name,
			Path:          wt.Path,
			Windows:       toTmuxWindows(windows),
		})
	}
}
