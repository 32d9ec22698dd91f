// Package session builds the unified session descriptions the list,
// switch and start flows operate on, and keeps worktree sessions in
// step with the repository.
package session

import (
	"github.com/google/uuid"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/pathutil"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

// The three id namespaces are fixed wire constants. Existing live
// sessions were created with these exact UUIDs; changing them breaks
// re-binding across process runs.
var (
	namespaceWorkspace = uuid.MustParse("dd66ca72-805f-4efb-85cc-f235a925d593")
	namespacePath      = uuid.MustParse("3598273a-f7fe-4588-b5a4-fef0ed1ab31b")
	namespaceWorktree  = uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
)

// WorkspaceID derives the deterministic description id for a workspace.
func WorkspaceID(workspaceID string) string {
	return uuid.NewSHA1(namespaceWorkspace, []byte(workspaceID)).String()
}

// PathID derives the deterministic description id for a path override.
func PathID(name string) string {
	return uuid.NewSHA1(namespacePath, []byte(name)).String()
}

// WorktreeID derives the deterministic description id for a worktree
// session name ("{workspace.name}-{branch}").
func WorktreeID(sessionName string) string {
	return uuid.NewSHA1(namespaceWorktree, []byte(sessionName)).String()
}

// Kind distinguishes the two description sources.
type Kind int

const (
	// KindWorkspace is a description backed by a catalog workspace.
	KindWorkspace Kind = iota
	// KindPath is a description backed by a bare directory.
	KindPath
)

// Description is the unified, id-bearing record the system reasons
// about. Rebuilt fresh on every invocation.
type Description struct {
	ID      string
	Name    string
	Kind    Kind
	Windows []config.Window

	// Workspace is set for KindWorkspace.
	Workspace config.Workspace
	// Path is set for KindPath, unexpanded.
	Path string

	// Live is the running session bound via the environment marker,
	// nil when none is running.
	Live *tmux.Session
}

// Root returns the expanded directory the session starts in.
func (d Description) Root() string {
	if d.Kind == KindWorkspace {
		return pathutil.Expand(d.Workspace.Root)
	}
	return pathutil.Expand(d.Path)
}

// NewSessionRequest converts the description into a mux create request.
func (d Description) NewSessionRequest() tmux.NewSessionRequest {
	return tmux.NewSessionRequest{
		DescriptionID: d.ID,
		Name:          d.Name,
		Path:          d.Root(),
		Windows:       toTmuxWindows(d.Windows),
	}
}

func toTmuxWindows(windows []config.Window) []tmux.Window {
	out := make([]tmux.Window, 0, len(windows))
	for _, w := range windows {
		out = append(out, tmux.Window{Name: w.Name, Command: w.Command})
	}
	return out
}
