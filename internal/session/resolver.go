package session

import (
	"context"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

// Resolver merges the workspace catalog and the session-override table
// into an ordered description list and decorates each entry with its
// live session, if one is running.
type Resolver struct {
	mux *tmux.Adapter
}

func NewResolver(mux *tmux.Adapter) *Resolver {
	return &Resolver{mux: mux}
}

// Resolve produces descriptions in a deterministic order: one per
// workspace in catalog order, then one per path override in declaration
// order. A workspace override replaces that workspace's windows instead
// of adding a second description; overrides referencing unknown
// workspace ids are dropped silently.
func (r *Resolver) Resolve(ctx context.Context, doc *config.Document) ([]Description, error) {
	descriptions := BuildDescriptions(doc)

	live, err := r.mux.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, sess := range live {
		env, err := r.mux.ShowEnvironment(ctx, sess.ID)
		if err != nil {
			continue
		}
		id := tmux.FindSessionID(env)
		if id == "" {
			continue
		}
		for i := range descriptions {
			if descriptions[i].ID == id && descriptions[i].Live == nil {
				s := sess
				descriptions[i].Live = &s
				break
			}
		}
	}
	return descriptions, nil
}

// BuildDescriptions is the pure half of Resolve: catalog plus overrides,
// no live-session binding.
func BuildDescriptions(doc *config.Document) []Description {
	descriptions := make([]Description, 0, len(doc.Workspaces))
	for _, ws := range doc.Workspaces {
		descriptions = append(descriptions, Description{
			ID:        WorkspaceID(ws.ID),
			Name:      ws.Name,
			Kind:      KindWorkspace,
			Workspace: ws,
			Windows:   doc.Tmux.DefaultWindows,
		})
	}

	for _, override := range doc.Tmux.Sessions {
		if override.IsWorkspace() {
			for i := range descriptions {
				if descriptions[i].Kind == KindWorkspace && descriptions[i].Workspace.ID == override.WorkspaceID {
					descriptions[i].Windows = override.Windows
					break
				}
			}
			continue
		}
		descriptions = append(descriptions, Description{
			ID:      PathID(override.Name),
			Name:    override.Name,
			Kind:    KindPath,
			Path:    override.Path,
			Windows: override.Windows,
		})
	}
	return descriptions
}
