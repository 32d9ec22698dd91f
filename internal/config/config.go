// Package config reads and writes the JSON catalog that drives the
// workspace, tmux and worktree commands.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rafaeltab/rafaeltab/internal/pathutil"
)

// Workspace is a durable catalog record. Created by `workspace add`,
// never mutated afterwards.
type Workspace struct {
	Root     string                   `json:"root"`
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Tags     []string                 `json:"tags,omitempty"`
	Worktree *WorkspaceWorktreeConfig `json:"worktree,omitempty"`
}

// ExpandedRoot returns the workspace root with tilde expansion and
// symlink resolution applied.
func (w Workspace) ExpandedRoot() string { return pathutil.Expand(w.Root) }

// Window is a named tmux window with an optional initial command.
type Window struct {
	Name    string `json:"name"`
	Command string `json:"command,omitempty"`
}

// Session is an entry of the tmux.sessions override table. Exactly one
// of Workspace or Path forms is populated: a workspace override
// replaces that workspace's default windows, a path entry adds a
// session rooted at an arbitrary directory.
type Session struct {
	Windows []Window `json:"windows"`

	// Workspace form
	WorkspaceID string `json:"workspace,omitempty"`
	// Optional display name for the workspace form.
	Name string `json:"name,omitempty"`

	// Path form
	Path string `json:"path,omitempty"`
}

// IsWorkspace reports whether this override targets a workspace.
func (s Session) IsWorkspace() bool { return s.WorkspaceID != "" }

// Tmux holds the session override table and the default window list.
type Tmux struct {
	Sessions       []Session `json:"sessions,omitempty"`
	DefaultWindows []Window  `json:"defaultWindows"`
}

// WorktreeConfig is the global worktree configuration.
type WorktreeConfig struct {
	SymlinkFiles []string `json:"symlinkFiles,omitempty"`
	OnCreate     []string `json:"onCreate,omitempty"`
}

// WorkspaceWorktreeConfig is the per-workspace variant. Same shape,
// merged after the global one.
type WorkspaceWorktreeConfig struct {
	SymlinkFiles []string `json:"symlinkFiles,omitempty"`
	OnCreate     []string `json:"onCreate,omitempty"`
}

// Document is the whole on-disk configuration file.
type Document struct {
	Workspaces []Workspace     `json:"workspaces"`
	Tmux       Tmux            `json:"tmux"`
	Worktree   *WorktreeConfig `json:"worktree,omitempty"`
}

// FindWorkspace returns the workspace with the given id, matched
// exactly and case-sensitively.
func (d *Document) FindWorkspace(id string) (Workspace, bool) {
	for _, ws := range d.Workspaces {
		if ws.ID == id {
			return ws, true
		}
	}
	return Workspace{}, false
}

// WorkspacesByTag returns every workspace carrying the tag, matched
// exactly and case-sensitively.
func (d *Document) WorkspacesByTag(tag string) []Workspace {
	var out []Workspace
	for _, ws := range d.Workspaces {
		for _, t := range ws.Tags {
			if t == tag {
				out = append(out, ws)
				break
			}
		}
	}
	return out
}

// WorkspacePaths returns (id, expanded root) pairs in catalog order.
func (d *Document) WorkspacePaths() []pathutil.WorkspacePath {
	out := make([]pathutil.WorkspacePath, 0, len(d.Workspaces))
	for _, ws := range d.Workspaces {
		out = append(out, pathutil.WorkspacePath{ID: ws.ID, Path: pathutil.Expand(ws.Root)})
	}
	return out
}

// Store loads and saves the catalog document at a fixed path.
type Store struct {
	path string
}

// defaultLocations is searched in order when no --config flag is given.
var defaultLocations = []string{"~/.rafaeltab.json"}

// NewStore resolves the config path. An explicit path wins; otherwise
// the first existing default location is used.
func NewStore(explicit string) (*Store, error) {
	if explicit != "" {
		return &Store{path: explicit}, nil
	}
	for _, loc := range defaultLocations {
		full := pathutil.Expand(loc)
		if _, err := os.Stat(full); err == nil {
			return &Store{path: full}, nil
		}
	}
	return nil, errors.New("no config file found; create ~/.rafaeltab.json or pass --config")
}

// NewStoreAt uses the given path without any lookup.
func NewStoreAt(path string) *Store { return &Store{path: path} }

// Path returns the resolved config file path.
func (s *Store) Path() string { return s.path }

// Read parses the whole document.
func (s *Store) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", s.path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", s.path, err)
	}
	return &doc, nil
}

// Write persists the document, pretty-printed with a trailing newline.
func (s *Store) Write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(s.path, data, 0o644)
}
