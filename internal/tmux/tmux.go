// Package tmux drives the terminal multiplexer. Every managed session
// carries its description id in the RAFAELTAB_SESSION_ID environment
// variable so later invocations can re-bind descriptions to live
// sessions.
package tmux

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rafaeltab/rafaeltab/internal/execx"
)

// SessionEnvKey is the environment variable each managed session
// carries. It is a wire contract: changing it orphans existing
// sessions.
const SessionEnvKey = "RAFAELTAB_SESSION_ID"

// Session is a live multiplexer session.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Window is a window to create inside a new session.
type Window struct {
	Name    string
	Command string
}

// NewSessionRequest carries everything needed to create a session.
type NewSessionRequest struct {
	// DescriptionID is embedded under SessionEnvKey.
	DescriptionID string
	Name          string
	Path          string
	Windows       []Window
}

// Adapter wraps the tmux binary.
type Adapter struct {
	exec execx.Executor
}

func NewAdapter(exec execx.Executor) *Adapter {
	return &Adapter{exec: exec}
}

// listFormat makes list-sessions emit one JSON object per line.
const listFormat = `{"id":"#{session_id}","name":"#{session_name}","path":"#{session_path}"}`

// ListSessions returns every live session. A missing or stopped tmux
// server means no sessions, not an error.
func (a *Adapter) ListSessions(ctx context.Context) ([]Session, error) {
	out, err := a.exec.Output(ctx, "", "tmux", "list-sessions", "-F", listFormat)
	if err != nil {
		return nil, nil
	}
	var sessions []Session
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var s Session
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// FindSession returns the live session with the given name, if any.
func (a *Adapter) FindSession(ctx context.Context, name string) (Session, bool, error) {
	sessions, err := a.ListSessions(ctx)
	if err != nil {
		return Session{}, false, err
	}
	for _, s := range sessions {
		if s.Name == name {
			return s, true, nil
		}
	}
	return Session{}, false, nil
}

// NewSession creates a detached session rooted at the request path,
// with the first window opened directly and the rest added afterwards.
func (a *Adapter) NewSession(ctx context.Context, req NewSessionRequest) (Session, error) {
	first := Window{Name: "zsh"}
	if len(req.Windows) > 0 {
		first = req.Windows[0]
	}

	args := []string{
		"new-session", "-d", "-P", "-F", "#{session_id}",
		"-c", req.Path,
		"-e", SessionEnvKey + "=" + req.DescriptionID,
		"-n", first.Name,
		"-s", req.Name,
	}
	if cmd := commandWithShell(first.Command); cmd != "" {
		args = append(args, cmd)
	}

	out, err := a.exec.Output(ctx, "", "tmux", args...)
	if err != nil {
		return Session{}, err
	}
	session := Session{ID: strings.TrimSpace(out), Name: req.Name, Path: req.Path}

	for _, win := range req.Windows[min(1, len(req.Windows)):] {
		winArgs := []string{"new-window", "-d", "-c", req.Path, "-n", win.Name, "-t", session.ID}
		if cmd := commandWithShell(win.Command); cmd != "" {
			winArgs = append(winArgs, cmd)
		}
		if err := a.exec.Run(ctx, "", "tmux", winArgs...); err != nil {
			return session, err
		}
	}
	return session, nil
}

// KillSession terminates a session by its mux-assigned id.
func (a *Adapter) KillSession(ctx context.Context, sessionID string) error {
	return a.exec.Run(ctx, "", "tmux", "kill-session", "-t", sessionID)
}

// SwitchClient moves the attached client to the target session.
func (a *Adapter) SwitchClient(ctx context.Context, sessionID string) error {
	return a.exec.Run(ctx, "", "tmux", "switch-client", "-t", sessionID)
}

// ShowEnvironment returns the raw environment dump of a session.
func (a *Adapter) ShowEnvironment(ctx context.Context, sessionID string) (string, error) {
	return a.exec.Output(ctx, "", "tmux", "show-environment", "-t", sessionID)
}

// CurrentSessionName reports the session the invoking process runs in,
// or "" outside tmux.
func (a *Adapter) CurrentSessionName(ctx context.Context) string {
	if strings.TrimSpace(os.Getenv("TMUX")) == "" {
		return ""
	}
	out, err := a.exec.Output(ctx, "", "tmux", "display-message", "-p", "#{session_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// FindSessionID extracts the description id from a show-environment
// dump: the value after "RAFAELTAB_SESSION_ID=" up to the next newline,
// trimmed. Returns "" when the marker is absent.
func FindSessionID(environment string) string {
	const target = SessionEnvKey + "="
	idx := strings.Index(environment, target)
	if idx < 0 {
		return ""
	}
	rest := environment[idx+len(target):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// commandWithShell keeps the pane interactive after the initial command
// exits.
func commandWithShell(cmd string) string {
	if strings.TrimSpace(cmd) == "" {
		return ""
	}
	return cmd + "; exec $SHELL"
}
