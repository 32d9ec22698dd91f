package tmux

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rafaeltab/rafaeltab/internal/execx"
)

func TestNewSession_FirstWindowInCreateCall(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux new-session", "$5\n", nil)

	mux := NewAdapter(mock)
	sess, err := mux.NewSession(context.Background(), NewSessionRequest{
		DescriptionID: "abc-123",
		Name:          "Alpha",
		Path:          "/tmp/alpha",
		Windows: []Window{
			{Name: "nvim", Command: "nvim ."},
			{Name: "shell"},
			{Name: "server", Command: "make run"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "$5" {
		t.Fatalf("expected session id $5, got %q", sess.ID)
	}

	calls := mock.CallStrings()
	if len(calls) != 3 {
		t.Fatalf("expected 3 tmux calls, got %v", calls)
	}
	want := "tmux new-session -d -P -F #{session_id} -c /tmp/alpha -e RAFAELTAB_SESSION_ID=abc-123 -n nvim -s Alpha nvim .; exec $SHELL"
	if calls[0] != want {
		t.Fatalf("unexpected create call:\n got %q\nwant %q", calls[0], want)
	}
	if calls[1] != "tmux new-window -d -c /tmp/alpha -n shell -t $5" {
		t.Fatalf("unexpected second window call %q", calls[1])
	}
	if !strings.Contains(calls[2], "-n server") || !strings.Contains(calls[2], "make run; exec $SHELL") {
		t.Fatalf("unexpected third window call %q", calls[2])
	}
}

func TestNewSession_NoWindowsUsesFallbackName(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux new-session", "$1\n", nil)

	mux := NewAdapter(mock)
	if _, err := mux.NewSession(context.Background(), NewSessionRequest{Name: "Bare", Path: "/tmp"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := mock.CallStrings()[0]
	if !strings.Contains(call, "-n zsh") {
		t.Fatalf("expected fallback window name, got %q", call)
	}
	if strings.Contains(call, "exec $SHELL") {
		t.Fatalf("no command means no shell suffix, got %q", call)
	}
}

func TestListSessions_ParsesJSONLines(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux list-sessions",
		`{"id":"$0","name":"Alpha","path":"/tmp/alpha"}`+"\n"+
			"garbage line\n"+
			`{"id":"$1","name":"Beta","path":"/tmp/beta"}`+"\n", nil)

	sessions, err := NewAdapter(mock).ListSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %v", sessions)
	}
	if sessions[1].Name != "Beta" || sessions[1].Path != "/tmp/beta" {
		t.Fatalf("unexpected session %+v", sessions[1])
	}
}

func TestListSessions_StoppedServerMeansEmpty(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux list-sessions", "", errors.New("no server running"))

	sessions, err := NewAdapter(mock).ListSessions(context.Background())
	if err != nil {
		t.Fatalf("stopped server must not be an error, got %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %v", sessions)
	}
}

func TestFindSessionID(t *testing.T) {
	env := "TERM=xterm\nRAFAELTAB_SESSION_ID=  some-uuid \nSHELL=/bin/zsh\n"
	if got := FindSessionID(env); got != "some-uuid" {
		t.Fatalf("expected trimmed id, got %q", got)
	}
	if got := FindSessionID("TERM=xterm\n"); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
	// Marker at end of dump without trailing newline.
	if got := FindSessionID("RAFAELTAB_SESSION_ID=tail-id"); got != "tail-id" {
		t.Fatalf("expected tail-id, got %q", got)
	}
}

func TestKillAndSwitchTargetById(t *testing.T) {
	mock := execx.NewMock()
	mux := NewAdapter(mock)
	ctx := context.Background()
	if err := mux.KillSession(ctx, "$7"); err != nil {
		t.Fatal(err)
	}
	if err := mux.SwitchClient(ctx, "$7"); err != nil {
		t.Fatal(err)
	}
	calls := mock.CallStrings()
	if calls[0] != "tmux kill-session -t $7" || calls[1] != "tmux switch-client -t $7" {
		t.Fatalf("unexpected calls %v", calls)
	}
}
