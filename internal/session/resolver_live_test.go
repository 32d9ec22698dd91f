package session

import (
	"context"
	"testing"

	"github.com/rafaeltab/rafaeltab/internal/execx"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

func TestResolve_BindsLiveSessionByMarker(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux list-sessions",
		`{"id":"$3","name":"Alpha","path":"/tmp/alpha"}`+"\n"+
			`{"id":"$9","name":"scratch","path":"/tmp/x"}`+"\n", nil)
	mock.Respond("tmux show-environment -t $3",
		"TERM=xterm\nRAFAELTAB_SESSION_ID="+WorkspaceID("alpha")+"\n", nil)
	mock.Respond("tmux show-environment -t $9", "TERM=xterm\n", nil)

	resolver := NewResolver(tmux.NewAdapter(mock))
	descs, err := resolver.Resolve(context.Background(), catalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if descs[0].Live == nil {
		t.Fatalf("expected alpha to be bound to the live session")
	}
	if descs[0].Live.ID != "$3" {
		t.Fatalf("expected session $3, got %q", descs[0].Live.ID)
	}
	if descs[1].Live != nil {
		t.Fatalf("beta has no live session")
	}
}

func TestResolve_UnmarkedSessionsIgnored(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("tmux list-sessions",
		`{"id":"$1","name":"Alpha","path":"/tmp/alpha"}`+"\n", nil)
	mock.Respond("tmux show-environment -t $1", "TERM=xterm\n", nil)

	resolver := NewResolver(tmux.NewAdapter(mock))
	descs, err := resolver.Resolve(context.Background(), catalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same name is not enough; only the marker binds.
	if descs[0].Live != nil {
		t.Fatalf("session without marker must stay unbound")
	}
}
