package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMostSpecificWorkspace_PrefersLongestPrefix(t *testing.T) {
	workspaces := []WorkspacePath{
		{ID: "home", Path: "/home/dev"},
		{ID: "source", Path: "/home/dev/source"},
		{ID: "other", Path: "/home/dev/other"},
	}
	got := MostSpecificWorkspace("/home/dev/source/project/sub", workspaces)
	if got != "source" {
		t.Fatalf("expected source, got %q", got)
	}
}

func TestMostSpecificWorkspace_OuterWorkspaceStillMatches(t *testing.T) {
	workspaces := []WorkspacePath{
		{ID: "home", Path: "/home/dev"},
		{ID: "source", Path: "/home/dev/source"},
	}
	got := MostSpecificWorkspace("/home/dev/downloads", workspaces)
	if got != "home" {
		t.Fatalf("expected home, got %q", got)
	}
}

func TestMostSpecificWorkspace_NoMatch(t *testing.T) {
	workspaces := []WorkspacePath{
		{ID: "home", Path: "/home/dev"},
	}
	if got := MostSpecificWorkspace("/tmp/elsewhere", workspaces); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestMostSpecificWorkspace_TieKeepsEarlierEntry(t *testing.T) {
	workspaces := []WorkspacePath{
		{ID: "first", Path: "/home/dev/source"},
		{ID: "second", Path: "/home/dev/source"},
	}
	if got := MostSpecificWorkspace("/home/dev/source/x", workspaces); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
}

func TestExpand_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	// The suffix does not exist so only tilde expansion applies.
	got := Expand("~/definitely-missing-dir-for-test")
	want := filepath.Join(home, "definitely-missing-dir-for-test")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpand_CanonicalizesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skip("symlinks not supported")
	}
	if got, want := Expand(link), Expand(real); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
