package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rafaeltab/rafaeltab/internal/execx"
)

func TestParseWorktrees_FirstEntryIsMain(t *testing.T) {
	out := `worktree /home/dev/source/project
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /home/dev/source/feature
HEAD 2222222222222222222222222222222222222222
branch refs/heads/feature

worktree /home/dev/source/experiment
HEAD 3333333333333333333333333333333333333333
detached
`
	worktrees := parseWorktrees(out)
	if len(worktrees) != 3 {
		t.Fatalf("expected 3 worktrees, got %d", len(worktrees))
	}
	if !worktrees[0].IsMain || worktrees[0].Branch != "main" {
		t.Fatalf("unexpected main entry %+v", worktrees[0])
	}
	if worktrees[1].IsMain || worktrees[1].Branch != "feature" {
		t.Fatalf("unexpected linked entry %+v", worktrees[1])
	}
	if worktrees[2].Branch != "HEAD" {
		t.Fatalf("detached worktree should report HEAD, got %+v", worktrees[2])
	}
}

func TestCurrentBranch_DetachedHead(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("git rev-parse --abbrev-ref HEAD", "HEAD\n", nil)

	_, err := NewAdapter(mock).CurrentBranch(context.Background(), "/repo")
	if !errors.Is(err, ErrDetachedHead) {
		t.Fatalf("expected ErrDetachedHead, got %v", err)
	}
}

func TestRootWorktreePath_ParentOfCommonDir(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("git rev-parse --path-format=absolute --git-common-dir", "/home/dev/source/project/.git\n", nil)

	root, err := NewAdapter(mock).RootWorktreePath(context.Background(), "/home/dev/source/feature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/home/dev/source/project" {
		t.Fatalf("expected main repo path, got %q", root)
	}
}

func TestHasUnpushedCommits_NoUpstreamCountsAsUnpushed(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("git rev-parse --abbrev-ref HEAD", "feature\n", nil)
	mock.Respond("git rev-parse --abbrev-ref feature@{upstream}", "", errors.New("no upstream configured"))

	unpushed, err := NewAdapter(mock).HasUnpushedCommits(context.Background(), "/wt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !unpushed {
		t.Fatalf("missing upstream must count as unpushed")
	}
}

func TestHasUnpushedCommits_CleanLog(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("git rev-parse --abbrev-ref HEAD", "feature\n", nil)
	mock.Respond("git rev-parse --abbrev-ref feature@{upstream}", "origin/feature\n", nil)
	mock.Respond("git log @{upstream}..HEAD --oneline", "\n", nil)

	unpushed, err := NewAdapter(mock).HasUnpushedCommits(context.Background(), "/wt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unpushed {
		t.Fatalf("empty log means nothing unpushed")
	}
}

func TestIsCleanStatus(t *testing.T) {
	mock := execx.NewMock()
	mock.Respond("git status --porcelain", " M file.go\n", nil)
	clean, err := NewAdapter(mock).IsCleanStatus(context.Background(), "/wt")
	if err != nil {
		t.Fatal(err)
	}
	if clean {
		t.Fatalf("modified file must be reported dirty")
	}
}

func TestIsLinkedWorktree(t *testing.T) {
	dir := t.TempDir()
	if IsLinkedWorktree(dir) {
		t.Fatalf("no .git at all")
	}

	mainRepo := filepath.Join(dir, "main")
	if err := os.MkdirAll(filepath.Join(mainRepo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if IsLinkedWorktree(mainRepo) {
		t.Fatalf(".git directory means main checkout")
	}

	linked := filepath.Join(dir, "linked")
	if err := os.Mkdir(linked, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "gitdir: " + filepath.Join(mainRepo, ".git", "worktrees", "linked") + "\n"
	if err := os.WriteFile(filepath.Join(linked, ".git"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsLinkedWorktree(linked) {
		t.Fatalf("gitdir file means linked worktree")
	}
}

func TestRemoveEmptyParentDirs_StopsAtBoundaryAndNonEmpty(t *testing.T) {
	base := t.TempDir()
	// base/feat/auth/login was a worktree path; login itself is gone.
	wt := filepath.Join(base, "feat", "auth", "login")
	if err := os.MkdirAll(filepath.Dir(wt), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := RemoveEmptyParentDirs(wt, base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "feat")); !os.IsNotExist(err) {
		t.Fatalf("empty parents should be removed")
	}
	if _, err := os.Stat(base); err != nil {
		t.Fatalf("boundary directory must survive: %v", err)
	}
}

func TestRemoveEmptyParentDirs_KeepsNonEmptyParent(t *testing.T) {
	base := t.TempDir()
	wt := filepath.Join(base, "feat", "login")
	if err := os.MkdirAll(filepath.Dir(wt), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "feat", "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveEmptyParentDirs(wt, base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "feat", "keep.txt")); err != nil {
		t.Fatalf("non-empty parent must survive: %v", err)
	}
}

func TestCreateWorktree_VariantsByBranchLocation(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	repo := filepath.Join(base, "project")
	if err := os.Mkdir(repo, 0o755); err != nil {
		t.Fatal(err)
	}

	mock := execx.NewMock()
	adapter := NewAdapter(mock)

	local := filepath.Join(base, "local-branch")
	if err := adapter.CreateWorktree(ctx, repo, "local-branch", local, Branch{Location: BranchLocal}, "main"); err != nil {
		t.Fatal(err)
	}
	remote := filepath.Join(base, "remote-branch")
	if err := adapter.CreateWorktree(ctx, repo, "remote-branch", remote, Branch{Location: BranchRemote, Remote: "origin"}, "main"); err != nil {
		t.Fatal(err)
	}
	fresh := filepath.Join(base, "new-branch")
	if err := adapter.CreateWorktree(ctx, repo, "new-branch", fresh, Branch{Location: BranchMissing}, "main"); err != nil {
		t.Fatal(err)
	}

	calls := mock.CallStrings()
	if calls[0] != "git worktree add "+local+" local-branch" {
		t.Fatalf("unexpected local call %q", calls[0])
	}
	if calls[1] != "git worktree add --track -b remote-branch "+remote+" origin/remote-branch" {
		t.Fatalf("unexpected remote call %q", calls[1])
	}
	if calls[2] != "git worktree add -b new-branch "+fresh+" main" {
		t.Fatalf("unexpected new-branch call %q", calls[2])
	}
}
