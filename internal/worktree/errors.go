package worktree

import "fmt"

// ErrorKind classifies worktree failures for exit-code and message
// mapping.
type ErrorKind int

const (
	ErrNotInWorkspace ErrorKind = iota
	ErrNotInGitRepo
	ErrDetachedHead
	ErrConfigMissing
	ErrPathConflict
	ErrIsMainRepo
	ErrWorktreeNotFound
	ErrUncommittedChanges
	ErrUnpushedCommits
	ErrGit
	ErrIO
)

// Error is the single failure type both engine flows return. The
// message substrings ("uncommitted", "unpushed commits", "main repo",
// the workspace name) are part of the user contract.
type Error struct {
	Kind ErrorKind

	// Path qualifies path-scoped kinds.
	Path string
	// Workspace qualifies ErrConfigMissing.
	Workspace string
	// Branch qualifies ErrWorktreeNotFound.
	Branch string
	// Message qualifies ErrGit and ErrIO.
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotInWorkspace:
		return "current directory is not within a known workspace"
	case ErrNotInGitRepo:
		return fmt.Sprintf("not in a git repository: %s", e.Path)
	case ErrDetachedHead:
		return "cannot create a worktree from a detached HEAD"
	case ErrConfigMissing:
		return fmt.Sprintf("workspace '%s' has no worktree configuration; use --force to continue with defaults", e.Workspace)
	case ErrPathConflict:
		return fmt.Sprintf("path already exists: %s", e.Path)
	case ErrIsMainRepo:
		return fmt.Sprintf("%s is the main repo, not a worktree", e.Path)
	case ErrWorktreeNotFound:
		return fmt.Sprintf("worktree for branch '%s' not found", e.Branch)
	case ErrUncommittedChanges:
		return fmt.Sprintf("worktree has uncommitted changes: %s; use --force to remove anyway", e.Path)
	case ErrUnpushedCommits:
		return fmt.Sprintf("worktree has unpushed commits: %s; use --force to remove anyway", e.Path)
	case ErrGit:
		return fmt.Sprintf("git error: %s", e.Message)
	case ErrIO:
		return fmt.Sprintf("io error: %s", e.Message)
	}
	return "unknown worktree error"
}

func gitError(err error) *Error {
	return &Error{Kind: ErrGit, Message: err.Error()}
}
