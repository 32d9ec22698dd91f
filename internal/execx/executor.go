// Package execx abstracts subprocess execution so the git and tmux
// adapters can be exercised in tests without the real binaries.
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Executor runs external commands. Production code uses Real, tests
// inject a Mock with scripted responses.
type Executor interface {
	// Output runs a command and returns trimmed stdout.
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)

	// CombinedOutput runs a command and returns stdout and stderr merged.
	CombinedOutput(ctx context.Context, dir string, name string, args ...string) (string, error)

	// Run runs a command and discards its output.
	Run(ctx context.Context, dir string, name string, args ...string) error
}

type Real struct{}

func NewReal() *Real { return &Real{} }

func (e *Real) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapError(err, stderr.Bytes())
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func (e *Real) CombinedOutput(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), wrapError(err, out)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func (e *Real) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return wrapError(err, stderr.Bytes())
	}
	return nil
}
