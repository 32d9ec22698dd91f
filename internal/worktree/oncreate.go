package worktree

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rafaeltab/rafaeltab/internal/execx"
)

// runOnCreate executes the configured setup commands inside the new
// worktree, one at a time, echoing each command and its combined
// output with a two-space indent. The first failing command stops the
// loop; its name and output are returned so the caller can report a
// partial success.
func runOnCreate(ctx context.Context, exec execx.Executor, dir string, commands []string, out io.Writer) (failedCmd string, failure error) {
	for _, cmd := range commands {
		fmt.Fprintf(out, "  Running: %s\n", cmd)
		output, err := exec.CombinedOutput(ctx, dir, "sh", "-c", cmd)
		for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(out, "  %s\n", line)
		}
		if err != nil {
			return cmd, err
		}
	}
	return "", nil
}
