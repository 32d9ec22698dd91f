package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/display"
	"github.com/rafaeltab/rafaeltab/internal/execx"
	"github.com/rafaeltab/rafaeltab/internal/git"
	"github.com/rafaeltab/rafaeltab/internal/pathutil"
	"github.com/rafaeltab/rafaeltab/internal/session"
	"github.com/rafaeltab/rafaeltab/internal/tmux"
)

// app holds the global flags and lazily constructed collaborators
// every subcommand shares.
type app struct {
	configPath string
	jsonFlag   bool
	jsonPretty bool

	exec execx.Executor
}

func newApp() *app {
	return &app{exec: execx.NewReal()}
}

func (a *app) loadDoc() (*config.Store, *config.Document, error) {
	store, err := config.NewStore(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	doc, err := store.Read()
	if err != nil {
		return nil, nil, err
	}
	return store, doc, nil
}

func (a *app) git() *git.Adapter  { return git.NewAdapter(a.exec) }
func (a *app) mux() *tmux.Adapter { return tmux.NewAdapter(a.exec) }

func (a *app) resolver() *session.Resolver {
	return session.NewResolver(a.mux())
}
func (a *app) utils() *session.Utils {
	return session.NewUtils(a.git(), a.mux())
}
func (a *app) format() display.Format {
	return display.FromFlags(a.jsonFlag, a.jsonPretty)
}

// cwd is canonicalized the same way catalog roots are, so the prefix
// match is unaffected by symlinked paths.
func (a *app) cwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return pathutil.Expand(wd), nil
}

func newRootCommand() *cobra.Command {
	a := newApp()
	root := &cobra.Command{
		Use:           "rafaeltab",
		Short:         "Workspace, tmux session and git worktree manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default ~/.rafaeltab.json)")

	root.AddCommand(
		newWorkspaceCommand(a),
		newTmuxCommand(a),
		newWorktreeCommand(a),
	)
	return root
}

// addFormatFlags wires the shared output-format flag pair.
func addFormatFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().BoolVar(&a.jsonFlag, "json", false, "Output compact JSON")
	cmd.Flags().BoolVar(&a.jsonPretty, "json-pretty", false, "Output indented JSON")
}
