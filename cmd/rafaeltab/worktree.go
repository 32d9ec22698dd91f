package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/rafaeltab/internal/worktree"
)

func newWorktreeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worktree",
		Short: "Create and tear down branch worktrees",
	}
	cmd.AddCommand(
		newWorktreeStartCommand(a),
		newWorktreeCompleteCommand(a),
	)
	return cmd
}

func (a *app) engine() *worktree.Engine {
	return worktree.NewEngine(a.exec, a.git(), a.mux(), os.Stdout, runConfirm)
}

func newWorktreeStartCommand(a *app) *cobra.Command {
	var force, yes bool
	cmd := &cobra.Command{
		Use:   "start <branch>",
		Short: "Create a worktree for a branch, with session and setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			cwd, err := a.cwd()
			if err != nil {
				return err
			}
			res, err := a.engine().Start(cmd.Context(), worktree.StartOptions{
				Doc:    doc,
				Cwd:    cwd,
				Branch: args[0],
				Force:  force,
				Yes:    yes,
			})
			if err != nil {
				return err
			}
			if res.Cancelled {
				fmt.Println("Cancelled.")
				return nil
			}
			if res.Partial {
				fmt.Printf("Setup command failed: %s\n", res.FailedCommand)
				fmt.Printf("The worktree and session %s were still created. Fix the issue and re-run the command, or tear down with: rafaeltab worktree complete %s\n", res.SessionName, args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Continue without worktree configuration")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newWorktreeCompleteCommand(a *app) *cobra.Command {
	var force, yes bool
	cmd := &cobra.Command{
		Use:   "complete [<branch>]",
		Short: "Tear down a worktree and its session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			cwd, err := a.cwd()
			if err != nil {
				return err
			}
			branch := ""
			if len(args) == 1 {
				branch = args[0]
			}
			res, err := a.engine().Complete(cmd.Context(), worktree.CompleteOptions{
				Doc:    doc,
				Cwd:    cwd,
				Branch: branch,
				Force:  force,
				Yes:    yes,
			})
			if err != nil {
				return err
			}
			if res.Cancelled {
				fmt.Println("Cancelled.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip the uncommitted and unpushed checks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
