package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/rafaeltab/internal/display"
	"github.com/rafaeltab/rafaeltab/internal/picker"
	"github.com/rafaeltab/rafaeltab/internal/session"
)

func newTmuxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tmux",
		Short: "Manage tmux sessions derived from the catalog",
	}
	cmd.AddCommand(
		newTmuxListCommand(a),
		newTmuxStartCommand(a),
		newTmuxSwitchCommand(a),
	)
	return cmd
}

func newTmuxListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every session description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTmuxList(cmd, a)
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

func runTmuxList(cmd *cobra.Command, a *app) error {
	_, doc, err := a.loadDoc()
	if err != nil {
		return err
	}
	descs, err := a.resolver().Resolve(cmd.Context(), doc)
	if err != nil {
		return err
	}
	return display.Descriptions(os.Stdout, descs, a.format())
}

func newTmuxStartCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Create every configured session that is not yet running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			descs, err := a.resolver().Resolve(ctx, doc)
			if err != nil {
				return err
			}
			mux := a.mux()
			utils := a.utils()
			for _, d := range descs {
				if d.Live != nil {
					continue
				}
				if _, err := mux.NewSession(ctx, d.NewSessionRequest()); err != nil {
					return fmt.Errorf("creating session %s: %w", d.Name, err)
				}
				fmt.Printf("Started %s\n", d.Name)
			}
			for _, d := range descs {
				if d.Kind == session.KindWorkspace {
					utils.CreateWorktreeSessions(ctx, doc, d.Workspace)
				}
			}
			return nil
		},
	}
}

func newTmuxSwitchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch",
		Short: "Pick a session and switch the client to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			descs, err := a.resolver().Resolve(ctx, doc)
			if err != nil {
				return err
			}
			labels := make([]string, 0, len(descs))
			for _, d := range descs {
				label := d.Name
				if d.Live != nil {
					label += " (running)"
				}
				labels = append(labels, label)
			}
			idx, ok, err := picker.Pick("Switch to session", labels)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			chosen := descs[idx]

			mux := a.mux()
			if chosen.Live != nil && mux.CurrentSessionName(ctx) == chosen.Live.Name {
				return nil
			}
			live := chosen.Live
			if live == nil {
				created, err := mux.NewSession(ctx, chosen.NewSessionRequest())
				if err != nil {
					return fmt.Errorf("creating session %s: %w", chosen.Name, err)
				}
				live = &created
			}
			if err := mux.SwitchClient(ctx, live.ID); err != nil {
				return err
			}
			if chosen.Kind == session.KindWorkspace {
				a.utils().CreateWorktreeSessions(ctx, doc, chosen.Workspace)
			}
			return nil
		},
	}
}
