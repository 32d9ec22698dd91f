package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/display"
	"github.com/rafaeltab/rafaeltab/internal/pathutil"
)

func newWorkspaceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect and grow the workspace catalog",
	}
	cmd.AddCommand(
		newWorkspaceListCommand(a),
		newWorkspaceCurrentCommand(a),
		newWorkspaceFindCommand(a),
		newWorkspaceFindTagCommand(a),
		newWorkspaceAddCommand(a),
		newWorkspaceTmuxCommand(a),
	)
	return cmd
}

func newWorkspaceListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every workspace in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			return display.Workspaces(os.Stdout, doc.Workspaces, a.format())
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

func newWorkspaceCurrentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the workspace containing the current directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			cwd, err := a.cwd()
			if err != nil {
				return err
			}
			id := pathutil.MostSpecificWorkspace(cwd, doc.WorkspacePaths())
			if id == "" {
				return nil
			}
			ws, _ := doc.FindWorkspace(id)
			return display.Workspaces(os.Stdout, []config.Workspace{ws}, a.format())
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

func newWorkspaceFindCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <id>",
		Short: "Print the workspace with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			ws, ok := doc.FindWorkspace(args[0])
			if !ok {
				return fmt.Errorf("workspace not found: %s", args[0])
			}
			return display.Workspaces(os.Stdout, []config.Workspace{ws}, a.format())
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

func newWorkspaceFindTagCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-tag <tag>",
		Short: "Print every workspace carrying the tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			return display.Workspaces(os.Stdout, doc.WorkspacesByTag(args[0]), a.format())
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

func newWorkspaceAddCommand(a *app) *cobra.Command {
	var (
		name        string
		path        string
		tagsCSV     string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a workspace to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, doc, err := a.loadDoc()
			if err != nil {
				return err
			}
			if interactive || name == "" {
				if err := runAddForm(&name, &path, &tagsCSV); err != nil {
					return err
				}
			}
			if strings.TrimSpace(name) == "" {
				return errors.New("workspace name is required")
			}
			if path == "" {
				path, err = a.cwd()
				if err != nil {
					return err
				}
			}

			ws := config.Workspace{
				ID:   workspaceID(name),
				Name: name,
				Root: path,
				Tags: splitTags(tagsCSV),
			}
			if _, exists := doc.FindWorkspace(ws.ID); exists {
				return fmt.Errorf("workspace id already in use: %s", ws.ID)
			}
			doc.Workspaces = append(doc.Workspaces, ws)
			if err := store.Write(doc); err != nil {
				return err
			}
			fmt.Printf("Added workspace %s (%s) at %s\n", ws.Name, ws.ID, ws.Root)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&path, "path", "", "Workspace root (default current directory)")
	cmd.Flags().StringVar(&tagsCSV, "tags", "", "Comma-separated tags")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for the fields")
	return cmd
}

func newWorkspaceTmuxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tmux",
		Short: "Print every session description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTmuxList(cmd, a)
		},
	}
	addFormatFlags(cmd, a)
	return cmd
}

// workspaceID derives the catalog id from a name: lowercased, spaces
// become underscores, other punctuation kept as-is.
func workspaceID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func splitTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func runAddForm(name, path, tags *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Placeholder("My Project").Value(name),
		huh.NewInput().Title("Root").Placeholder("~/source/my-project").Value(path),
		huh.NewInput().Title("Tags").Placeholder("work, go").Value(tags),
	)).WithTheme(confirmTheme()).WithShowHelp(false)
	return form.Run()
}
