package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/session"
)

// Format selects an output encoding.
type Format int

const (
	FormatPretty Format = iota
	FormatJSON
	FormatJSONPretty
)

// FromFlags maps the --json/--json-pretty flag pair to a Format.
func FromFlags(jsonFlag, jsonPretty bool) Format {
	switch {
	case jsonPretty:
		return FormatJSONPretty
	case jsonFlag:
		return FormatJSON
	default:
		return FormatPretty
	}
}

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	aliveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type workspaceJSON struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Root string   `json:"root"`
	Tags []string `json:"tags,omitempty"`
}

// Workspaces writes the given workspaces in the chosen format. Roots
// are printed expanded, the way the rest of the tool consumes them.
func Workspaces(w io.Writer, workspaces []config.Workspace, format Format) error {
	if format == FormatPretty {
		for _, ws := range workspaces {
			fmt.Fprintf(w, "%s %s\n", nameStyle.Render(ws.Name), dimStyle.Render("("+ws.ID+")"))
			root := ws.ExpandedRoot()
			fmt.Fprintf(w, "  %s\n", termenv.Hyperlink("file://"+root, root))
			if len(ws.Tags) > 0 {
				fmt.Fprintf(w, "  %s\n", dimStyle.Render(strings.Join(ws.Tags, ", ")))
			}
		}
		return nil
	}
	out := make([]workspaceJSON, 0, len(workspaces))
	for _, ws := range workspaces {
		out = append(out, workspaceJSON{ID: ws.ID, Name: ws.Name, Root: ws.ExpandedRoot(), Tags: ws.Tags})
	}
	return writeJSON(w, out, format)
}

type descriptionJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Root    string `json:"root"`
	Running bool   `json:"running"`
}

// Descriptions writes resolved session descriptions. Pretty output
// marks live sessions with a green dot.
func Descriptions(w io.Writer, descs []session.Description, format Format) error {
	if format == FormatPretty {
		for _, d := range descs {
			marker := dimStyle.Render("○")
			if d.Live != nil {
				marker = aliveStyle.Render("●")
			}
			fmt.Fprintf(w, "%s %s %s\n", marker, nameStyle.Render(d.Name), dimStyle.Render(d.Root()))
		}
		return nil
	}
	out := make([]descriptionJSON, 0, len(descs))
	for _, d := range descs {
		out = append(out, descriptionJSON{ID: d.ID, Name: d.Name, Root: d.Root(), Running: d.Live != nil})
	}
	return writeJSON(w, out, format)
}

func writeJSON(w io.Writer, v any, format Format) error {
	enc := json.NewEncoder(w)
	if format == FormatJSONPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
