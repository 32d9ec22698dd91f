// Package picker is a small fuzzy-filterable list prompt used when a
// command needs the user to choose one entry interactively.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

type model struct {
	title    string
	labels   []string
	input    textinput.Model
	filtered []int
	cursor   int
	choice   int
	done     bool
	aborted  bool
}

func newModel(title string, labels []string) model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()
	m := model{title: title, labels: labels, input: ti, choice: -1}
	m.filtered = allIndices(len(labels))
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor]
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.filtered = allIndices(len(m.labels))
	} else {
		matches := fuzzy.Find(query, m.labels)
		m.filtered = make([]int, 0, len(matches))
		for _, match := range matches {
			m.filtered = append(m.filtered, match.Index)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		b.WriteString("\n")
	}
	for i, idx := range m.filtered {
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle.Render(">"), selectedStyle.Render(m.labels[idx]))
		} else {
			fmt.Fprintf(&b, "  %s\n", m.labels[idx])
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Pick shows the list and returns the index of the chosen label. The
// bool is false when the user cancelled.
func Pick(title string, labels []string) (int, bool, error) {
	m := newModel(title, labels)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return -1, false, err
	}
	fm, ok := final.(model)
	if !ok || fm.aborted || fm.choice < 0 {
		return -1, false, nil
	}
	return fm.choice, true, nil
}
