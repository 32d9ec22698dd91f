package main

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func confirmTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

// runConfirm shows a yes/no form and blocks until answered. A declined
// or escaped form answers no.
func runConfirm(title string, description string) (bool, error) {
	var result bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&result)

	form := huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(confirmTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return false, nil
		}
		return false, err
	}
	return result, nil
}
