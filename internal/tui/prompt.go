package tui

import (
	"github.com/charmbracelet/huh"
)

// ConfirmFn is a function variable for the confirmation prompt.
// It defaults to Confirm but can be overridden in tests.
var ConfirmFn = Confirm

// Confirm shows a yes/no confirmation prompt and returns the choice.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
