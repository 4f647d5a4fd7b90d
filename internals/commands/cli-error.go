package commands

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// CliError is an error that might get displayed to the user
type CliError struct {
	Text        string
	Code        string
	Suggestions []string
	Help        string
}

func (e *CliError) Error() string {
	return e.Text
}

// RichError renders the error with its help text and suggestions
func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Text, e.Help)
	if len(e.Suggestions) != 0 {
		suggestionText := "Suggestion:\n"
		if len(e.Suggestions) > 1 {
			suggestionText = "Suggestions:\n"
		}
		suggestionText = Emoji("📎 ") + suggestionText
		for _, s := range e.Suggestions {
			suggestionText += " ⦁ " + s + "\n"
		}
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Render(suggestionText))
	}
	return rendered
}

// helper is implemented by all errors in merrors
type helper interface {
	Help() string
}

// RenderError renders any error for the terminal. Help texts of
// wrapped errors are shown below the message
func RenderError(err error) string {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		return asCliErr.RichError()
	}
	var withHelp helper
	if errors.As(err, &withHelp) {
		return ErrorBox(err.Error(), withHelp.Help())
	}
	return ErrorBox(err.Error(), "")
}
