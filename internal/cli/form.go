package cli

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tasker-app/tasker/internal/cli/formatter"
)

// taskerHuhTheme returns a huh theme matching the formatter palette.
func taskerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// userInput collects the fields of a new user as text, the way huh edits them.
type userInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	Hours     string
}

func (in *userInput) complete() bool {
	return strings.TrimSpace(in.Email) != "" && strings.TrimSpace(in.FirstName) != ""
}

// newUserForm prompts for every user field, prefilled with what flags gave.
func newUserForm(in *userInput) *huh.Form {
	if in.Role == "" {
		in.Role = "USER"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("ana@example.com").
				Value(&in.Email).
				Validate(validateEmail),
			huh.NewInput().
				Title("First name").
				Value(&in.FirstName).
				Validate(validateRequired("first name")),
			huh.NewInput().
				Title("Last name").
				Value(&in.LastName),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("User", "USER"),
					huh.NewOption("Admin", "ADMIN"),
				).
				Value(&in.Role),
			huh.NewInput().
				Title("Daily hours").
				Placeholder("8").
				Value(&in.Hours).
				Validate(validateHours),
		),
	).WithTheme(taskerHuhTheme()).WithShowHelp(false)
}

func validateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return errors.New("not a valid email address")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// validateHours accepts blank (the default applies) or a number in [0, 24].
func validateHours(s string) error {
	_, err := parseHours(s)
	return err
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("daily hours must be a number")
	}
	if h < 0 || h > 24 {
		return 0, errors.New("daily hours must be between 0 and 24")
	}
	return h, nil
}
