// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the rank progress view.
type Theme struct {
	// Accent highlights titles and the spinner.
	Accent lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and secondary text.
	Muted lipgloss.Color

	// Found marks a located product.
	Found lipgloss.Color

	// Warning marks a cancelling search.
	Warning lipgloss.Color

	// Error marks failures and cancelled results.
	Error lipgloss.Color

	// Border frames the progress panel.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#CB11AB"), // Magenta
		Foreground: lipgloss.Color("#E4E4E7"), // Light gray
		Muted:      lipgloss.Color("#71717A"), // Medium gray
		Found:      lipgloss.Color("#4ADE80"), // Green
		Warning:    lipgloss.Color("#FACC15"), // Yellow
		Error:      lipgloss.Color("#F87171"), // Red
		Border:     lipgloss.Color("#3F3F46"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title   lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Found   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Panel frames the progress text and final report.
	Panel lipgloss.Style

	// Spinner colours the activity indicator.
	Spinner lipgloss.Style

	StatusBar lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Found: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Found),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
