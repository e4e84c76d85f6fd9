package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Every color the CLI prints comes from here.
var (
	// ColorCyan is used for identifiable nouns: paths, module and builder names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen marks newly created files.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow marks files that were appended to or overwritten.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed marks failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status values shown next to each entry of a generated tree.
const (
	StatusCreated     = "created"
	StatusOverwritten = "overwritten"
	StatusSkipped     = "skipped"
	StatusAppended    = "appended"
	StatusMissing     = "missing"
)

// StatusStyle returns the style for a file status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusOverwritten, StatusAppended:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusMissing:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatNext renders a dimmed follow-up hint such as "cd demo".
func FormatNext(msg string) string {
	return StyleDim.Render("  → ") + msg
}
