package demo

import "github.com/charmbracelet/lipgloss"

// Theme colors used across the demo views
const (
	colorAccent    = "86"  // cyan/green - titles, highlights
	colorHighlight = "205" // magenta - selected items, borders
	colorMuted     = "241" // gray - dimmed text, hints
	colorText      = "252" // light gray - normal text
)

// styles contains the shared style definitions for the demo views.
var styles = struct {
	Title    lipgloss.Style
	Box      lipgloss.Style
	Dimmed   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Status   lipgloss.Style
	Hint     lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorHighlight)).
		Padding(0, 1),
	Dimmed: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorText)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorAccent)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
}
