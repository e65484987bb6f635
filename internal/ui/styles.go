package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-configured lipgloss styles for the viewer.
type Styles struct {
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabModified lipgloss.Style

	Normal lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style

	Match       lipgloss.Style
	ActiveMatch lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Prompt    lipgloss.Style
}

func DefaultStyles() *Styles {
	border := lipgloss.Color("#45475A")
	return &Styles{
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			Padding(0, 1),
		TabModified: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF")).
			Padding(0, 1),

		Normal: lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),

		// Yellow for plain matches, orange for the active one, matching
		// the highlight colours on the rendered page.
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#F9E2AF")),
		ActiveMatch: lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#FAB387")).Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#313244")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}
