package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the screening form.
type Styles struct {
	Title         lipgloss.Style
	InputBox      lipgloss.Style
	ResultBox     lipgloss.Style
	ErrorBanner   lipgloss.Style
	SuccessBanner lipgloss.Style
	Score         lipgloss.Style
	Help          lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		ResultBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		ErrorBanner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		SuccessBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
