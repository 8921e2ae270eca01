package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Box         lipgloss.Style
	Title       lipgloss.Style
	Player      lipgloss.Style
	Region      lipgloss.Style
	NPC         lipgloss.Style
	Mode        lipgloss.Style
	Pending     lipgloss.Style
	CommandLine lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()),
		Title: lipgloss.NewStyle().
			Bold(true),
		Player: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		Region: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6a8f5a")),
		NPC: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7a05b")),
		Mode: lipgloss.NewStyle().
			Bold(true),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a8a8a")),
		CommandLine: lipgloss.NewStyle(),
	}
}
