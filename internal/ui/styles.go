package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#C0392B")).
			Bold(true).
			Padding(0, 1)

	filterBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	activeFilterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("214")).
				Foreground(lipgloss.Color("214"))

	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C0392B")).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFF")).
				Background(lipgloss.Color("#C0392B")).
				Padding(0, 1).
				MarginBottom(1)

	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)
	helpStyle  = lipgloss.NewStyle().PaddingLeft(1)
)
