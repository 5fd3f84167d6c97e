package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("42")
	colorMuted   = lipgloss.Color("241")
	colorDanger  = lipgloss.Color("160")
	colorInfo    = lipgloss.Color("33")
	colorToastBg = lipgloss.Color("238")

	titleStyle      = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	titleAccent     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	inputStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorMuted)
	inputDupStyle   = inputStyle.BorderForeground(colorDanger)
	searchingBadge  = lipgloss.NewStyle().Foreground(colorInfo).Padding(0, 1)
	newTaskBadge    = lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
	duplicateBadge  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true).Padding(0, 1)
	errorText       = lipgloss.NewStyle().Foreground(colorDanger)
	buttonStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	buttonDisabled  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	pendingCount    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	completedStyle  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedText       = lipgloss.NewStyle().Foreground(colorMuted)
	toastSuccess    = lipgloss.NewStyle().Background(colorToastBg).Foreground(lipgloss.Color("255")).Padding(0, 2)
	toastError      = lipgloss.NewStyle().Background(colorDanger).Foreground(lipgloss.Color("255")).Padding(0, 2)
	confirmStyle    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	spinnerStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	listHeaderStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorMuted).MarginTop(1)
)
