package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/multicol/internal/board"
)

// Catppuccin Mocha palette, https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorFocus = colorLavender
	colorError = colorRed
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	statusStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	removeStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	itemStyle   = lipgloss.NewStyle().Foreground(colorText)
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	containerStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1)
	hoverStyle     = containerStyle.BorderForeground(colorFocus)
	liftedStyle    = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(colorFocus)
	placeStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorSurface2).Foreground(colorOverlay0)
	trashStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface2).Foreground(colorText)
	trashOverStyle = trashStyle.BorderForeground(colorError)
	overlayStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorFocus)
)

// itemColor picks the accent of an item from the first character of its id.
func itemColor(id board.ID) (lipgloss.Color, bool) {
	if id == "" {
		return "", false
	}
	switch id[0] {
	case 'A':
		return colorBlue, true
	case 'B':
		return colorYellow, true
	case 'C':
		return colorTeal, true
	case 'D':
		return colorPink, true
	}
	return "", false
}
