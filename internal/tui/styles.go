package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	subtleBg  = "#0B0F14"
	borderCol = lipgloss.Color("#243141")

	gridMinorFg = lipgloss.Color("#1F2A37")
	gridMajorFg = lipgloss.Color("#3B4A5C")
	selectedFg  = lipgloss.Color("#FACC15")
	hoverFg     = lipgloss.Color("#FFA500")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	hoverStyle = lipgloss.NewStyle().Foreground(hoverFg)

	noticeStyles = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		"warn":    lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
)

// fade blends hex toward the canvas background; opacity 1 keeps the colour.
func fade(hex string, opacity float64) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	bg, _ := colorful.Hex(subtleBg)
	return lipgloss.Color(bg.BlendLab(c, clampFloat(opacity, 0, 1)).Clamped().Hex())
}

// canvasStyles returns the per-layer styles for the current point colours
// and opacity.
func canvasStyles(feasibleHex, infeasibleHex string, opacity float64) [layerCount]lipgloss.Style {
	var s [layerCount]lipgloss.Style
	s[layerGridMinor] = lipgloss.NewStyle().Foreground(gridMinorFg)
	s[layerGridMajor] = lipgloss.NewStyle().Foreground(gridMajorFg)
	s[layerInfeasible] = lipgloss.NewStyle().Foreground(fade(infeasibleHex, opacity))
	s[layerFeasible] = lipgloss.NewStyle().Foreground(fade(feasibleHex, opacity))
	s[layerSelected] = lipgloss.NewStyle().Foreground(selectedFg).Bold(true)
	s[layerRect] = lipgloss.NewStyle().Foreground(accentFg)
	return s
}
