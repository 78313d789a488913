package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layoutInfo holds the screen regions derived from the window size. Update
// and View share it so mouse hit tests match what is drawn.
type layoutInfo struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layoutInfo {
	var lay layoutInfo
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	lay.contentW = max(10, m.width)
	if m.showSidebar {
		lay.sidebarW = sidebarWidth
		lay.mapX = sidebarWidth + 1
	}
	lay.mapY = headerHeight
	lay.mapW = max(10, lay.contentW-lay.sidebarW-1)
	lay.mapH = lay.contentH
	return lay
}

// inMap reports whether the cell (x, y) lies on the canvas.
func (l layoutInfo) inMap(x, y int) bool {
	return x >= l.mapX && x < l.mapX+l.mapW && y >= l.mapY && y < l.mapY+l.mapH
}

// toMicro converts a terminal cell to the micro pixel at its centre.
func (l layoutInfo) toMicro(x, y int) (float64, float64) {
	return float64((x-l.mapX)*2 + 1), float64((y-l.mapY)*4 + 2)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	title := " latentmap ─ latent space explorer "
	if m.name != "" {
		title += "─ " + m.name + " "
	}
	header := titleStyle.Render(title)
	header = lipgloss.NewStyle().Width(lay.contentW).Render(header)

	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showTable:
		maxW := min(lay.mapW, max(32, tableWidth()))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		var body string
		if m.sel.Len() == 0 {
			body = dimStyle.Render("no points selected")
		} else {
			body = m.tbl.View()
		}
		box := boxStyle.Width(maxW).Render(body)
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	case m.stepMode:
		box := boxStyle.Render(m.stepInput.View() + "\n" + dimStyle.Render("Enter to apply, empty for auto, Esc to cancel"))
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.loading && len(m.data) == 0:
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, dimStyle.Render("loading…"))
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderCanvas(lay.mapW, lay.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := m.renderFooter(lay.contentW)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

// renderFooter draws the status line and, below it, either the key help or
// the current notice.
func (m Model) renderFooter(width int) string {
	left := fmt.Sprintf(" %s  sel=%d  zoom=%.2f", m.status, m.sel.Len(), m.view.Zoom)
	if !m.showGrid {
		left += "  grid=off"
	} else if m.gridStep > 0 {
		left += fmt.Sprintf("  step=%g", m.gridStep)
	}
	right := ""
	if m.hoverRec != nil {
		r := m.hoverRec
		right = fmt.Sprintf("  id=%s x1=%.4g x2=%.4g %s/%s feasible=%v ", r.ID, r.X, r.Y, r.Attr1, r.Attr2, r.Feasible)
	}
	right = runewidth.Truncate(right, max(0, width/2), "…")
	left = runewidth.Truncate(left, max(0, width-runewidth.StringWidth(right)), "…")
	pad := max(0, width-runewidth.StringWidth(left)-runewidth.StringWidth(right))
	status := dimStyle.Render(left) + strings.Repeat(" ", pad) + hoverStyle.Render(right)

	var second string
	switch {
	case m.noticeMsg != "":
		style, ok := noticeStyles[m.noticeKind]
		if !ok {
			style = dimStyle
		}
		second = style.Render(" " + runewidth.Truncate(noticeText(m.noticeMsg, m.noticeKind), max(0, width-1), "…"))
	case m.helpVisible:
		second = m.renderHelp(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, second)
}

func (m Model) renderHelp(width int) string {
	parts := make([]string, 0, len(keys.helpKeys()))
	for _, b := range keys.helpKeys() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, m.cfg.View.SelectionModifier+"+drag select")
	return dimStyle.Render(runewidth.Truncate(" "+strings.Join(parts, "  "), max(0, width), "…"))
}
