package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"latentmap/internal/config"
	"latentmap/internal/selection"
)

const (
	zoomStep    = 0.25
	panDivision = 10
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		if m.needFit {
			m.fit()
			m.rebuildGrid()
		}
		return m, nil
	case loadedMsg:
		return m, m.applyLoad(msg)
	case exportedMsg:
		return m, m.applyExport(msg)
	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// an active list filter owns the keyboard
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		return m.handlePasteKey(msg)
	}
	if m.stepMode {
		return m.handleStepKey(msg)
	}
	if m.showTable && !key.Matches(msg, keys.Table, keys.Cancel, keys.Quit, keys.Clear, keys.Export, keys.Copy) {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	lay := m.layout()
	panX := float64(lay.mapW*2) / panDivision
	panY := float64(lay.mapH*4) / panDivision

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Cancel):
		m.showTable = false
		if m.sel.State() == selection.Dragging {
			m.sel.Cancel()
			m.status = "selection cancelled"
		}
	case key.Matches(msg, keys.Up):
		m.view = m.view.Pan(0, -panY)
	case key.Matches(msg, keys.Down):
		m.view = m.view.Pan(0, panY)
	case key.Matches(msg, keys.Left):
		m.view = m.view.Pan(-panX, 0)
	case key.Matches(msg, keys.Right):
		m.view = m.view.Pan(panX, 0)
	case key.Matches(msg, keys.ZoomIn):
		m.view = m.view.ZoomBy(zoomStep)
		m.status = fmt.Sprintf("zoom: %.2f", m.view.Zoom)
	case key.Matches(msg, keys.ZoomOut):
		m.view = m.view.ZoomBy(-zoomStep)
		m.status = fmt.Sprintf("zoom: %.2f", m.view.Zoom)
	case key.Matches(msg, keys.Fit):
		m.fit()
		m.rebuildGrid()
		m.status = "fit to data"
	case key.Matches(msg, keys.Grid):
		m.showGrid = !m.showGrid
		m.rebuildGrid()
		m.status = fmt.Sprintf("grid: %v", m.showGrid)
	case key.Matches(msg, keys.GridStep):
		m.stepMode = true
		if m.gridStep > 0 {
			m.stepInput.SetValue(strconv.FormatFloat(m.gridStep, 'g', -1, 64))
		} else {
			m.stepInput.SetValue("")
		}
		return m, m.stepInput.Focus()
	case key.Matches(msg, keys.Smaller, keys.Larger):
		d := 1
		if key.Matches(msg, keys.Smaller) {
			d = -1
		}
		m.pointSize = clampInt(m.pointSize+d, config.MinPointSize, config.MaxPointSize)
		m.status = fmt.Sprintf("point size: %d", m.pointSize)
	case key.Matches(msg, keys.Fainter, keys.Bolder):
		d := 0.1
		if key.Matches(msg, keys.Fainter) {
			d = -0.1
		}
		m.opacity = clampFloat(math.Round((m.opacity+d)*10)/10, config.MinOpacity, config.MaxOpacity)
		m.status = fmt.Sprintf("opacity: %.1f", m.opacity)
	case key.Matches(msg, keys.Reload):
		if m.location == pastedName {
			return m, m.startNotice("Pasted data cannot be reloaded", "warn", noticeDuration)
		}
		return m, m.startLoad(m.location)
	case key.Matches(msg, keys.Export):
		return m, m.exportSelection()
	case key.Matches(msg, keys.Copy):
		return m, m.copySelection()
	case key.Matches(msg, keys.Clear):
		m.sel.Clear()
		if m.showTable {
			m.refreshSelectionTable()
		}
		m.status = "selection cleared"
	case key.Matches(msg, keys.Table):
		m.showTable = !m.showTable
		if m.showTable {
			m.refreshSelectionTable()
		}
	case key.Matches(msg, keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, lay.contentH-2)
		}
	case key.Matches(msg, keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				return m, m.startLoad(it.path)
			}
		}
	case key.Matches(msg, keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case key.Matches(msg, keys.Help):
		m.helpVisible = !m.helpVisible
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handlePasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, m.loadPasted(text)
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) handleStepKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stepMode = false
		m.stepInput.Blur()
		return m, nil
	case tea.KeyEnter:
		step, err := parseStep(m.stepInput.Value())
		if err != nil {
			return m, m.startNotice(err.Error(), "warn", noticeDuration)
		}
		m.stepMode = false
		m.stepInput.Blur()
		m.gridStep = step
		m.rebuildGrid()
		if step == 0 {
			m.status = "grid step: auto"
		} else {
			m.status = fmt.Sprintf("grid step: %g", step)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.stepInput, cmd = m.stepInput.Update(msg)
	return m, cmd
}

// parseStep reads a grid step; blank means automatic.
func parseStep(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("grid step %q must be a positive number", s)
	}
	return v, nil
}

// modifierHeld reports whether the configured selection modifier is down.
func (m Model) modifierHeld(msg tea.MouseMsg) bool {
	switch m.cfg.View.SelectionModifier {
	case config.ModifierAlt:
		return msg.Alt
	case config.ModifierShift:
		return msg.Shift
	default:
		return msg.Ctrl
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	proj := m.projection(lay.mapW, lay.mapH)
	// clamp so drags that leave the canvas keep their last edge
	cx := clampInt(msg.X, lay.mapX, lay.mapX+lay.mapW-1)
	cy := clampInt(msg.Y, lay.mapY, lay.mapY+lay.mapH-1)
	mx, my := lay.toMicro(cx, cy)
	inside := lay.inMap(msg.X, msg.Y) && !m.showTable && !m.pasteMode && !m.stepMode

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.view = m.view.ZoomAt(zoomStep, proj.Width, proj.Height, mx, my)
		case tea.MouseButtonWheelDown:
			m.view = m.view.ZoomAt(-zoomStep, proj.Width, proj.Height, mx, my)
		case tea.MouseButtonLeft:
			if m.modifierHeld(msg) {
				m.sel.Begin(mx, my)
				return
			}
			m.panning = true
			m.panX, m.panY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.sel.State() == selection.Dragging {
			if !m.modifierHeld(msg) {
				m.sel.Cancel()
				m.status = "selection cancelled"
				return
			}
			m.sel.Move(mx, my)
			return
		}
		if m.panning {
			dx, dy := msg.X-m.panX, msg.Y-m.panY
			m.view = m.view.Pan(float64(dx*2), float64(dy*4))
			m.panX, m.panY = msg.X, msg.Y
			return
		}
		if !inside {
			m.hoverRec = nil
			return
		}
		m.hoverRec = m.nearestRecord(mx, my, proj)
	case tea.MouseActionRelease:
		m.panning = false
		if m.sel.State() != selection.Dragging {
			return
		}
		n := m.sel.End(mx, my, proj, m.data)
		m.status = fmt.Sprintf("selected %d new points (%d total)", n, m.sel.Len())
		if m.showTable {
			m.refreshSelectionTable()
		}
	}
}
