package tui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"latentmap/internal/selection"
)

type exportedMsg struct {
	path string
	n    int
	err  error
}

// exportCmd writes the serialized selection to dir. The bytes are produced
// on the update goroutine so the selection is not read concurrently.
func exportCmd(dir, name string, body []byte, n int) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, selection.ExportFileName(name))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{path: path, err: err}
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return exportedMsg{path: path, err: err}
		}
		return exportedMsg{path: path, n: n}
	}
}

func (m *Model) exportSelection() tea.Cmd {
	body, err := m.sel.ExportCSV()
	if err != nil {
		return m.selectionError(err)
	}
	return exportCmd(m.cfg.Export.Dir, m.name, body, m.sel.Len())
}

func (m *Model) copySelection() tea.Cmd {
	body, err := m.sel.ExportCSV()
	if err != nil {
		return m.selectionError(err)
	}
	if err := m.copyText(string(body)); err != nil {
		log.Printf("tui: clipboard: %v", err)
		m.status = "copy failed: " + err.Error()
		return m.startNotice("clipboard unavailable", "error", noticeDuration)
	}
	m.status = fmt.Sprintf("copied %d points (%s)", m.sel.Len(), selection.ContentType)
	return m.startNotice("Selection copied", "success", noticeDuration)
}

func (m *Model) applyExport(msg exportedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("tui: export %s: %v", msg.path, msg.err)
		m.status = "export failed: " + msg.err.Error()
		return m.startNotice("Export failed", "error", noticeDuration)
	}
	log.Printf("tui: exported %d points to %s", msg.n, msg.path)
	m.status = fmt.Sprintf("exported %d points to %s", msg.n, msg.path)
	return m.startNotice("Exported "+filepath.Base(msg.path), "success", noticeDuration)
}

func (m *Model) selectionError(err error) tea.Cmd {
	switch {
	case errors.Is(err, selection.ErrEmptySelection):
		return m.startNotice("Nothing selected", "warn", noticeDuration)
	case errors.Is(err, selection.ErrGestureActive):
		return m.startNotice("Finish the selection first", "warn", noticeDuration)
	}
	m.status = "export failed: " + err.Error()
	return m.startNotice(err.Error(), "error", noticeDuration)
}
