package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"latentmap/internal/grid"
	"latentmap/internal/source"
	"latentmap/internal/viewport"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// pastedName labels data that came from the paste box.
const pastedName = "pasted"

var tabularExts = map[string]bool{".csv": true, ".tsv": true, ".txt": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if tabularExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
}

// loadedMsg carries the outcome of one load transaction.
type loadedMsg struct {
	res source.Result
	err error
}

func loadCmd(l *source.Loader, location string) tea.Cmd {
	return func() tea.Msg {
		res, err := l.LoadFrom(context.Background(), location)
		return loadedMsg{res: res, err: err}
	}
}

// startLoad triggers a load unless one is already running.
func (m *Model) startLoad(location string) tea.Cmd {
	if m.loading {
		m.status = "load already in progress"
		return nil
	}
	m.loading = true
	m.status = "loading " + location + " …"
	return loadCmd(m.loader, location)
}

// applyLoad replaces the dataset and refits the camera from that same
// dataset. On error the previous dataset stays in place.
func (m *Model) applyLoad(msg loadedMsg) tea.Cmd {
	if errors.Is(msg.err, source.ErrLoadInProgress) {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.status = "load error: " + msg.err.Error()
		return m.startNotice(msg.err.Error(), "error", noticeDuration)
	}
	m.data = msg.res.Data
	m.location = msg.res.Location
	m.name = msg.res.Name
	m.hoverRec = nil
	m.fit()
	m.rebuildGrid()
	if m.showTable {
		m.refreshSelectionTable()
	}
	f, i := m.data.Counts()
	m.status = fmt.Sprintf("loaded: %s  points=%d feasible=%d infeasible=%d", m.name, len(m.data), f, i)
	log.Printf("tui: %s", m.status)
	return nil
}

// fit frames the current dataset; before the first window size arrives it
// is deferred.
func (m *Model) fit() {
	lay := m.layout()
	if m.width == 0 || m.height == 0 {
		m.needFit = true
		return
	}
	m.view = viewport.Fit(m.data, m.cfg.View.Margin, lay.mapW*2, lay.mapH*4)
	m.needFit = false
}

func (m *Model) rebuildGrid() {
	m.gridLines = m.gridLines[:0]
	if !m.showGrid || m.view.Bounds == nil {
		return
	}
	m.gridLines = grid.Build(*m.view.Bounds, m.gridStep)
}

// loadPasted parses pasted text through the loader so it respects the
// loading flag.
func (m *Model) loadPasted(text string) tea.Cmd {
	if m.loading {
		m.status = "load already in progress"
		return nil
	}
	res, err := m.loader.LoadText(pastedName, text)
	return m.applyLoad(loadedMsg{res: res, err: err})
}
