package tui

import (
	"os"

	"github.com/atotto/clipboard"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"latentmap/internal/config"
	"latentmap/internal/grid"
	"latentmap/internal/points"
	"latentmap/internal/selection"
	"latentmap/internal/source"
	"latentmap/internal/viewport"
)

type Model struct {
	width  int
	height int

	cfg config.Config

	showSidebar bool
	helpVisible bool

	status string

	// timed notice
	noticeMsg  string
	noticeKind string
	noticeSeq  int

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Data
	loader   *source.Loader
	location string
	name     string
	loading  bool
	data     points.Dataset

	// camera; needFit defers the fit until the canvas size is known
	view    viewport.Viewport
	needFit bool

	// grid
	showGrid  bool
	gridStep  float64
	gridLines []grid.Line

	// point controls
	pointSize int
	opacity   float64

	sel *selection.Manager

	// plain drag pans the camera
	panning    bool
	panX, panY int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// grid step entry
	stepMode  bool
	stepInput textinput.Model

	// selection table
	showTable bool
	tbl       table.Model

	// record under the cursor
	hoverRec *points.Record

	copyText func(string) error
}

// New builds the model from cfg. When cfg names a source location, the
// first load starts from Init.
func New(cfg config.Config) Model {
	m := Model{
		cfg:         cfg,
		helpVisible: true,
		status:      "latentmap ready",
		loader:      source.NewLoader(cfg.Source.Location, cfg.Timeout()),
		location:    cfg.Source.Location,
		name:        source.DatasetName(cfg.Source.Location),
		showGrid:    cfg.View.ShowGrid,
		gridStep:    cfg.View.GridStep,
		pointSize:   cfg.View.PointSize,
		opacity:     cfg.View.Opacity,
		sel:         selection.NewManager(),
		copyText:    clipboard.WriteAll,
	}
	m.loading = m.location != ""
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a delimited table with latentx1/latentx2 columns. Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// grid step input
	m.stepInput = textinput.New()
	m.stepInput.Prompt = "grid step: "
	m.stepInput.Placeholder = "auto"
	m.stepInput.CharLimit = 32
	m.stepInput.Width = 20
	// selection table setup (rows filled on demand)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return loadCmd(m.loader, m.location)
}
