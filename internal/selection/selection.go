// Package selection keeps the set of records collected by box-selection
// gestures. A Manager is owned by a single event loop and is not safe for
// concurrent use.
package selection

import (
	"bytes"
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"latentmap/internal/points"
)

// ContentType is the MIME type of exported selections.
const ContentType = "text/csv"

var (
	// ErrEmptySelection is returned when exporting with nothing selected.
	ErrEmptySelection = errors.New("selection is empty")
	// ErrGestureActive is returned when exporting mid-drag.
	ErrGestureActive = errors.New("selection gesture in progress")
)

// State of the drag gesture.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Rect is an axis-aligned rectangle; Min <= Max on both axes once normalized.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a normalized rectangle from two opposite corners.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		MinX: math.Min(x0, x1),
		MinY: math.Min(y0, y1),
		MaxX: math.Max(x0, x1),
		MaxY: math.Max(y0, y1),
	}
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Unprojector maps screen coordinates back to world coordinates.
type Unprojector interface {
	Unproject(sx, sy float64) (x, y float64)
}

// WorldRect maps a screen rectangle to world space.
func WorldRect(screen Rect, inv Unprojector) Rect {
	x0, y0 := inv.Unproject(screen.MinX, screen.MinY)
	x1, y1 := inv.Unproject(screen.MaxX, screen.MaxY)
	return NewRect(x0, y0, x1, y1)
}

// Manager runs the Idle -> Dragging -> Idle gesture and owns the selection
// set keyed by record id.
type Manager struct {
	state          State
	startX, startY float64
	curX, curY     float64
	selected       map[string]points.Record
}

func NewManager() *Manager {
	return &Manager{selected: make(map[string]points.Record)}
}

func (m *Manager) State() State { return m.state }

// Begin starts a gesture at a screen position. Beginning while already
// dragging restarts the rectangle.
func (m *Manager) Begin(sx, sy float64) {
	m.state = Dragging
	m.startX, m.startY = sx, sy
	m.curX, m.curY = sx, sy
}

// Move updates the free corner of the in-progress rectangle.
func (m *Manager) Move(sx, sy float64) {
	if m.state != Dragging {
		return
	}
	m.curX, m.curY = sx, sy
}

// Rect returns the in-progress screen rectangle.
func (m *Manager) Rect() (Rect, bool) {
	if m.state != Dragging {
		return Rect{}, false
	}
	return NewRect(m.startX, m.startY, m.curX, m.curY), true
}

// Cancel drops the in-progress rectangle without touching the selection.
func (m *Manager) Cancel() {
	m.state = Idle
}

// End finalizes the gesture at (sx, sy): the screen rectangle is mapped to
// world space through inv and every record of data inside it is added to
// the selection. It returns the number of newly added records.
func (m *Manager) End(sx, sy float64, inv Unprojector, data points.Dataset) int {
	if m.state != Dragging {
		return 0
	}
	m.curX, m.curY = sx, sy
	screen, _ := m.Rect()
	m.state = Idle
	return m.Add(WorldRect(screen, inv), data)
}

// Add unions every record of data inside the world rectangle r.
func (m *Manager) Add(r Rect, data points.Dataset) int {
	added := 0
	for _, rec := range data {
		if !r.Contains(rec.X, rec.Y) {
			continue
		}
		if _, ok := m.selected[rec.ID]; !ok {
			added++
		}
		m.selected[rec.ID] = rec
	}
	return added
}

// Clear empties the selection.
func (m *Manager) Clear() {
	clear(m.selected)
}

func (m *Manager) Len() int { return len(m.selected) }

func (m *Manager) Contains(id string) bool {
	_, ok := m.selected[id]
	return ok
}

// Records returns the selected records ordered by id. Numeric ids sort by
// value and before non-numeric ones.
func (m *Manager) Records() points.Dataset {
	out := make(points.Dataset, 0, len(m.selected))
	for _, r := range m.selected {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b points.Record) int { return compareIDs(a.ID, b.ID) })
	return out
}

func compareIDs(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// ExportCSV serializes the selection as comma-delimited text.
func (m *Manager) ExportCSV() ([]byte, error) {
	if m.state == Dragging {
		return nil, ErrGestureActive
	}
	if len(m.selected) == 0 {
		return nil, ErrEmptySelection
	}
	var buf bytes.Buffer
	if err := m.Records().WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFileName names the export artifact for a dataset.
func ExportFileName(dataset string) string {
	if dataset == "" {
		dataset = "dataset"
	}
	return dataset + "_selection.csv"
}
