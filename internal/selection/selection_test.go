package selection

import (
	"errors"
	"reflect"
	"testing"

	"latentmap/internal/points"
	"latentmap/internal/viewport"
)

// identity maps screen space straight onto world space.
type identity struct{}

func (identity) Unproject(sx, sy float64) (float64, float64) { return sx, sy }

var sample = points.Dataset{
	{ID: "a", X: 1, Y: 1, Feasible: true},
	{ID: "b", X: 2, Y: 2},
	{ID: "c", X: 8, Y: 8, Attr1: "far"},
	{ID: "d", X: 3, Y: 9},
}

func ids(d points.Dataset) []string {
	out := make([]string, len(d))
	for i, r := range d {
		out[i] = r.ID
	}
	return out
}

func drag(m *Manager, x0, y0, x1, y1 float64) int {
	m.Begin(x0, y0)
	m.Move((x0+x1)/2, (y0+y1)/2)
	return m.End(x1, y1, identity{}, sample)
}

func TestGestureStateMachine(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if m.State() != Idle {
		t.Fatalf("initial state = %v, want idle", m.State())
	}
	if _, ok := m.Rect(); ok {
		t.Fatal("Rect() while idle: want ok=false")
	}
	m.Move(5, 5)
	if m.State() != Idle {
		t.Fatal("Move() while idle changed state")
	}

	m.Begin(4, 0)
	m.Move(0, 3)
	r, ok := m.Rect()
	if !ok || r != (Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 3}) {
		t.Fatalf("Rect() = %+v, %v", r, ok)
	}
	if _, err := m.ExportCSV(); !errors.Is(err, ErrGestureActive) {
		t.Fatalf("ExportCSV() mid-drag error = %v, want ErrGestureActive", err)
	}
	if n := m.End(0, 3, identity{}, sample); n != 2 {
		t.Fatalf("End() added %d, want 2", n)
	}
	if m.State() != Idle {
		t.Fatalf("state after End = %v, want idle", m.State())
	}
	if n := m.End(10, 10, identity{}, sample); n != 0 {
		t.Fatalf("End() while idle added %d, want 0", n)
	}
}

func TestCancelKeepsSelection(t *testing.T) {
	t.Parallel()

	m := NewManager()
	drag(m, 0, 0, 1.5, 1.5)
	m.Begin(0, 0)
	m.Move(10, 10)
	m.Cancel()
	if m.State() != Idle {
		t.Fatalf("state after Cancel = %v", m.State())
	}
	if got := ids(m.Records()); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("selection after Cancel = %v, want [a]", got)
	}
}

func TestUnionSemantics(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if n := drag(m, 0, 0, 2.5, 2.5); n != 2 {
		t.Fatalf("first drag added %d, want 2", n)
	}
	if n := drag(m, 2.5, 2.5, 0, 0); n != 0 {
		t.Fatalf("same rectangle again added %d, want 0", n)
	}
	if got := ids(m.Records()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("after repeat = %v, want [a b]", got)
	}
	if n := drag(m, 7, 7, 9, 9); n != 1 {
		t.Fatalf("disjoint drag added %d, want 1", n)
	}
	if got := ids(m.Records()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("accumulated = %v, want [a b c]", got)
	}
	if !m.Contains("c") || m.Contains("d") {
		t.Fatal("Contains() mismatch")
	}
}

func TestClearAndExport(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Clear()
	if _, err := m.ExportCSV(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("ExportCSV() empty error = %v, want ErrEmptySelection", err)
	}

	drag(m, 0, 0, 10, 10)
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", m.Len())
	}
	if _, err := m.ExportCSV(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("ExportCSV() after Clear error = %v, want ErrEmptySelection", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager()
	drag(m, 0, 0, 10, 10)
	out, err := m.ExportCSV()
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	got, err := points.Parse(string(out))
	if err != nil {
		t.Fatalf("Parse(export) error = %v", err)
	}
	if !reflect.DeepEqual(got, m.Records()) {
		t.Fatalf("round trip = %+v, want %+v", got, m.Records())
	}
}

func TestEndUsesViewportInverse(t *testing.T) {
	t.Parallel()

	// 10 px per unit (zoom log2(10)), centred on (5, 5) in a 100x100 surface:
	// screen (0,0) is world (0,10), screen (100,100) is world (10,0).
	v := viewport.Viewport{TargetX: 5, TargetY: 5}.ZoomBy(3.321928094887362)
	proj := viewport.Projection{View: v, Width: 100, Height: 100}

	m := NewManager()
	// top-left quadrant of the screen: world x 0..5, y 5..10
	m.Begin(0, 0)
	m.End(50, 50, proj, sample)
	if got := ids(m.Records()); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("selected = %v, want [d]", got)
	}
}

func TestExportFileName(t *testing.T) {
	t.Parallel()

	if got := ExportFileName("latent_points"); got != "latent_points_selection.csv" {
		t.Fatalf("ExportFileName() = %q", got)
	}
	if got := ExportFileName(""); got != "dataset_selection.csv" {
		t.Fatalf("ExportFileName(\"\") = %q", got)
	}
}

func TestRecordsNumericOrder(t *testing.T) {
	t.Parallel()

	data := points.Dataset{
		{ID: "10", X: 1, Y: 1},
		{ID: "b", X: 1, Y: 1},
		{ID: "2", X: 1, Y: 1},
		{ID: "a", X: 1, Y: 1},
		{ID: "1.5", X: 1, Y: 1},
	}
	m := NewManager()
	m.Add(NewRect(0, 0, 2, 2), data)
	want := []string{"1.5", "2", "10", "a", "b"}
	if got := ids(m.Records()); !reflect.DeepEqual(got, want) {
		t.Fatalf("Records() ids = %v, want %v", got, want)
	}
}
