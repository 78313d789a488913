package tui

import (
	"math"
	"strings"

	"latentmap/internal/points"
	"latentmap/internal/viewport"
)

// hoverRadius is how far, in micro pixels, the cursor may be from a point
// for it to count as hovered.
const hoverRadius = 6

// projection maps world space onto the w x h cell canvas in micro pixels.
func (m Model) projection(w, h int) viewport.Projection {
	return viewport.Projection{View: m.view, Width: w * 2, Height: h * 4}
}

// micro rounds a projected position to a micro pixel. Positions far outside
// the canvas report false so they are never rasterized.
func micro(sx, sy float64, w, h int) (int, int, bool) {
	const slack = 64
	if math.IsNaN(sx) || math.IsNaN(sy) {
		return 0, 0, false
	}
	if sx < -slack || sy < -slack || sx > float64(w*2+slack) || sy > float64(h*4+slack) {
		return 0, 0, false
	}
	return int(math.Floor(sx)), int(math.Floor(sy)), true
}

// clampMicro bounds a coordinate for line endpoints that may be far away.
func clampMicro(v, lo, hi float64) int {
	if math.IsNaN(v) {
		return int(lo)
	}
	return int(math.Floor(clampFloat(v, lo, hi)))
}

func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	proj := m.projection(w, h)
	wMic, hMic := float64(w*2), float64(h*4)

	if m.showGrid {
		for _, ln := range m.gridLines {
			x0, y0 := proj.Project(ln.From[0], ln.From[1])
			x1, y1 := proj.Project(ln.To[0], ln.To[1])
			ly := layerGridMinor
			if ln.Major {
				ly = layerGridMajor
			}
			br.drawLineMicro(
				clampMicro(x0, -1, wMic), clampMicro(y0, -1, hMic),
				clampMicro(x1, -1, wMic), clampMicro(y1, -1, hMic), ly)
		}
	}

	r := m.pointSize - 1
	for _, rec := range m.data {
		sx, sy := proj.Project(rec.X, rec.Y)
		mx, my, ok := micro(sx, sy, w, h)
		if !ok {
			continue
		}
		ly := layerInfeasible
		switch {
		case m.sel.Contains(rec.ID):
			ly = layerSelected
		case rec.Feasible:
			ly = layerFeasible
		}
		br.disc(mx, my, r, ly)
	}

	if rect, ok := m.sel.Rect(); ok {
		x0 := clampMicro(rect.MinX, -1, wMic)
		y0 := clampMicro(rect.MinY, -1, hMic)
		x1 := clampMicro(rect.MaxX, -1, wMic)
		y1 := clampMicro(rect.MaxY, -1, hMic)
		br.drawLineMicro(x0, y0, x1, y0, layerRect)
		br.drawLineMicro(x0, y1, x1, y1, layerRect)
		br.drawLineMicro(x0, y0, x0, y1, layerRect)
		br.drawLineMicro(x1, y0, x1, y1, layerRect)
	}

	if m.hoverRec != nil {
		sx, sy := proj.Project(m.hoverRec.X, m.hoverRec.Y)
		if mx, my, ok := micro(sx, sy, w, h); ok {
			br.mark(mx/2, my/4)
		}
	}

	styles := canvasStyles(m.cfg.View.FeasibleColor, m.cfg.View.InfeasibleColor, m.opacity)
	return strings.Join(br.toLines(styles), "\n")
}

// nearestRecord returns the record drawn closest to the micro position
// (mx, my), or nil when none is within hoverRadius.
func (m Model) nearestRecord(mx, my float64, proj viewport.Projection) *points.Record {
	best := float64(hoverRadius * hoverRadius)
	idx := -1
	for i, rec := range m.data {
		sx, sy := proj.Project(rec.X, rec.Y)
		dx, dy := sx-mx, sy-my
		if d := dx*dx + dy*dy; d <= best {
			best = d
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	rec := m.data[idx]
	return &rec
}
