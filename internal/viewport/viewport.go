package viewport

import (
	"math"

	"latentmap/internal/points"
)

const (
	// DefaultMargin widens the framed span by 10% on fit.
	DefaultMargin = 0.1

	minSpan  = 1e-9
	minScale = 1e-9

	// zoom limits for direct manipulation, in log2 units
	MinZoom = -64.0
	MaxZoom = 64.0
)

// Viewport is a camera over the point plane. Zoom is the log2 of the number
// of pixels per world unit. Bounds is set only by Fit.
type Viewport struct {
	TargetX float64
	TargetY float64
	Zoom    float64
	Bounds  *points.BBox
}

// Scale returns pixels per world unit.
func (v Viewport) Scale() float64 { return math.Exp2(v.Zoom) }

// Fit frames data in a widthPx x heightPx surface. The stored Bounds are the
// unexpanded box; margin only affects the zoom.
func Fit(data points.Dataset, margin float64, widthPx, heightPx int) Viewport {
	bb, ok := data.Bounds()
	span := math.Max(math.Max(bb.Width(), bb.Height()), minSpan) * (1 + margin)
	scale := float64(min(widthPx, heightPx)) / span
	v := Viewport{
		TargetX: (bb.MinX + bb.MaxX) / 2,
		TargetY: (bb.MinY + bb.MaxY) / 2,
		Zoom:    math.Log2(math.Max(scale, minScale)),
	}
	if ok {
		v.Bounds = &bb
	}
	return v
}

// Pan moves the camera by a screen-space delta: dragging content right by
// dx pixels moves the target left.
func (v Viewport) Pan(dxPx, dyPx float64) Viewport {
	s := v.Scale()
	v.TargetX -= dxPx / s
	v.TargetY += dyPx / s
	return v
}

// ZoomBy changes the zoom around the current target.
func (v Viewport) ZoomBy(delta float64) Viewport {
	v.Zoom = clampZoom(v.Zoom + delta)
	return v
}

// ZoomAt changes the zoom keeping the world point under (sx, sy) fixed.
func (v Viewport) ZoomAt(delta float64, w, h int, sx, sy float64) Viewport {
	before := Projection{View: v, Width: w, Height: h}
	wx, wy := before.Unproject(sx, sy)
	v.Zoom = clampZoom(v.Zoom + delta)
	after := Projection{View: v, Width: w, Height: h}
	ax, ay := after.Unproject(sx, sy)
	v.TargetX += wx - ax
	v.TargetY += wy - ay
	return v
}

func clampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// Projection maps between world space and a Width x Height pixel surface.
// Screen y grows downward, world y upward.
type Projection struct {
	View   Viewport
	Width  int
	Height int
}

// Project maps a world point to screen pixels.
func (p Projection) Project(x, y float64) (sx, sy float64) {
	s := p.View.Scale()
	sx = (x-p.View.TargetX)*s + float64(p.Width)/2
	sy = float64(p.Height)/2 - (y-p.View.TargetY)*s
	return sx, sy
}

// Unproject maps screen pixels back to world coordinates.
func (p Projection) Unproject(sx, sy float64) (x, y float64) {
	s := p.View.Scale()
	x = (sx-float64(p.Width)/2)/s + p.View.TargetX
	y = (float64(p.Height)/2-sy)/s + p.View.TargetY
	return x, y
}
