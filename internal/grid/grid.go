package grid

import (
	"math"

	"latentmap/internal/points"
)

const (
	// MaxLinesPerAxis caps vertical and horizontal lines independently.
	MaxLinesPerAxis = 400
	// AutoDivisions is the number of steps across the larger side of the
	// bounds when no explicit step is given.
	AutoDivisions = 10
	// MajorEvery marks every fifth step line as major.
	MajorEvery = 5

	epsilon = 1e-6
)

// Line is one grid line in world space.
type Line struct {
	From     [2]float64
	To       [2]float64
	Major    bool
	Vertical bool
}

// Step returns the explicit step when it is positive and finite, otherwise
// the automatic step for bounds.
func Step(bounds points.BBox, explicit float64) float64 {
	if explicit > 0 && !math.IsInf(explicit, 0) {
		return explicit
	}
	return math.Max(bounds.Width(), bounds.Height()) / AutoDivisions
}

// Build derives grid lines covering bounds at the effective step. A too
// small step yields a capped grid rather than an error.
func Build(bounds points.BBox, explicit float64) []Line {
	step := Step(bounds, explicit)
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	x0, x1 := snap(bounds.MinX, bounds.MaxX, step)
	y0, y1 := snap(bounds.MinY, bounds.MaxY, step)
	if !finite(x0, x1, y0, y1) {
		// step so small that coord/step overflows: anchor on the raw bounds
		x0, x1, y0, y1 = bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY
		if !finite(x0, x1, y0, y1) {
			return nil
		}
	}

	var lines []Line
	for _, x := range positions(x0, x1, step) {
		lines = append(lines, Line{From: [2]float64{x, y0}, To: [2]float64{x, y1}, Major: isMajor(x, step), Vertical: true})
	}
	for _, y := range positions(y0, y1, step) {
		lines = append(lines, Line{From: [2]float64{x0, y}, To: [2]float64{x1, y}, Major: isMajor(y, step)})
	}
	return lines
}

func snap(lo, hi, step float64) (float64, float64) {
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step
}

// positions returns start, start+step, ... up to end inclusive (with a
// tolerance for accumulated error), at most MaxLinesPerAxis distinct values.
func positions(start, end, step float64) []float64 {
	var out []float64
	limit := end + step*epsilon
	for i := 0; i < MaxLinesPerAxis; i++ {
		v := start + float64(i)*step
		if v > limit {
			break
		}
		// step below the float spacing at start adds nothing new
		if len(out) > 0 && v == out[len(out)-1] {
			break
		}
		out = append(out, v)
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func isMajor(coord, step float64) bool {
	r := math.Mod(math.Abs(coord/step), MajorEvery)
	return r < epsilon || MajorEvery-r < epsilon
}
