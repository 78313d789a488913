package points

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Record is one point of the latent space.
type Record struct {
	ID       string
	X        float64
	Y        float64
	Attr1    string
	Attr2    string
	Feasible bool
}

// Dataset is the ordered result of one successful parse. It is replaced
// wholesale on reload and never mutated in place.
type Dataset []Record

// Bounds returns the axis-aligned box of all records; ok is false for an
// empty dataset.
func (d Dataset) Bounds() (bbox BBox, ok bool) {
	for i, r := range d {
		if i == 0 {
			bbox = BBox{MinX: r.X, MinY: r.Y, MaxX: r.X, MaxY: r.Y}
			continue
		}
		if r.X < bbox.MinX {
			bbox.MinX = r.X
		}
		if r.Y < bbox.MinY {
			bbox.MinY = r.Y
		}
		if r.X > bbox.MaxX {
			bbox.MaxX = r.X
		}
		if r.Y > bbox.MaxY {
			bbox.MaxY = r.Y
		}
	}
	return bbox, len(d) > 0
}

// Counts returns the number of feasible and infeasible records.
func (d Dataset) Counts() (feasible, infeasible int) {
	for _, r := range d {
		if r.Feasible {
			feasible++
		} else {
			infeasible++
		}
	}
	return feasible, infeasible
}
