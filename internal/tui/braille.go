package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// layer orders what is drawn into a cell; the highest layer touching a cell
// decides its colour.
type layer uint8

const (
	layerNone layer = iota
	layerGridMinor
	layerGridMajor
	layerInfeasible
	layerFeasible
	layerSelected
	layerRect
	layerCount
)

// brailleBuf is a canvas of 2x4 micro pixels per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	l    [][]layer // per-cell top layer

	markX, markY int // hover marker cell, -1 when unset
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	l := make([][]layer, h)
	for i := range m {
		m[i] = make([]uint8, w)
		l[i] = make([]layer, w)
	}
	return &brailleBuf{w: w, h: h, m: m, l: l, markX: -1, markY: -1}
}

// dot bits indexed by [column][row] within a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, ly layer) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	if ly > b.l[cy][cx] {
		b.l[cy][cx] = ly
	}
}

// disc fills a filled circle of radius r (r=0 is a single dot).
func (b *brailleBuf) disc(mx, my, r int, ly layer) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				b.setPixel(mx+dx, my+dy, ly)
			}
		}
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham. Endpoints are
// clipped to a margin around the canvas first so far off-screen grid lines
// do not iterate over millions of pixels.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, ly layer) {
	if !b.clip(&x0, &y0, &x1, &y1) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, ly)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip limits axis-aligned segments to the canvas. Diagonal segments are
// accepted unchanged; only the grid and the selection rectangle are drawn
// as lines.
func (b *brailleBuf) clip(x0, y0, x1, y1 *int) bool {
	wMic, hMic := b.w*2, b.h*4
	switch {
	case *x0 == *x1:
		if *x0 < 0 || *x0 >= wMic {
			return false
		}
		*y0, *y1 = clampInt(*y0, -1, hMic), clampInt(*y1, -1, hMic)
	case *y0 == *y1:
		if *y0 < 0 || *y0 >= hMic {
			return false
		}
		*x0, *x1 = clampInt(*x0, -1, wMic), clampInt(*x1, -1, wMic)
	}
	return true
}

// mark places the hover marker over one cell.
func (b *brailleBuf) mark(cx, cy int) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.markX, b.markY = cx, cy
}

// toLines renders the canvas, colouring each run of cells that share a layer.
func (b *brailleBuf) toLines(styles [layerCount]lipgloss.Style) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		run := make([]rune, 0, b.w)
		cur := layerNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur == layerNone {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(styles[cur].Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if x == b.markX && y == b.markY {
				flush()
				sb.WriteString(hoverStyle.Render("◯"))
				continue
			}
			mask := b.m[y][x]
			ly := b.l[y][x]
			if mask == 0 {
				ly = layerNone
			}
			if ly != cur {
				flush()
				cur = ly
			}
			if mask == 0 {
				run = append(run, ' ')
			} else {
				run = append(run, rune(0x2800+int(mask)))
			}
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
