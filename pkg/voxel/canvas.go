package voxel

import (
	"fmt"

	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// Canvas collects points into columns indexed by their truncated X and Y.
// Each column keeps its front (smallest Z) and back (largest Z) sample.
// A canvas is filled, expanded and rendered once; it is not safe for
// concurrent use.
type Canvas struct {
	minX, minY    int
	width, height int
	front, back   []Vertex

	expanded bool
}

// NewCanvas sizes a canvas to the bounding box of points, padded by one
// column on every side.
func NewCanvas(points []Vertex) *Canvas {
	c := &Canvas{}
	if len(points) == 0 {
		return c
	}
	minX, minY := int(points[0].X()), int(points[0].Y())
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		x, y := int(p.X()), int(p.Y())
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return newCanvas(minX-1, minY-1, maxX+1, maxY+1)
}

func newCanvas(minX, minY, maxX, maxY int) *Canvas {
	w, h := maxX-minX+1, maxY-minY+1
	return &Canvas{
		minX:   minX,
		minY:   minY,
		width:  w,
		height: h,
		front:  make([]Vertex, w*h),
		back:   make([]Vertex, w*h),
	}
}

// Bounds returns the inclusive column range of the canvas.
func (c *Canvas) Bounds() (minX, minY, maxX, maxY int) {
	return c.minX, c.minY, c.minX + c.width - 1, c.minY + c.height - 1
}

func (c *Canvas) index(x, y int) (int, bool) {
	cx, cy := x-c.minX, y-c.minY
	if cx < 0 || cy < 0 || cx >= c.width || cy >= c.height {
		return 0, false
	}
	return cy*c.width + cx, true
}

// PutPixel adds a point to its column. Points outside the canvas are
// dropped. The first point of a column becomes both extrema; later points
// replace the front only when strictly nearer and the back only when
// strictly farther.
func (c *Canvas) PutPixel(v Vertex) {
	i, ok := c.index(int(v.X()), int(v.Y()))
	if !ok {
		return
	}
	if c.front[i] == nil {
		c.front[i] = v.Clone()
		c.back[i] = v.Clone()
		return
	}
	z := v.Z()
	if z < c.front[i].Z() {
		c.front[i] = v.Clone()
	}
	if z > c.back[i].Z() {
		c.back[i] = v.Clone()
	}
}

// Front returns the nearest sample of column (x, y).
func (c *Canvas) Front(x, y int) (Vertex, bool) {
	i, ok := c.index(x, y)
	if !ok || c.front[i] == nil {
		return nil, false
	}
	return c.front[i], true
}

// Back returns the farthest sample of column (x, y).
func (c *Canvas) Back(x, y int) (Vertex, bool) {
	i, ok := c.index(x, y)
	if !ok || c.back[i] == nil {
		return nil, false
	}
	return c.back[i], true
}

// Columns returns the number of populated columns.
func (c *Canvas) Columns() int {
	n := 0
	for _, v := range c.front {
		if v != nil {
			n++
		}
	}
	return n
}

// Expand closes one-voxel gaps between neighbouring columns. It sweeps once,
// x ascending and y ascending within each x, and pushes every column into
// its right, lower and diagonal neighbours: the back sample extends a
// neighbour's front when it lies in front of it, and the front sample
// extends a neighbour's back when it lies behind it. Copied samples move to
// the neighbour's column. Only populated neighbours are touched and the
// sweep runs at most once.
func (c *Canvas) Expand() {
	if c.expanded {
		return
	}
	c.expanded = true

	for cx := range c.width {
		for cy := range c.height {
			i := cy*c.width + cx
			a, b := c.front[i], c.back[i]
			if a == nil {
				continue
			}
			for _, d := range [3][2]int{{1, 0}, {0, 1}, {1, 1}} {
				nx, ny := cx+d[0], cy+d[1]
				if nx >= c.width || ny >= c.height {
					continue
				}
				n := ny*c.width + nx
				if c.front[n] == nil {
					continue
				}
				colX, colY := float64(c.minX+nx), float64(c.minY+ny)
				if b.Z() < c.front[n].Z() {
					c.front[n] = b.With(ChanX, colX).With(ChanY, colY)
				}
				if a.Z() > c.back[n].Z() {
					c.back[n] = a.With(ChanX, colX).With(ChanY, colY)
				}
			}
		}
	}
}

// Render expands the canvas and draws every column as a line from its front
// to its back sample. Both samples are moved onto the column's integer X and
// Y and then passed through mapping, which yields the rendered vertex
// layout (see ChanX..ChanB). The first placement error stops rendering.
func (c *Canvas) Render(t world.Target, tex *texture.Image, mapping Mapping) error {
	c.Expand()
	for cy := range c.height {
		for cx := range c.width {
			i := cy*c.width + cx
			if c.front[i] == nil {
				continue
			}
			colX, colY := float64(c.minX+cx), float64(c.minY+cy)
			p1 := mapping.Apply(c.front[i].With(ChanX, colX).With(ChanY, colY))
			p2 := mapping.Apply(c.back[i].With(ChanX, colX).With(ChanY, colY))
			if err := DrawLine(t, tex, p1, p2); err != nil {
				return fmt.Errorf("render column %d,%d: %w", c.minX+cx, c.minY+cy, err)
			}
		}
	}
	return nil
}
