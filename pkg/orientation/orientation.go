// Package orientation turns a viewer's yaw and pitch into one of twelve
// axis-aligned rotations used to place drawings in front of that viewer.
//
// Drawings are described in local axes: width grows to the viewer's right,
// height grows up the drawing and depth grows away from the viewer. World
// axes follow Minecraft: +X east, +Y up, +Z south, yaw 0 facing south.
package orientation

import (
	"fmt"
	"math"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
)

// Heading is the yaw quadrant the viewer faces.
type Heading int

const (
	South Heading = iota // yaw [315, 45)
	West                 // yaw [45, 135)
	North                // yaw [135, 225)
	East                 // yaw [225, 315)
)

func (h Heading) String() string {
	switch h {
	case South:
		return "south"
	case West:
		return "west"
	case North:
		return "north"
	case East:
		return "east"
	}
	return fmt.Sprintf("Heading(%d)", int(h))
}

// Band is the pitch band the viewer looks in.
type Band int

const (
	Level Band = iota
	Down       // pitch > 45
	Up         // pitch < -45
)

func (b Band) String() string {
	switch b {
	case Level:
		return "level"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// Matrix maps local (width, height, depth) onto world (X, Y, Z):
// world[row] = Σ m[row][k] * local[k]. Every row and column holds exactly
// one ±1.
type Matrix [3][3]int

// Apply multiplies a local vector by the matrix.
func (m *Matrix) Apply(v math3d.IVec3) math3d.IVec3 {
	return math3d.I3(
		m[0][0]*v.X+m[0][1]*v.Y+m[0][2]*v.Z,
		m[1][0]*v.X+m[1][1]*v.Y+m[1][2]*v.Z,
		m[2][0]*v.X+m[2][1]*v.Y+m[2][2]*v.Z,
	)
}

// Permutation reports whether every row and column holds exactly one ±1
// and nothing else.
func (m *Matrix) Permutation() bool {
	var cols [3]int
	for _, row := range m {
		n := 0
		for c, v := range row {
			switch v {
			case 0:
			case 1, -1:
				n++
				cols[c]++
			default:
				return false
			}
		}
		if n != 1 {
			return false
		}
	}
	return cols == [3]int{1, 1, 1}
}

// Extent returns the size of a box of the given size after the matrix has
// been applied. Only valid for permutations.
func (m *Matrix) Extent(size math3d.IVec3) math3d.IVec3 {
	e := m.Apply(size)
	return math3d.I3(abs(e.X), abs(e.Y), abs(e.Z))
}

// Shift is the offset that moves a box of the given size, once the matrix
// has been applied, back to start at the origin.
func (m *Matrix) Shift(size math3d.IVec3) math3d.IVec3 {
	var s [3]int
	for r, row := range m {
		for c, v := range row {
			if v < 0 {
				s[r] += size.Get(c) - 1
			}
		}
	}
	return math3d.I3(s[0], s[1], s[2])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// matrices is indexed by [Band][Heading].
var matrices = [3][4]Matrix{
	Level: {
		South: {{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		West:  {{0, 0, -1}, {0, 1, 0}, {-1, 0, 0}},
		North: {{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
		East:  {{0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
	},
	Down: {
		South: {{-1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		West:  {{0, -1, 0}, {0, 0, -1}, {-1, 0, 0}},
		North: {{1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
		East:  {{0, 1, 0}, {0, 0, -1}, {1, 0, 0}},
	},
	Up: {
		South: {{-1, 0, 0}, {0, 0, 1}, {0, -1, 0}},
		West:  {{0, 1, 0}, {0, 0, 1}, {-1, 0, 0}},
		North: {{1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		East:  {{0, -1, 0}, {0, 0, 1}, {1, 0, 0}},
	},
}

// startRule places the drawing relative to the anchor, in local axes. The
// drawing is centred across the viewer and pushed forward along depth so
// that it never covers the anchor block.
type startRule struct {
	centreWidth  bool
	centreHeight bool
	depth        int
}

var startRules = [3]startRule{
	Level: {centreWidth: true, depth: 1},
	Down:  {centreWidth: true, centreHeight: true, depth: 1},
	// the anchor is the viewer's feet; skip the head block
	Up: {centreWidth: true, centreHeight: true, depth: 2},
}

// Orientation is the discrete rotation chosen for one draw operation.
type Orientation struct {
	Heading Heading
	Band    Band
	Matrix  Matrix
}

// New selects the rotation for the given yaw and pitch in degrees. Yaw is
// wrapped into [0, 360); pitch is compared as given.
func New(yaw, pitch float64) Orientation {
	h, b := HeadingOf(yaw), BandOf(pitch)
	return Orientation{Heading: h, Band: b, Matrix: matrices[b][h]}
}

// HeadingOf buckets a yaw angle into its quadrant.
func HeadingOf(yaw float64) Heading {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	switch {
	case yaw >= 315 || yaw < 45:
		return South
	case yaw < 135:
		return West
	case yaw < 225:
		return North
	default:
		return East
	}
}

// BandOf buckets a pitch angle.
func BandOf(pitch float64) Band {
	switch {
	case pitch > 45:
		return Down
	case pitch < -45:
		return Up
	default:
		return Level
	}
}

// CalcX returns the world X component of a local vector.
func (o Orientation) CalcX(w, h, d int) int {
	return o.calc(0, w, h, d)
}

// CalcY returns the world Y component of a local vector.
func (o Orientation) CalcY(w, h, d int) int {
	return o.calc(1, w, h, d)
}

// CalcZ returns the world Z component of a local vector.
func (o Orientation) CalcZ(w, h, d int) int {
	return o.calc(2, w, h, d)
}

func (o Orientation) calc(row, w, h, d int) int {
	m := o.Matrix[row]
	return m[0]*w + m[1]*h + m[2]*d
}

// Calc rotates a local integer vector into world axes.
func (o Orientation) Calc(v math3d.IVec3) math3d.IVec3 {
	return math3d.IVec3{
		X: o.CalcX(v.X, v.Y, v.Z),
		Y: o.CalcY(v.X, v.Y, v.Z),
		Z: o.CalcZ(v.X, v.Y, v.Z),
	}
}

// MoveStart returns the world origin of a drawing of the given local size:
// block (w, h, d) of the drawing lands on origin + Calc(w, h, d). The
// resulting box never contains the anchor block at position.
func MoveStart(position math3d.Vec3, yaw, pitch float64, size math3d.IVec3) math3d.IVec3 {
	return New(yaw, pitch).MoveStart(position, size)
}

// MoveStart is the method form of the package-level MoveStart.
func (o Orientation) MoveStart(position math3d.Vec3, size math3d.IVec3) math3d.IVec3 {
	rule := startRules[o.Band]
	var start math3d.IVec3
	if rule.centreWidth {
		start.X = -size.X / 2
	}
	if rule.centreHeight {
		start.Y = -size.Y / 2
	}
	start.Z = rule.depth
	return position.Floor().Add(o.Calc(start))
}

// Bounds returns the inclusive world corners covered by a drawing of the
// given local size placed at origin.
func (o Orientation) Bounds(origin math3d.IVec3, size math3d.IVec3) (lo, hi math3d.IVec3) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return origin, origin
	}
	// the far corner is one block short of the extent, in its direction
	ext := o.Calc(size)
	far := math3d.I3(
		ext.X-sign(ext.X),
		ext.Y-sign(ext.Y),
		ext.Z-sign(ext.Z),
	)
	a, b := origin, origin.Add(far)
	lo = math3d.I3(min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z))
	hi = math3d.I3(max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z))
	return lo, hi
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
