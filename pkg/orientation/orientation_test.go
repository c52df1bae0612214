package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
)

var (
	yaws    = []float64{0, 90, 180, 270}
	pitches = []float64{0, 60, -60}
)

func TestMatricesAreSignedPermutations(t *testing.T) {
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			o := New(yaw, pitch)
			var colCount [3]int
			for row := range 3 {
				nonZero := 0
				for col := range 3 {
					v := o.Matrix[row][col]
					if v == 0 {
						continue
					}
					assert.Contains(t, []int{-1, 1}, v, "yaw=%v pitch=%v", yaw, pitch)
					nonZero++
					colCount[col]++
				}
				assert.Equal(t, 1, nonZero, "row %d yaw=%v pitch=%v", row, yaw, pitch)
			}
			assert.Equal(t, [3]int{1, 1, 1}, colCount, "yaw=%v pitch=%v", yaw, pitch)
		}
	}
}

func TestHeadingBuckets(t *testing.T) {
	tests := []struct {
		yaw  float64
		want Heading
	}{
		{0, South},
		{-45, South},
		{44.9, South},
		{45, West},
		{134, West},
		{135, North},
		{224.9, North},
		{225, East},
		{314.9, East},
		{315, South},
		{360 + 90, West},
		{-90, East},
		{-720 - 180, North},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HeadingOf(tc.yaw), "yaw=%v", tc.yaw)
	}
}

func TestBandBuckets(t *testing.T) {
	assert.Equal(t, Level, BandOf(45))
	assert.Equal(t, Level, BandOf(-45))
	assert.Equal(t, Down, BandOf(45.1))
	assert.Equal(t, Up, BandOf(-90))
	// pitch is not clamped
	assert.Equal(t, Down, BandOf(400))
}

func TestLevelSouthAxes(t *testing.T) {
	o := New(0, 0)
	// depth moves away from the viewer, towards +Z
	assert.Equal(t, math3d.I3(0, 0, 1), o.Calc(math3d.I3(0, 0, 1)))
	// height is world up
	assert.Equal(t, math3d.I3(0, 1, 0), o.Calc(math3d.I3(0, 1, 0)))
	// facing south the viewer's right is west
	assert.Equal(t, math3d.I3(-1, 0, 0), o.Calc(math3d.I3(1, 0, 0)))
}

func TestLookingDownDepthIsBelow(t *testing.T) {
	for _, yaw := range yaws {
		o := New(yaw, 90)
		assert.Equal(t, -1, o.CalcY(0, 0, 1), "yaw=%v", yaw)
		assert.Equal(t, 0, o.CalcY(1, 1, 0), "yaw=%v", yaw)
	}
}

func TestMoveStartNeverCoversAnchor(t *testing.T) {
	positions := []math3d.Vec3{
		math3d.V3(0, 64, 0),
		math3d.V3(-10.5, 70.2, 33.9),
		math3d.V3(100.99, 5, -0.01),
	}
	sizes := []math3d.IVec3{
		math3d.I3(1, 1, 1),
		math3d.I3(3, 1, 1),
		math3d.I3(16, 32, 8),
		math3d.I3(7, 2, 5),
	}
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			o := New(yaw, pitch)
			for _, pos := range positions {
				for _, size := range sizes {
					origin := MoveStart(pos, yaw, pitch, size)
					lo, hi := o.Bounds(origin, size)
					require.False(t, math3d.Contains(lo, hi, pos.Floor()),
						"yaw=%v pitch=%v pos=%v size=%v box=%v..%v", yaw, pitch, pos, size, lo, hi)
				}
			}
		}
	}
}

func TestBoundsMatchesPlacedBlocks(t *testing.T) {
	size := math3d.I3(3, 2, 4)
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			o := New(yaw, pitch)
			origin := math3d.I3(10, 20, 30)
			lo, hi := o.Bounds(origin, size)
			count := 0
			for w := range size.X {
				for h := range size.Y {
					for d := range size.Z {
						p := origin.Add(o.Calc(math3d.I3(w, h, d)))
						require.True(t, math3d.Contains(lo, hi, p), "yaw=%v pitch=%v", yaw, pitch)
						count++
					}
				}
			}
			ext := hi.Sub(lo).Add(math3d.I3(1, 1, 1))
			assert.Equal(t, count, ext.Volume(), "yaw=%v pitch=%v", yaw, pitch)
		}
	}
}

func TestMatrixPermutation(t *testing.T) {
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			m := New(yaw, pitch).Matrix
			assert.True(t, m.Permutation(), "yaw=%v pitch=%v", yaw, pitch)
		}
	}
	bad := []Matrix{
		{},
		{{1, 0, 0}, {1, 0, 0}, {0, 0, 1}},
		{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}},
	}
	for _, m := range bad {
		assert.False(t, m.Permutation(), "%v", m)
	}
}

func TestMatrixShiftKeepsBoxAtOrigin(t *testing.T) {
	size := math3d.I3(3, 2, 4)
	for _, yaw := range yaws {
		for _, pitch := range pitches {
			m := New(yaw, pitch).Matrix
			ext := m.Extent(size)
			assert.Equal(t, size.Volume(), ext.Volume())
			shift := m.Shift(size)
			for w := range size.X {
				for h := range size.Y {
					for d := range size.Z {
						p := m.Apply(math3d.I3(w, h, d)).Add(shift)
						require.True(t, math3d.Contains(math3d.IVec3{}, ext.Sub(math3d.I3(1, 1, 1)), p),
							"yaw=%v pitch=%v p=%v ext=%v", yaw, pitch, p, ext)
					}
				}
			}
		}
	}
}
