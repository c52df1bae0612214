// Package world is the boundary between the drawing core and the world that
// receives blocks. The core only ever calls Placer.Place, one voxel at a
// time; every accepted call is final.
package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/orientation"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

// ErrMaxChanges is returned by a Placer once its change budget is spent.
// Drawing stops at the first occurrence; blocks placed before it stay.
var ErrMaxChanges = errors.New("max block changes exceeded")

// Placer receives blocks.
type Placer interface {
	Place(pos math3d.IVec3, block palette.DrawingBlock) error
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(pos math3d.IVec3, block palette.DrawingBlock) error

// Place calls f(pos, block).
func (f PlacerFunc) Place(pos math3d.IVec3, block palette.DrawingBlock) error {
	return f(pos, block)
}

// WithContext returns a Placer that refuses further blocks once ctx is done.
// The check runs before each placement, so cancellation always lands between
// two voxels.
func WithContext(ctx context.Context, p Placer) Placer {
	return PlacerFunc(func(pos math3d.IVec3, block palette.DrawingBlock) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("placing %v: %w", pos, err)
		}
		return p.Place(pos, block)
	})
}

// Frame anchors a drawing in the world: local block (w, h, d) lands on
// Origin + Orientation.Calc(w, h, d).
type Frame struct {
	Origin      math3d.IVec3
	Orientation orientation.Orientation
}

// NewFrame is a shortcut for a frame placed in front of the viewer at
// position, see orientation.MoveStart.
func NewFrame(position math3d.Vec3, yaw, pitch float64, size math3d.IVec3) Frame {
	o := orientation.New(yaw, pitch)
	return Frame{Origin: o.MoveStart(position, size), Orientation: o}
}

// World converts a local block position.
func (f Frame) World(local math3d.IVec3) math3d.IVec3 {
	return f.Origin.Add(f.Orientation.Calc(local))
}

// Bounds returns the inclusive world corners of a drawing of the given
// local size anchored at this frame.
func (f Frame) Bounds(size math3d.IVec3) (lo, hi math3d.IVec3) {
	return f.Orientation.Bounds(f.Origin, size)
}

// Offset returns a frame moved by a local offset, keeping the orientation.
func (f Frame) Offset(local math3d.IVec3) Frame {
	return Frame{Origin: f.World(local), Orientation: f.Orientation}
}

// Place puts a block at a local position.
func (f Frame) Place(p Placer, local math3d.IVec3, block palette.DrawingBlock) error {
	return p.Place(f.World(local), block)
}
