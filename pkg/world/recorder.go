package world

import (
	"sync"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

// Placement is one accepted Place call.
type Placement struct {
	Pos   math3d.IVec3
	Block palette.DrawingBlock
}

// Recorder is an in-memory world. It keeps the latest block per position and
// the ordered log of every placement. A positive MaxChanges bounds the number
// of accepted calls; the call after the last allowed one returns
// ErrMaxChanges.
type Recorder struct {
	MaxChanges int

	mu     sync.Mutex
	blocks map[math3d.IVec3]palette.DrawingBlock
	log    []Placement
}

// NewRecorder creates an empty recorder. maxChanges <= 0 means unbounded.
func NewRecorder(maxChanges int) *Recorder {
	return &Recorder{
		MaxChanges: maxChanges,
		blocks:     make(map[math3d.IVec3]palette.DrawingBlock),
	}
}

// Place records a block.
func (r *Recorder) Place(pos math3d.IVec3, block palette.DrawingBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.MaxChanges > 0 && len(r.log) >= r.MaxChanges {
		return ErrMaxChanges
	}
	if r.blocks == nil {
		r.blocks = make(map[math3d.IVec3]palette.DrawingBlock)
	}
	r.blocks[pos] = block
	r.log = append(r.log, Placement{Pos: pos, Block: block})
	return nil
}

// Changes returns the number of accepted placements.
func (r *Recorder) Changes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.log)
}

// Len returns the number of distinct positions holding a block.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// Block returns the block at pos.
func (r *Recorder) Block(pos math3d.IVec3) (palette.DrawingBlock, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[pos]
	return b, ok
}

// Placements returns a copy of the placement log, oldest first.
func (r *Recorder) Placements() []Placement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Placement(nil), r.log...)
}

// Snapshot returns a copy of the current block map.
func (r *Recorder) Snapshot() map[math3d.IVec3]palette.DrawingBlock {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[math3d.IVec3]palette.DrawingBlock, len(r.blocks))
	for k, v := range r.blocks {
		out[k] = v
	}
	return out
}

// Bounds returns the inclusive corners of all placed blocks. ok is false
// when nothing was placed.
func (r *Recorder) Bounds() (lo, hi math3d.IVec3, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := range r.blocks {
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo = math3d.I3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = math3d.I3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi, ok
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = make(map[math3d.IVec3]palette.DrawingBlock)
	r.log = nil
}
