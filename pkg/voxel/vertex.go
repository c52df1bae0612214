// Package voxel turns triangle meshes into blocks. Surface samples are
// projected into columns, each column keeps its nearest and farthest sample,
// and every column is filled with a line of voxels between the two.
package voxel

// Channel indices of a rendered vertex.
const (
	ChanX = iota
	ChanY
	ChanZ
	ChanU
	ChanV
	ChanR
	ChanG
	ChanB

	// OutputChannels is the width of a rendered vertex.
	OutputChannels
)

// Channel is one optional component of a vertex.
type Channel struct {
	Value   float64
	Defined bool
}

// Def returns a defined channel.
func Def(v float64) Channel {
	return Channel{Value: v, Defined: true}
}

// Vertex is a tuple of optional channels: position, then texture and color
// attributes when present.
type Vertex []Channel

// NewVertex creates a vertex with every channel defined.
func NewVertex(values ...float64) Vertex {
	v := make(Vertex, len(values))
	for i, x := range values {
		v[i] = Def(x)
	}
	return v
}

// Undefined creates a vertex of n undefined channels.
func Undefined(n int) Vertex {
	return make(Vertex, n)
}

// Get returns channel i; channels past the end are undefined.
func (v Vertex) Get(i int) Channel {
	if i < 0 || i >= len(v) {
		return Channel{}
	}
	return v[i]
}

// Value returns the value of channel i, zero when undefined.
func (v Vertex) Value(i int) float64 {
	return v.Get(i).Value
}

// X, Y and Z return the position channels.
func (v Vertex) X() float64 { return v.Value(ChanX) }
func (v Vertex) Y() float64 { return v.Value(ChanY) }
func (v Vertex) Z() float64 { return v.Value(ChanZ) }

// Clone returns an independent copy.
func (v Vertex) Clone() Vertex {
	return append(Vertex(nil), v...)
}

// With returns a copy with channel i set.
func (v Vertex) With(i int, value float64) Vertex {
	out := v.Clone()
	for len(out) <= i {
		out = append(out, Channel{})
	}
	out[i] = Def(value)
	return out
}

// Add adds channel by channel. A channel is defined when either operand's
// is; an undefined operand counts as zero.
func (v Vertex) Add(o Vertex) Vertex {
	return v.combine(o, 1)
}

// Sub subtracts channel by channel with the same definedness rule as Add.
func (v Vertex) Sub(o Vertex) Vertex {
	return v.combine(o, -1)
}

func (v Vertex) combine(o Vertex, sign float64) Vertex {
	out := make(Vertex, max(len(v), len(o)))
	for i := range out {
		a, b := v.Get(i), o.Get(i)
		if !a.Defined && !b.Defined {
			continue
		}
		out[i] = Def(a.Value + sign*b.Value)
	}
	return out
}

// Scale multiplies every defined channel.
func (v Vertex) Scale(s float64) Vertex {
	out := v.Clone()
	for i := range out {
		if out[i].Defined {
			out[i].Value *= s
		}
	}
	return out
}

// Div divides every defined channel.
func (v Vertex) Div(s float64) Vertex {
	return v.Scale(1 / s)
}

// Mapping is a linear map between vertex layouts: output channel r is
// Σ m[r][k] * in[k], summed over the terms where both the coefficient and
// the input are defined. An output is defined as soon as one term is.
type Mapping [][]Channel

// Identity returns the n×n identity mapping.
func Identity(n int) Mapping {
	m := make(Mapping, n)
	for r := range m {
		m[r] = make([]Channel, n)
		m[r][r] = Def(1)
	}
	return m
}

// Apply maps a vertex.
func (m Mapping) Apply(in Vertex) Vertex {
	out := make(Vertex, len(m))
	for r, row := range m {
		for k, coef := range row {
			x := in.Get(k)
			if !coef.Defined || !x.Defined {
				continue
			}
			out[r].Value += coef.Value * x.Value
			out[r].Defined = true
		}
	}
	return out
}
