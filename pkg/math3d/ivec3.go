package math3d

// IVec3 is an integer triple: a block position, a size or a block offset.
type IVec3 struct {
	X, Y, Z int
}

// I3 creates a new IVec3.
func I3(x, y, z int) IVec3 {
	return IVec3{x, y, z}
}

// Add returns a + b.
func (a IVec3) Add(b IVec3) IVec3 {
	return IVec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a IVec3) Sub(b IVec3) IVec3 {
	return IVec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Vec3 converts to floating point.
func (a IVec3) Vec3() Vec3 {
	return Vec3{float64(a.X), float64(a.Y), float64(a.Z)}
}

// Get returns component i (0=X, 1=Y, 2=Z).
func (a IVec3) Get(i int) int {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// Volume returns X*Y*Z.
func (a IVec3) Volume() int {
	return a.X * a.Y * a.Z
}

// Contains reports whether p lies inside the inclusive box [lo, hi].
func Contains(lo, hi, p IVec3) bool {
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}
