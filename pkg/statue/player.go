package statue

import (
	"github.com/SBPrime/MCPainter-sub001/pkg/geometry"
	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
)

// skinBox lists the top-left corner of each side of a box in a 64×64 skin.
// Skins name sides from the wearer's point of view, so the wearer's right
// side faces the viewer's left.
type skinBox struct {
	top, bottom, right, front, left, back [2]int
}

func (s skinBox) faces(size math3d.IVec3) []FaceSpec {
	w, h, d := size.X, size.Y, size.Z
	face := func(kind geometry.FaceKind, at [2]int, fw, fh int) FaceSpec {
		return FaceSpec{Face: kind, U: at[0], V: at[1], Width: fw, Height: fh}
	}
	return []FaceSpec{
		face(geometry.Front, s.front, w, h),
		face(geometry.Back, s.back, w, h),
		face(geometry.Left, s.right, d, h),
		face(geometry.Right, s.left, d, h),
		face(geometry.Top, s.top, w, d),
		face(geometry.Bottom, s.bottom, w, d),
	}
}

var (
	skinHead     = skinBox{top: [2]int{8, 0}, bottom: [2]int{16, 0}, right: [2]int{0, 8}, front: [2]int{8, 8}, left: [2]int{16, 8}, back: [2]int{24, 8}}
	skinBody     = skinBox{top: [2]int{20, 16}, bottom: [2]int{28, 16}, right: [2]int{16, 20}, front: [2]int{20, 20}, left: [2]int{28, 20}, back: [2]int{32, 20}}
	skinRightArm = skinBox{top: [2]int{44, 16}, bottom: [2]int{48, 16}, right: [2]int{40, 20}, front: [2]int{44, 20}, left: [2]int{48, 20}, back: [2]int{52, 20}}
	skinRightLeg = skinBox{top: [2]int{4, 16}, bottom: [2]int{8, 16}, right: [2]int{0, 20}, front: [2]int{4, 20}, left: [2]int{8, 20}, back: [2]int{12, 20}}
	skinLeftLeg  = skinBox{top: [2]int{20, 48}, bottom: [2]int{24, 48}, right: [2]int{16, 52}, front: [2]int{20, 52}, left: [2]int{24, 52}, back: [2]int{28, 52}}
	skinLeftArm  = skinBox{top: [2]int{36, 48}, bottom: [2]int{40, 48}, right: [2]int{32, 52}, front: [2]int{36, 52}, left: [2]int{40, 52}, back: [2]int{44, 52}}
)

// Player returns the statue of a player built from a 64×64 skin, texture
// index 0. It is 16 blocks wide, 32 high and 8 deep.
func Player() *Description {
	part := func(name string, box skinBox, offset, size math3d.IVec3) Part {
		return Part{
			Name:  name,
			Block: Block{Offset: offset, Size: size},
			Faces: box.faces(size),
		}
	}
	limb := math3d.I3(4, 12, 4)
	return &Description{
		Name:       "player",
		Resolution: 64,
		Parts: []Part{
			part("right_leg", skinRightLeg, math3d.I3(4, 0, 2), limb),
			part("left_leg", skinLeftLeg, math3d.I3(8, 0, 2), limb),
			part("body", skinBody, math3d.I3(4, 12, 2), math3d.I3(8, 12, 4)),
			part("right_arm", skinRightArm, math3d.I3(0, 12, 2), limb),
			part("left_arm", skinLeftArm, math3d.I3(12, 12, 2), limb),
			part("head", skinHead, math3d.I3(4, 24, 0), math3d.I3(8, 8, 8)),
		},
	}
}
