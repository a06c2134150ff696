package rig

import (
	"github.com/Faultbox/midgard-rig/internal/engine/transform"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Bone names of the anteater skeleton.
const (
	Pelvis   = "pelvis"
	LThigh   = "lThigh"
	RThigh   = "rThigh"
	LShin    = "lShin"
	RShin    = "rShin"
	LFoot    = "lFoot"
	RFoot    = "rFoot"
	Chest    = "chest"
	LBicep   = "lBicep"
	RBicep   = "rBicep"
	LForearm = "lForearm"
	RForearm = "rForearm"
	LHand    = "lHand"
	RHand    = "rHand"
	Head     = "head"
	TailA    = "tailA"
	TailB    = "tailB"
)

// Skeleton owns a hierarchy of nodes and exposes its named bones.
type Skeleton struct {
	Root  *transform.Node
	Bones Rig
}

var unit = math.Vec3{X: 1, Y: 1, Z: 1}

func v(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// NewAnteater builds the quadruped skeleton under root, or under a new
// identity node when root is nil. Right limbs mirror the left ones one unit along -X.
func NewAnteater(root *transform.Node) *Skeleton {
	if root == nil {
		root = transform.NewIdentity()
	}

	pelvis := transform.New(v(0, 2.25, -1.35), v(-2, 0, 0), unit, root)

	lThigh := transform.New(v(0.5, 0.25, 0), v(0, 0, 0), unit, pelvis)
	lShin := transform.New(v(0, -1.25, 0), v(12, -0.2, 0), unit, lThigh)
	lFoot := transform.New(v(0, -1, 0), v(-5.5, 0, 0), unit, lShin)
	rThigh := lThigh.Clone()
	rThigh.Translate(-1, 0, 0)
	rShin := lShin.CloneTo(rThigh)
	rFoot := lFoot.CloneTo(rShin)

	tailA := transform.New(v(0, 0.2, -0.3), v(-2, 180, 0), unit, pelvis)
	tailB := transform.New(v(0, 0, 1.75), v(5, 0, 0), unit, tailA)

	chest := transform.New(v(0, 0, 2.75), v(4, 0, 0), unit, pelvis)
	lBicep := transform.New(v(0.5, 0.1, 0), v(3, 0, 0), unit, chest)
	lForearm := transform.New(v(0, -1.25, 0), v(-7, 0, 0), unit, lBicep)
	lHand := transform.New(v(0, -1.1, -0.1), v(-5.5, 0, 0), unit, lForearm)
	rBicep := lBicep.Clone()
	rBicep.Translate(-1, 0, 0)
	rForearm := lForearm.CloneTo(rBicep)
	rHand := lHand.CloneTo(rForearm)

	head := transform.New(v(0, 0.25, 0.5), v(0, 0, 0), unit, chest)

	return &Skeleton{
		Root: root,
		Bones: Rig{
			Pelvis: pelvis, LThigh: lThigh, RThigh: rThigh, LShin: lShin, RShin: rShin,
			LFoot: lFoot, RFoot: rFoot, Chest: chest, LBicep: lBicep, RBicep: rBicep,
			LForearm: lForearm, RForearm: rForearm, LHand: lHand, RHand: rHand,
			Head: head, TailA: tailA, TailB: tailB,
		},
	}
}

// RigInfo returns each bone's local rotation.
func (s *Skeleton) RigInfo() map[string][3]float32 {
	info := make(map[string][3]float32, len(s.Bones))
	for name, bone := range s.Bones {
		info[name] = bone.Rotation().Array()
	}
	return info
}
