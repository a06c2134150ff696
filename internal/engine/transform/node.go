// Package transform provides the parent/child spatial hierarchy used for bones.
//
// Every mutation recomputes the node's local matrix and cascades world matrices
// through all descendants before returning, so readers never observe stale state.
package transform

import (
	"errors"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// ErrCycle is returned when a reparent would make a node its own ancestor.
var ErrCycle = errors.New("transform: parent would create a cycle")

// Node is a transform in a hierarchy. Rotation is Euler degrees applied X, then Y, then Z.
type Node struct {
	position math.Vec3
	rotation math.Vec3
	scale    math.Vec3

	local math.Mat4
	world math.Mat4

	parent   *Node
	children []*Node
}

// New creates a node and attaches it to parent when parent is non-nil.
func New(position, rotation, scale math.Vec3, parent *Node) *Node {
	n := &Node{
		position: position,
		rotation: rotation,
		scale:    scale,
	}
	if parent != nil {
		// A fresh node has no descendants, so this cannot fail.
		_ = parent.AddChild(n)
		return n
	}
	n.recompute()
	return n
}

// NewIdentity creates an unparented node at the origin with unit scale.
func NewIdentity() *Node {
	return New(math.Vec3{}, math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, nil)
}

// Position returns the local position.
func (n *Node) Position() math.Vec3 { return n.position }

// Rotation returns the local rotation in degrees.
func (n *Node) Rotation() math.Vec3 { return n.rotation }

// Scale returns the local scale.
func (n *Node) Scale() math.Vec3 { return n.scale }

// LocalMatrix returns the cached local matrix.
func (n *Node) LocalMatrix() math.Mat4 { return n.local }

// WorldMatrix returns the cached world matrix in column-major order.
func (n *Node) WorldMatrix() math.Mat4 { return n.world }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// SetPosition replaces the local position.
func (n *Node) SetPosition(p math.Vec3) {
	n.position = p
	n.recompute()
}

// SetRotation replaces the local rotation (degrees).
func (n *Node) SetRotation(r math.Vec3) {
	n.rotation = r
	n.recompute()
}

// SetScale replaces the local scale.
func (n *Node) SetScale(s math.Vec3) {
	n.scale = s
	n.recompute()
}

// Translate offsets the local position.
func (n *Node) Translate(dx, dy, dz float32) {
	n.position = n.position.Add(math.Vec3{X: dx, Y: dy, Z: dz})
	n.recompute()
}

// SetParent moves n under parent, or detaches it when parent is nil.
// Returns ErrCycle, leaving the hierarchy untouched, if parent is n or one of its descendants.
func (n *Node) SetParent(parent *Node) error {
	if parent == n.parent {
		return nil
	}
	if parent == nil {
		n.parent.RemoveChild(n)
		return nil
	}
	return parent.AddChild(n)
}

// AddChild attaches child, detaching it from any previous parent first.
// Adding an existing child is a no-op.
func (n *Node) AddChild(child *Node) error {
	if child.parent == n {
		return nil
	}
	if child == n || child.isAncestorOf(n) {
		return ErrCycle
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	n.children = append(n.children, child)
	child.parent = n
	child.recompute()
	return nil
}

// RemoveChild detaches child, making it a root. Non-children are ignored.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.detach(child)
	child.parent = nil
	child.recompute()
}

func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// isAncestorOf reports whether n appears on other's parent chain.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// WorldPosition returns the translation column of the world matrix.
func (n *Node) WorldPosition() math.Vec3 {
	return n.world.Translation()
}

// WorldRotation returns the summed Euler rotation of n and its ancestors.
// This is an approximation that ignores axis coupling between levels.
func (n *Node) WorldRotation() math.Vec3 {
	r := n.rotation
	for p := n.parent; p != nil; p = p.parent {
		r = r.Add(p.rotation)
	}
	return r
}

// Clone copies position, rotation and scale into a new node under n's parent.
func (n *Node) Clone() *Node {
	return n.CloneTo(n.parent)
}

// CloneTo copies position, rotation and scale into a new node under parent.
// Children are not cloned.
func (n *Node) CloneTo(parent *Node) *Node {
	return New(n.position, n.rotation, n.scale, parent)
}

func (n *Node) recompute() {
	n.local = math.TRS(n.position, n.rotation, n.scale)
	if n.parent != nil {
		n.world = n.parent.world.Mul(n.local)
	} else {
		n.world = n.local
	}
	for _, c := range n.children {
		c.recompute()
	}
}
