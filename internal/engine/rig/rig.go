// Package rig maps bone names to transform nodes.
package rig

import (
	"sort"

	"github.com/Faultbox/midgard-rig/internal/engine/transform"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Rig maps bone names to nodes owned by a skeleton. Clips may name bones a
// rig lacks and vice versa.
type Rig map[string]*transform.Node

// Pose is a rotation snapshot keyed by bone name.
type Pose map[string]math.Vec3

// Names returns the bone names in sorted order.
func (r Rig) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capture snapshots the current rotation of every bone.
func (r Rig) Capture() Pose {
	pose := make(Pose, len(r))
	for name, bone := range r {
		if bone != nil {
			pose[name] = bone.Rotation()
		}
	}
	return pose
}
