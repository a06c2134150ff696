package anim

import (
	"github.com/Faultbox/midgard-rig/internal/engine/rig"
)

// State is the manager's playback state.
type State int

const (
	// Idle has no clip; the next Update dequeues one.
	Idle State = iota
	// Transitioning blends from a captured pose into a clip's first keyframe.
	Transitioning
	// Playing samples an active clip.
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// phase is one of idlePhase, *transitionPhase or *playingPhase.
type phase interface {
	state() State
}

type idlePhase struct{}

func (idlePhase) state() State { return Idle }

type transitionPhase struct {
	key     string
	clip    *Clip
	elapsed float32
	from    rig.Pose
	to      map[string]BoneTransform
}

func (*transitionPhase) state() State { return Transitioning }

type playingPhase struct {
	key     string
	clip    *Clip
	elapsed float32
}

func (*playingPhase) state() State { return Playing }
