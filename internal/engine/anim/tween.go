package anim

import (
	"github.com/Faultbox/midgard-rig/internal/engine/transform"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// TweenProperty selects which node attribute a Tween drives.
type TweenProperty int

const (
	TweenPosition TweenProperty = iota
	TweenRotation
	TweenScale
)

// Tween eases one node attribute from From to To with a cubic ease-out.
type Tween struct {
	Target     *transform.Node
	Property   TweenProperty
	From, To   math.Vec3
	Duration   float32
	OnComplete func()

	elapsed float32
}

// NewTween creates a tween. onComplete may be nil.
func NewTween(target *transform.Node, prop TweenProperty, from, to math.Vec3, duration float32, onComplete func()) *Tween {
	return &Tween{
		Target:     target,
		Property:   prop,
		From:       from,
		To:         to,
		Duration:   duration,
		OnComplete: onComplete,
	}
}

// Update advances the tween, applies the eased value and reports completion.
// OnComplete runs once, on the update that finishes the tween.
func (tw *Tween) Update(dt float32) bool {
	tw.elapsed += dt

	t := float32(1)
	if tw.Duration > 0 {
		t = min(tw.elapsed/tw.Duration, 1)
	}
	inv := 1 - t
	eased := 1 - inv*inv*inv
	value := tw.From.Lerp(tw.To, eased)

	switch tw.Property {
	case TweenPosition:
		tw.Target.SetPosition(value)
	case TweenRotation:
		tw.Target.SetRotation(value)
	case TweenScale:
		tw.Target.SetScale(value)
	}

	if t < 1 {
		return false
	}
	if tw.OnComplete != nil {
		tw.OnComplete()
		tw.OnComplete = nil
	}
	return true
}
