// Package anim blends, queues and interrupts keyframed rotation clips on a rig.
package anim

import "github.com/Faultbox/midgard-rig/pkg/math"

// BoneTransform is a keyframed bone rotation in Euler degrees.
type BoneTransform struct {
	Rotation [3]float32 `yaml:"rotation"`
}

// Rot returns the rotation as a vector.
func (b BoneTransform) Rot() math.Vec3 {
	return math.Vec3FromArray(b.Rotation)
}

// Keyframe holds bone rotations at a point in time (seconds).
type Keyframe struct {
	Time       float32                  `yaml:"time"`
	Transforms map[string]BoneTransform `yaml:"transforms"`
}

// Clip is a named animation. Keyframes are ordered by non-decreasing time.
type Clip struct {
	Duration          float32    `yaml:"duration"`
	Loop              bool       `yaml:"loop"`
	SeamlessLoop      bool       `yaml:"seamlessLoop"`
	DisallowInterrupt bool       `yaml:"disallowInterrupt"`
	Keyframes         []Keyframe `yaml:"keyframes"`
}

// AffectedBones returns every bone named by any keyframe.
func (c *Clip) AffectedBones() map[string]struct{} {
	bones := make(map[string]struct{})
	for _, kf := range c.Keyframes {
		for name := range kf.Transforms {
			bones[name] = struct{}{}
		}
	}
	return bones
}

// bracket returns the keyframes surrounding time and the fraction between them.
// Times outside the keyframe range hold the nearest end pose.
func (c *Clip) bracket(time float32) (prev, next *Keyframe, t float32) {
	kfs := c.Keyframes
	if first := &kfs[0]; time < first.Time {
		return first, first, 0
	}
	last := &kfs[len(kfs)-1]
	if time >= last.Time {
		return last, last, 0
	}

	prev, next = &kfs[0], last
	for i := 0; i < len(kfs)-1; i++ {
		if kfs[i].Time <= time && kfs[i+1].Time >= time {
			prev, next = &kfs[i], &kfs[i+1]
			break
		}
	}

	if span := next.Time - prev.Time; span > 0 {
		t = (time - prev.Time) / span
	}
	return prev, next, t
}
