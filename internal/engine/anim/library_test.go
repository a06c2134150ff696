package anim

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const yamlLibrary = `
idle:
  duration: 2
  loop: true
  seamlessLoop: true
  keyframes:
    - time: 0
      transforms:
        head: { rotation: [0, 0, 0] }
    - time: 1
      transforms:
        head: { rotation: [5, -2, 0] }
        tailA: { rotation: [-2, 185, 0] }
guard:
  duration: 1.5
  loop: false
  disallowInterrupt: true
  keyframes:
    - time: 0
      transforms:
        lBicep: { rotation: [-40, 0, 10] }
`

const jsonLibrary = `{
  "walk": {
    "duration": 1,
    "loop": true,
    "keyframes": [
      { "time": 0, "transforms": { "lThigh": { "rotation": [20, 0, 0] } } },
      { "time": 0.5, "transforms": { "lThigh": { "rotation": [-20, 0, 0] } } },
      { "time": 1, "transforms": { "lThigh": { "rotation": [20, 0, 0] } } }
    ]
  }
}`

func TestParseLibraryYAML(t *testing.T) {
	lib, err := ParseLibrary([]byte(yamlLibrary))
	if err != nil {
		t.Fatalf("ParseLibrary: %v", err)
	}

	names := lib.Names()
	if len(names) != 2 || names[0] != "guard" || names[1] != "idle" {
		t.Fatalf("Names() = %v, want [guard idle]", names)
	}

	idle := lib["idle"]
	if idle.Duration != 2 || !idle.Loop || !idle.SeamlessLoop || idle.DisallowInterrupt {
		t.Errorf("idle flags decoded wrong: %+v", idle)
	}
	if len(idle.Keyframes) != 2 {
		t.Fatalf("idle keyframes = %d, want 2", len(idle.Keyframes))
	}
	if got := idle.Keyframes[1].Transforms["tailA"].Rotation; got != [3]float32{-2, 185, 0} {
		t.Errorf("tailA rotation = %v", got)
	}

	if !lib["guard"].DisallowInterrupt {
		t.Error("guard should disallow interrupts")
	}

	bones := idle.AffectedBones()
	if _, ok := bones["tailA"]; !ok || len(bones) != 2 {
		t.Errorf("AffectedBones() = %v, want head and tailA", bones)
	}
}

func TestParseLibraryJSON(t *testing.T) {
	lib, err := ParseLibrary([]byte(jsonLibrary))
	if err != nil {
		t.Fatalf("ParseLibrary: %v", err)
	}
	walk := lib["walk"]
	if walk == nil || len(walk.Keyframes) != 3 {
		t.Fatalf("walk decoded wrong: %+v", walk)
	}
	if got := walk.Keyframes[1].Transforms["lThigh"].Rot().X; got != -20 {
		t.Errorf("walk mid keyframe lThigh X = %v, want -20", got)
	}
}

func TestParseLibraryInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no keyframes", "idle:\n  duration: 1\n", "no keyframes"},
		{"zero duration", "idle:\n  duration: 0\n  keyframes:\n    - time: 0\n", "must be positive"},
		{"time past duration", "idle:\n  duration: 1\n  keyframes:\n    - time: 0\n    - time: 2\n", "outside"},
		{"unordered", "idle:\n  duration: 1\n  keyframes:\n    - time: 0.5\n    - time: 0.2\n", "before previous"},
		{"null clip", "idle:\n", "empty definition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidClip) {
				t.Fatalf("expected ErrInvalidClip, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), `"idle"`) {
				t.Errorf("error %q should mention %q and the clip name", err, tt.want)
			}
		})
	}

	if _, err := ParseLibrary([]byte("idle: [unclosed")); err == nil {
		t.Error("expected decode error for malformed document")
	}
}

func TestLoadLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anims.yaml")
	if err := os.WriteFile(path, []byte(yamlLibrary), 0644); err != nil {
		t.Fatalf("failed to write library: %v", err)
	}

	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(lib) != 2 {
		t.Errorf("expected 2 clips, got %d", len(lib))
	}

	if _, err := LoadLibrary(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClipBracket(t *testing.T) {
	c := &Clip{
		Duration: 2,
		Keyframes: []Keyframe{
			{Time: 0}, {Time: 0.5}, {Time: 0.5}, {Time: 1.5},
		},
	}

	tests := []struct {
		time       float32
		prev, next int
		t          float32
	}{
		{0, 0, 1, 0},
		{0.25, 0, 1, 0.5},
		{1, 2, 3, 0.5},
		{1.5, 3, 3, 0},
		{1.9, 3, 3, 0}, // past the last keyframe holds it
	}

	for _, tt := range tests {
		prev, next, frac := c.bracket(tt.time)
		if prev != &c.Keyframes[tt.prev] || next != &c.Keyframes[tt.next] || frac != tt.t {
			t.Errorf("bracket(%v) = (%v, %v, %v), want keyframes %d..%d at %v",
				tt.time, prev.Time, next.Time, frac, tt.prev, tt.next, tt.t)
		}
	}

	// Before a late first keyframe, the first pose holds.
	late := &Clip{Duration: 2, Keyframes: []Keyframe{{Time: 0.5}, {Time: 1}, {Time: 2}}}
	for _, at := range []float32{0, 0.1, 0.49} {
		prev, next, frac := late.bracket(at)
		if prev != &late.Keyframes[0] || next != &late.Keyframes[0] || frac != 0 {
			t.Errorf("bracket(%v) = (%v, %v, %v), want first keyframe held", at, prev.Time, next.Time, frac)
		}
	}

	// A zero-width bracket yields t=0.
	zero := &Clip{Duration: 1, Keyframes: []Keyframe{{Time: 0.5}, {Time: 0.5}, {Time: 1}}}
	if _, _, frac := zero.bracket(0.5); frac != 0 {
		t.Errorf("zero-width bracket t = %v, want 0", frac)
	}
}
