package main

import (
	"context"
	"testing"
	"time"

	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/internal/engine/anim"
	"github.com/Faultbox/midgard-rig/internal/engine/rig"
)

func TestBuiltinLibrary(t *testing.T) {
	lib, err := loadLibrary("")
	if err != nil {
		t.Fatalf("loadLibrary: %v", err)
	}

	skel := rig.NewAnteater(nil)
	for _, key := range lib.Names() {
		for bone := range lib[key].AffectedBones() {
			if skel.Bones[bone] == nil {
				t.Errorf("clip %q animates unknown bone %q", key, bone)
			}
		}
	}

	if c := lib["idle"]; c == nil || !c.Loop || !c.SeamlessLoop {
		t.Errorf("idle should be a seamless loop, got %+v", c)
	}
	if c := lib["guard"]; c == nil || !c.DisallowInterrupt {
		t.Errorf("guard should disallow interrupts, got %+v", c)
	}
}

func TestHeadlessRun(t *testing.T) {
	cfg := config.Default()
	cfg.Playback.Duration = 2 * time.Second
	cfg.Playback.TickRate = 30
	cfg.Playback.Queue = []string{"walk", "sniff"}

	p, err := newPlayer(cfg)
	if err != nil {
		t.Fatalf("newPlayer: %v", err)
	}
	if err := p.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if p.spawn != nil {
		t.Error("spawn tween should have finished")
	}
	if got := p.skeleton.Root.Scale(); got.X != 1 || got.Y != 1 || got.Z != 1 {
		t.Errorf("root scale = %+v, want unit", got)
	}
	if p.clock < 1.9 {
		t.Errorf("clock = %v, want about 2s", p.clock)
	}
	if p.man.State() == anim.Idle {
		t.Error("manager should not be idle with a default clip")
	}
}

func TestWatchNeedsLibraryPath(t *testing.T) {
	cfg := config.Default()
	cfg.Playback.Watch = true
	cfg.Playback.Duration = 0

	p, err := newPlayer(cfg)
	if err != nil {
		t.Fatalf("newPlayer: %v", err)
	}
	if err := p.run(context.Background()); err == nil {
		t.Fatal("expected an error without a library path")
	}
}
