package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/cmd/rigplay/clips"
	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/internal/engine/anim"
	"github.com/Faultbox/midgard-rig/internal/engine/rig"
	"github.com/Faultbox/midgard-rig/internal/engine/transform"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// spawnDuration is how long the rig takes to scale in from nothing.
const spawnDuration = 0.5

type player struct {
	cfg      *config.Config
	log      *zap.Logger
	skeleton *rig.Skeleton
	names    map[*transform.Node]string
	man      *anim.Manager
	spawn    *anim.Tween

	clock       float32
	sinceReport float32
	lastStatus  string
}

func newPlayer(cfg *config.Config) (*player, error) {
	lib, err := loadLibrary(cfg.Animation.Library)
	if err != nil {
		return nil, err
	}

	p := &player{
		cfg:      cfg,
		log:      logger.Named("rigplay"),
		skeleton: rig.NewAnteater(nil),
	}
	p.names = make(map[*transform.Node]string, len(p.skeleton.Bones))
	for name, bone := range p.skeleton.Bones {
		p.names[bone] = name
	}

	p.spawn = anim.NewTween(p.skeleton.Root, anim.TweenScale,
		math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, spawnDuration,
		func() { p.log.Debug("spawn finished") })

	p.man = p.newManager(lib)
	for _, key := range cfg.Playback.Queue {
		p.man.Enqueue(key)
	}

	p.log.Info("rig ready",
		zap.Strings("bones", p.skeleton.Bones.Names()),
		zap.Strings("clips", lib.Names()))
	return p, nil
}

func loadLibrary(path string) (anim.Library, error) {
	if path == "" {
		lib, err := anim.ParseLibrary(clips.Anteater)
		if err != nil {
			return nil, fmt.Errorf("built-in library: %w", err)
		}
		return lib, nil
	}
	return anim.LoadLibrary(path)
}

func (p *player) newManager(lib anim.Library) *anim.Manager {
	a := p.cfg.Animation
	opts := []anim.Option{anim.WithLogger(logger.Named("anim"))}
	if a.DefaultClip != "" {
		opts = append(opts, anim.WithDefaultClip(a.DefaultClip))
	}
	if a.TransitionDuration > 0 {
		opts = append(opts, anim.WithTransitionDuration(a.TransitionDuration))
	}
	if a.TakeoverRate > 0 {
		opts = append(opts, anim.WithTakeoverRate(a.TakeoverRate))
	}
	if a.QueueCapacity > 0 {
		opts = append(opts, anim.WithQueueCapacity(a.QueueCapacity))
	}
	return anim.NewManager(p.skeleton.Bones, lib, opts...)
}

// run steps the rig. Bounded runs are simulated as fast as possible; unbounded
// or watched runs tick in real time until ctx is cancelled.
func (p *player) run(ctx context.Context) error {
	pb := p.cfg.Playback
	dt := pb.TickInterval()

	if !pb.Watch && pb.Duration > 0 {
		steps := int(pb.Duration.Seconds() * float64(pb.TickRate))
		for i := 0; i < steps; i++ {
			if ctx.Err() != nil {
				return nil
			}
			p.step(dt)
		}
		p.report()
		return nil
	}

	var reload <-chan string
	var watchErrs <-chan error
	if pb.Watch {
		if p.cfg.Animation.Library == "" {
			return errors.New("watch needs an animation library path")
		}
		w, err := anim.WatchLibrary(p.cfg.Animation.Library)
		if err != nil {
			return err
		}
		defer w.Close()
		reload, watchErrs = w.Events, w.Errors
		p.log.Info("watching library", zap.String("path", p.cfg.Animation.Library))
	}

	ticker := time.NewTicker(time.Duration(float64(dt) * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.report()
			return nil
		case <-ticker.C:
			p.step(dt)
		case path := <-reload:
			p.reload(path)
		case err := <-watchErrs:
			p.log.Warn("library watcher error", zap.Error(err))
		}
	}
}

// reload swaps in a freshly parsed library. The rig keeps its current pose,
// so the new manager blends from wherever the old one left off.
func (p *player) reload(path string) {
	lib, err := anim.LoadLibrary(path)
	if err != nil {
		p.log.Warn("library reload failed, keeping previous clips", zap.Error(err))
		return
	}
	queued := p.man.QueueInfo()
	p.man = p.newManager(lib)
	for _, key := range queued {
		p.man.Enqueue(key)
	}
	p.log.Info("library reloaded", zap.Strings("clips", lib.Names()))
}

func (p *player) step(dt float32) {
	if p.spawn != nil && p.spawn.Update(dt) {
		p.spawn = nil
	}
	p.man.Update(dt)
	p.clock += dt

	if status := p.status(); status != p.lastStatus {
		p.lastStatus = status
		next, _ := p.man.NextAnimation()
		p.log.Info("animation state",
			zap.String("status", status),
			zap.Float32("t", p.clock),
			zap.String("next", next),
			zap.Strings("queue", p.man.QueueInfo()))
	}

	p.sinceReport += dt
	if interval := float32(p.cfg.Playback.ReportInterval.Seconds()); interval > 0 && p.sinceReport >= interval {
		p.sinceReport = 0
		p.report()
	}
}

func (p *player) status() string {
	if key, ok := p.man.ActiveAnimation(); ok {
		return "playing " + key
	}
	if key, ok := p.man.TransitionTarget(); ok {
		return "transitioning to " + key
	}
	return p.man.State().String()
}

// report logs each bone's world position and local rotation at debug level.
func (p *player) report() {
	g := transform.HierarchyGraph(p.skeleton.Root)
	rot := p.skeleton.RigInfo()
	for _, n := range g.Nodes {
		name, ok := p.names[n.Node]
		if !ok {
			continue
		}
		r := rot[name]
		p.log.Debug("bone",
			zap.String("name", name),
			zap.Float32s("rotation", r[:]),
			zap.Float32("x", n.Position.X),
			zap.Float32("y", n.Position.Y),
			zap.Float32("z", n.Position.Z))
	}
	p.log.Debug("hierarchy", zap.Int("nodes", len(g.Nodes)), zap.Int("edges", len(g.Edges)))
}
