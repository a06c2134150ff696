package anim

import (
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/engine/rig"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/math"
	"github.com/Faultbox/midgard-rig/pkg/queue"
)

// Defaults used by NewManager.
const (
	DefaultTransitionDuration = 0.15 // seconds
	DefaultTakeoverRate       = 3.0  // progress per second
	DefaultQueueCapacity      = 32
	DefaultClip               = "idle"
)

type takeover struct {
	from     math.Vec3
	progress float32
}

// Manager drives a rig from a clip library. It must be used from a single
// goroutine, and it should be the only writer of bone rotations on its rig.
type Manager struct {
	rig rig.Rig
	lib Library
	log *zap.Logger

	phase      phase
	lastActive string
	queue      *queue.Bounded

	overrides map[string]math.Vec3
	takeovers map[string]*takeover

	transitionDuration float32
	takeoverRate       float32
	queueCapacity      int
	defaultClip        string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for warnings.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTransitionDuration sets the entry blend length in seconds.
func WithTransitionDuration(d float32) Option {
	return func(m *Manager) { m.transitionDuration = d }
}

// WithTakeoverRate sets how fast takeover progress advances per second.
func WithTakeoverRate(rate float32) Option {
	return func(m *Manager) { m.takeoverRate = rate }
}

// WithQueueCapacity sets the pending-clip queue size.
func WithQueueCapacity(n int) Option {
	return func(m *Manager) { m.queueCapacity = n }
}

// WithDefaultClip sets the clip played when the queue runs dry.
func WithDefaultClip(key string) Option {
	return func(m *Manager) { m.defaultClip = key }
}

// NewManager creates an idle manager. The rig and library are borrowed, not copied.
func NewManager(r rig.Rig, lib Library, opts ...Option) *Manager {
	m := &Manager{
		rig:                r,
		lib:                lib,
		log:                logger.Named("anim"),
		phase:              idlePhase{},
		overrides:          make(map[string]math.Vec3),
		takeovers:          make(map[string]*takeover),
		transitionDuration: DefaultTransitionDuration,
		takeoverRate:       DefaultTakeoverRate,
		queueCapacity:      DefaultQueueCapacity,
		defaultClip:        DefaultClip,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.queue = queue.NewBounded(m.queueCapacity)
	return m
}

// Update advances the manager by dt seconds and writes bone rotations.
func (m *Manager) Update(dt float32) {
	m.advanceTakeovers(dt)

	switch p := m.phase.(type) {
	case *transitionPhase:
		m.advanceTransition(p, dt)

	case idlePhase:
		key, ok := m.queue.Dequeue()
		if !ok {
			key = m.defaultClip
		}
		// Exact repeats of a seamless clip skip the entry blend.
		if clip := m.lib[key]; clip != nil && clip.SeamlessLoop && key == m.lastActive {
			m.phase = &playingPhase{key: key, clip: clip}
			return
		}
		m.start(key)

	case *playingPhase:
		p.elapsed += dt
		if p.elapsed > p.clip.Duration {
			if p.clip.Loop && p.clip.Duration > 0 && m.queue.Len() == 0 {
				p.elapsed = float32(stdmath.Mod(float64(p.elapsed), float64(p.clip.Duration)))
			} else {
				m.lastActive = p.key
				m.phase = idlePhase{}
				return
			}
		}
		m.sample(p)
	}
}

// start begins a transition into key, replacing whatever was in progress.
func (m *Manager) start(key string) {
	clip := m.lib[key]
	if clip == nil {
		m.log.Warn("animation not found", zap.String("clip", key))
		return
	}
	if len(clip.Keyframes) == 0 {
		m.log.Warn("animation has no keyframes", zap.String("clip", key))
		return
	}
	m.phase = &transitionPhase{
		key:  key,
		clip: clip,
		from: m.rig.Capture(),
		to:   clip.Keyframes[0].Transforms,
	}
}

func (m *Manager) advanceTransition(p *transitionPhase, dt float32) {
	p.elapsed += dt
	t := float32(1)
	if m.transitionDuration > 0 {
		t = min(p.elapsed/m.transitionDuration, 1)
	}

	for name, bone := range m.rig {
		if bone == nil {
			continue
		}
		if rot, ok := m.overrides[name]; ok {
			bone.SetRotation(rot)
			continue
		}
		target, ok := p.to[name]
		if !ok {
			continue
		}
		bone.SetRotation(p.from[name].Lerp(target.Rot(), t))
	}

	if t < 1 {
		return
	}

	m.phase = &playingPhase{key: p.key, clip: p.clip}

	// Hand overridden bones back to the clip through a takeover blend.
	for name := range p.clip.AffectedBones() {
		if rot, ok := m.overrides[name]; ok {
			m.takeovers[name] = &takeover{from: rot}
			delete(m.overrides, name)
		}
	}
}

func (m *Manager) advanceTakeovers(dt float32) {
	for name, tk := range m.takeovers {
		tk.progress += dt * m.takeoverRate
		if tk.progress >= 1 {
			delete(m.takeovers, name)
		}
	}
}

func (m *Manager) sample(p *playingPhase) {
	prev, next, t := p.clip.bracket(p.elapsed)
	for name, bone := range m.rig {
		if bone == nil {
			continue
		}
		rot := m.finalRotation(name, bone.Rotation(), prev, next, t)
		if rot != bone.Rotation() {
			bone.SetRotation(rot)
		}
	}
}

// finalRotation resolves a bone's rotation: overrides win, then keyframes,
// softened by any in-flight takeover.
func (m *Manager) finalRotation(name string, current math.Vec3, prev, next *Keyframe, t float32) math.Vec3 {
	if rot, ok := m.overrides[name]; ok {
		return rot
	}

	from := current
	if bt, ok := prev.Transforms[name]; ok {
		from = bt.Rot()
	}
	to := from
	if bt, ok := next.Transforms[name]; ok {
		to = bt.Rot()
	}
	rot := from.Lerp(to, t)

	if tk, ok := m.takeovers[name]; ok {
		rot = tk.from.Lerp(rot, min(1, tk.progress))
	}
	return rot
}

// Enqueue appends key to the pending queue. Unknown keys and a full queue are
// logged and ignored.
func (m *Manager) Enqueue(key string) {
	if !m.playable(key, "cannot queue unknown animation") {
		return
	}
	if m.queue.Full() {
		m.log.Warn("animation queue full",
			zap.String("clip", key),
			zap.Int("capacity", m.queue.Cap()))
		return
	}
	m.queue.TryEnqueue(key)
}

// Interrupt clears the queue and starts key immediately, unless the active clip
// disallows interruption, in which case key is queued to play after it.
// A key that cannot be started leaves the queue untouched.
func (m *Manager) Interrupt(key string) {
	if !m.playable(key, "cannot interrupt with unknown animation") {
		return
	}

	m.queue.Clear()
	if p, ok := m.phase.(*playingPhase); ok && p.clip.DisallowInterrupt {
		m.Enqueue(key)
		return
	}
	m.start(key)
}

// playable reports whether key names a clip with keyframes, warning with msg
// when it does not.
func (m *Manager) playable(key, msg string) bool {
	clip := m.lib[key]
	if clip == nil {
		m.log.Warn(msg, zap.String("clip", key))
		return false
	}
	if len(clip.Keyframes) == 0 {
		m.log.Warn("animation has no keyframes", zap.String("clip", key))
		return false
	}
	return true
}

// ClearQueue drops every pending clip. The active clip and any transition are untouched.
func (m *Manager) ClearQueue() {
	m.queue.Clear()
}

// SetUserRotation pins bone to rot until ClearUserRotation.
func (m *Manager) SetUserRotation(bone string, rot math.Vec3) {
	m.overrides[bone] = rot
	delete(m.takeovers, bone)
}

// ClearUserRotation returns bone to animation control on the next Update.
func (m *Manager) ClearUserRotation(bone string) {
	delete(m.overrides, bone)
}

// UserRotation returns the override for bone, if any.
func (m *Manager) UserRotation(bone string) (math.Vec3, bool) {
	rot, ok := m.overrides[bone]
	return rot, ok
}

// TakeoverProgress returns the takeover blend progress for bone, if one is in flight.
func (m *Manager) TakeoverProgress(bone string) (float32, bool) {
	tk, ok := m.takeovers[bone]
	if !ok {
		return 0, false
	}
	return tk.progress, true
}

// State returns the playback state.
func (m *Manager) State() State {
	return m.phase.state()
}

// ActiveAnimation returns the playing clip's key.
func (m *Manager) ActiveAnimation() (string, bool) {
	if p, ok := m.phase.(*playingPhase); ok {
		return p.key, true
	}
	return "", false
}

// TransitionTarget returns the clip being blended into.
func (m *Manager) TransitionTarget() (string, bool) {
	if p, ok := m.phase.(*transitionPhase); ok {
		return p.key, true
	}
	return "", false
}

// IsPlaying reports whether key is the active clip.
func (m *Manager) IsPlaying(key string) bool {
	active, ok := m.ActiveAnimation()
	return ok && active == key
}

// Elapsed returns the active clip's playback time, or 0 when nothing is playing.
func (m *Manager) Elapsed() float32 {
	if p, ok := m.phase.(*playingPhase); ok {
		return p.elapsed
	}
	return 0
}

// QueueInfo returns the pending clip keys, oldest first.
func (m *Manager) QueueInfo() []string {
	return m.queue.Items()
}

// NextAnimation returns the key that plays once the active clip ends.
func (m *Manager) NextAnimation() (string, bool) {
	return m.queue.Peek()
}

// QueueLen returns the number of pending clips.
func (m *Manager) QueueLen() int {
	return m.queue.Len()
}
