// Package director is the camera state machine. It owns the current and target viewpoint, drives
// interpolated transitions between viewpoints, classifies pointer input by raycasting the scene
// and is the only writer of the render camera's pose.
package director

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/bus"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/tween"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Director drives the render camera between viewpoints.
// All operations are best-effort: none return errors and none panic on degenerate input.
// Side effects that leave the director (bus events, focus changes, completion callbacks)
// run after its lock is released, so they may call back into the director.
// Thread-safe for concurrent access.
type Director interface {
	// Current returns the viewpoint the camera rests at, or viewpoint.None while a transition runs.
	Current() viewpoint.ID

	// Target returns the viewpoint a running transition heads to, or viewpoint.None.
	Target() viewpoint.ID

	// Transitioning reports whether a transition is in flight.
	Transitioning() bool

	// FreeLook reports whether the orbit controller drives the camera.
	FreeLook() bool

	// InputMode returns the current drag-capture mode.
	InputMode() InputMode

	// RenderPose returns the pose last written to the render camera.
	RenderPose() common.Pose

	// Viewport returns the last viewport passed to Resize.
	Viewport() reframe.Viewport

	// Transition starts an interpolated move to id. It is a no-op when the camera already rests
	// at id or while free-look drives the camera. Otherwise any in-flight transition is discarded and motion restarts from the
	// current render pose. Position and focal point each follow curve toward the target's live
	// pose, re-read every tick.
	//
	// Parameters:
	//   - id: the target viewpoint
	//   - duration: transition length; non-positive completes on the next tick
	//   - curve: easing curve, nil for quintic in/out
	//   - onComplete: optional callback run once the camera arrives
	Transition(id viewpoint.ID, duration time.Duration, curve tween.Curve, onComplete func())

	// HandlePointerInput classifies a primary pointer press and reacts to it: entering the
	// monitor, leaving it, or toggling between the idle and desk viewpoints.
	//
	// Parameters:
	//   - x, y: client-space pixel coordinates (origin top-left)
	//   - target: the host element the press was addressed to
	HandlePointerInput(x, y float32, target PointerTarget)

	// EnterMonitor moves into the monitor view and notifies listeners. No-op when at or
	// already heading to the monitor.
	EnterMonitor()

	// LeaveMonitor moves back to the desk view and notifies listeners. No-op when at or
	// already heading to the desk.
	LeaveMonitor()

	// ToggleFreeLook engages or releases the orbit controller.
	//
	// Parameters:
	//   - engaged: true to hand the camera to the orbit controller
	ToggleFreeLook(engaged bool)

	// LoadingDone starts the scripted entrance from the loading viewpoint to idle.
	// Only the first call has an effect.
	LoadingDone()

	// SetPointer records the pointer position used by parallax rules.
	//
	// Parameters:
	//   - x, y: client-space pixel coordinates
	SetPointer(x, y float32)

	// Resize updates the viewport, the camera aspect and, when resting at the monitor,
	// eases the camera to the freshly reframed pose.
	//
	// Parameters:
	//   - width, height: client area in device pixels
	Resize(width, height int)

	// Tick advances transitions, runs viewpoint rules and writes the render camera.
	//
	// Parameters:
	//   - elapsed: monotonic time since ticking started
	Tick(elapsed time.Duration)

	// Close detaches the director from the bus.
	Close()
}

// transition is one in-flight interpolation. Only one exists at a time.
type transition struct {
	target     viewpoint.ID
	from       common.Pose
	position   tween.Tween
	focal      tween.Tween
	arrive     func()
	onComplete func()
}

// settle eases a resting camera to a moved target pose without a state change.
type settle struct {
	target viewpoint.ID
	from   common.Pose
	tween  tween.Tween
}

type director struct {
	mu sync.Mutex

	camera    camera.Camera
	orbit     camera.CameraController
	registry  viewpoint.Registry
	raycaster Raycaster
	focus     FocusListener
	bus       bus.Bus
	subs      []bus.Subscription

	policy   reframe.Policy
	timings  Timings
	resolved resolvedTimings
	allow    []string

	current   viewpoint.ID
	target    viewpoint.ID
	render    common.Pose
	freeLook  bool
	inputMode InputMode
	loaded    bool

	viewport reframe.Viewport
	pointer  mgl32.Vec2
	elapsed  time.Duration

	active  *transition
	settle  *settle
	context viewpoint.Context
}

var _ Director = &director{}

// NewDirector creates a Director resting at the loading viewpoint (see WithInitial) and writes
// that pose to the render camera.
//
// Parameters:
//   - cam: the render camera the director owns
//   - registry: the viewpoint table
//   - raycaster: the hit-testable scene
//   - options: optional builder options
//
// Returns:
//   - Director: the new director
func NewDirector(cam camera.Camera, registry viewpoint.Registry, raycaster Raycaster, options ...DirectorBuilderOption) Director {
	d := &director{
		camera:    cam,
		registry:  registry,
		raycaster: raycaster,
		policy:    reframe.DefaultPolicy(),
		timings:   DefaultTimings(),
		allow:     DefaultComputerNames,
		current:   viewpoint.Loading,
		viewport:  reframe.Viewport{Width: 1, Height: 1},
	}
	for _, opt := range options {
		opt(d)
	}
	d.resolved = d.timings.resolve()

	if live, ok := d.registry.Live(d.current); ok {
		d.render = live
	}
	d.camera.SetAspect(d.viewport.Aspect(d.policy.MinDimension))
	d.camera.SetPose(d.render)

	if d.bus != nil {
		d.subs = append(d.subs,
			d.bus.Subscribe(bus.FreeCamToggle, func(e bus.Event) {
				engaged, ok := e.Payload.(bool)
				if !ok {
					log.Warn("ignoring free-cam toggle without bool payload", "payload", e.Payload)
					return
				}
				d.ToggleFreeLook(engaged)
			}),
			d.bus.Subscribe(bus.LoadingScreenDone, func(bus.Event) {
				d.LoadingDone()
			}),
		)
	}
	return d
}

func (d *director) Current() viewpoint.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *director) Target() viewpoint.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}

func (d *director) Transitioning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != nil
}

func (d *director) FreeLook() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.freeLook
}

func (d *director) InputMode() InputMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputMode
}

func (d *director) RenderPose() common.Pose {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render
}

func (d *director) Viewport() reframe.Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

func (d *director) Transition(id viewpoint.ID, duration time.Duration, curve tween.Curve, onComplete func()) {
	d.mu.Lock()
	d.startTransition(id, resolvedTiming{duration: duration, curve: curve}, nil, onComplete)
	d.mu.Unlock()
}

func (d *director) HandlePointerInput(x, y float32, target PointerTarget) {
	d.mu.Lock()
	effects := d.handlePointer(x, y, target)
	d.mu.Unlock()
	run(effects)
}

func (d *director) EnterMonitor() {
	d.mu.Lock()
	effects := d.enterMonitor()
	d.mu.Unlock()
	run(effects)
}

func (d *director) LeaveMonitor() {
	d.mu.Lock()
	effects := d.leaveMonitor()
	d.mu.Unlock()
	run(effects)
}

func (d *director) ToggleFreeLook(engaged bool) {
	d.mu.Lock()
	effects := d.toggleFreeLook(engaged)
	d.mu.Unlock()
	run(effects)
}

func (d *director) LoadingDone() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return
	}
	d.loaded = true
	if d.freeLook || d.target == viewpoint.FreeLookStart {
		log.Debug("loading complete during free-look, release lands on idle")
		return
	}
	log.Debug("loading complete, starting entrance")
	d.startTransition(viewpoint.Idle, d.resolved.loadingDone, nil, nil)
}

func (d *director) SetPointer(x, y float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	nx, ny := common.ScreenToNDC(x, y, d.viewport.Width, d.viewport.Height)
	d.pointer = mgl32.Vec2{mgl32.Clamp(nx, -1, 1), mgl32.Clamp(ny, -1, 1)}
}

func (d *director) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport = reframe.Viewport{Width: width, Height: height}
	d.camera.SetAspect(d.viewport.Aspect(d.policy.MinDimension))

	if d.current == viewpoint.Monitor && d.active == nil && !d.freeLook {
		d.settle = &settle{
			target: viewpoint.Monitor,
			from:   d.render,
			tween: tween.Tween{
				Start:    d.elapsed,
				Duration: d.resolved.resizeSettle.duration,
				Curve:    d.resolved.resizeSettle.curve,
			},
		}
	}
}

func (d *director) Tick(elapsed time.Duration) {
	d.mu.Lock()
	effects := d.tick(elapsed)
	d.mu.Unlock()
	run(effects)
}

func (d *director) Close() {
	d.mu.Lock()
	subs := d.subs
	d.subs = nil
	d.mu.Unlock()

	for _, s := range subs {
		d.bus.Unsubscribe(s)
	}
}

// --- internal state machine; callers hold the mutex ---

// startTransition replaces any in-flight transition with a new one toward id.
func (d *director) startTransition(id viewpoint.ID, timing resolvedTiming, arrive, onComplete func()) {
	if id == viewpoint.None || d.registry.Get(id) == nil {
		log.Warn("ignoring transition to unknown viewpoint", "viewpoint", id)
		return
	}
	if d.freeLook {
		log.Debug("ignoring transition while free-look drives the camera", "viewpoint", id)
		return
	}
	if d.active == nil && d.current == id {
		return
	}
	if d.active != nil {
		log.Debug("transition interrupted", "from", d.active.target, "to", id)
	}

	curve := timing.curve
	if curve == nil {
		curve = tween.QuinticInOut
	}
	d.active = &transition{
		target:     id,
		from:       d.render,
		position:   tween.Tween{Start: d.elapsed, Duration: timing.duration, Curve: curve},
		focal:      tween.Tween{Start: d.elapsed, Duration: timing.duration, Curve: curve},
		arrive:     arrive,
		onComplete: onComplete,
	}
	d.settle = nil
	d.current = viewpoint.None
	d.target = id
	log.Debug("transition started", "to", id, "duration", timing.duration)
}

// atOrTargeting reports whether the camera rests at id or is heading there.
func (d *director) atOrTargeting(id viewpoint.ID) bool {
	return d.current == id || d.target == id
}

func (d *director) handlePointer(x, y float32, target PointerTarget) []func() {
	if target.ignored() || d.freeLook || d.atOrTargeting(viewpoint.FreeLookStart) || d.current == viewpoint.Loading {
		return nil
	}

	ndcX, ndcY := common.ScreenToNDC(x, y, d.viewport.Width, d.viewport.Height)
	ray := d.camera.Ray(ndcX, ndcY)

	computer := false
	if d.raycaster != nil {
		if hit, ok := d.raycaster.Raycast(ray); ok {
			computer = isComputer(hit.Name, d.allow)
			log.Debug("pointer hit", "object", hit.Name, "computer", computer)
		}
	}

	switch {
	case d.atOrTargeting(viewpoint.Monitor) && computer:
		return nil
	case d.atOrTargeting(viewpoint.Monitor):
		return d.leaveMonitor()
	case computer:
		return d.enterMonitor()
	case d.atOrTargeting(viewpoint.Idle):
		d.startTransition(viewpoint.Desk, d.resolved.toggle, nil, nil)
	case d.atOrTargeting(viewpoint.Desk):
		d.startTransition(viewpoint.Idle, d.resolved.toggle, nil, nil)
	}
	return nil
}

func (d *director) enterMonitor() []func() {
	if d.atOrTargeting(viewpoint.Monitor) || d.freeLook {
		return nil
	}
	d.startTransition(viewpoint.Monitor, d.resolved.enterMonitor, nil, nil)
	return d.notify(true, bus.EnterMonitor)
}

func (d *director) leaveMonitor() []func() {
	if d.atOrTargeting(viewpoint.Desk) || d.freeLook {
		return nil
	}
	d.startTransition(viewpoint.Desk, d.resolved.leaveMonitor, nil, nil)
	return d.notify(false, bus.LeftMonitor)
}

// notify builds the deferred focus change and bus event for a monitor enter or leave.
func (d *director) notify(focused bool, topic bus.Topic) []func() {
	var effects []func()
	if d.focus != nil {
		focus := d.focus
		effects = append(effects, func() { focus.SetFocused(focused) })
	}
	if d.bus != nil {
		b := d.bus
		effects = append(effects, func() { b.Publish(bus.Event{Topic: topic}) })
	}
	return effects
}

func (d *director) toggleFreeLook(engaged bool) []func() {
	if engaged {
		if d.freeLook || d.target == viewpoint.FreeLookStart {
			return nil
		}
		var effects []func()
		if d.atOrTargeting(viewpoint.Monitor) {
			effects = d.notify(false, bus.LeftMonitor)
		}
		log.Debug("free-look engaging")
		d.startTransition(viewpoint.FreeLookStart, d.resolved.freeLookEnter, d.engageFreeLook, nil)
		return effects
	}

	if !d.freeLook && d.target != viewpoint.FreeLookStart {
		return nil
	}
	log.Debug("free-look releasing")
	d.freeLook = false
	d.inputMode = InputPassThrough
	d.startTransition(viewpoint.Idle, d.resolved.freeLookExit, nil, nil)
	return nil
}

// engageFreeLook runs when the free-look entrance arrives.
func (d *director) engageFreeLook() {
	start := d.registry.Get(viewpoint.FreeLookStart)
	if start == nil || d.orbit == nil {
		log.Warn("free-look requested without an orbit controller")
		return
	}
	authored := start.Base()
	d.render = authored
	d.orbit.LookFrom(authored.Position, authored.FocalPoint)
	d.freeLook = true
	d.inputMode = InputCapture
	log.Debug("free-look engaged")
}

func (d *director) tick(elapsed time.Duration) []func() {
	d.elapsed = elapsed

	if !d.freeLook {
		d.context = viewpoint.Context{
			Elapsed:  elapsed,
			Pointer:  d.pointer,
			Viewport: d.viewport,
			Narrow:   d.policy.IsNarrow(d.viewport),
			Policy:   &d.policy,
		}
		d.registry.UpdateAll(&d.context)
	}

	effects := d.advance()

	if d.freeLook && d.orbit != nil {
		d.render = d.orbit.Pose()
	} else if d.active == nil && d.settle == nil && d.current != viewpoint.Monitor {
		if live, ok := d.registry.Live(d.current); ok {
			d.render = live
		}
	}

	d.camera.SetPose(d.render)
	return effects
}

// advance moves the in-flight transition and any resize settle forward to d.elapsed.
func (d *director) advance() []func() {
	var effects []func()

	if t := d.active; t != nil {
		live, _ := d.registry.Live(t.target)
		pp, pDone := t.position.Progress(d.elapsed)
		fp, fDone := t.focal.Progress(d.elapsed)
		d.render = common.Pose{
			Position:   tween.Lerp(t.from.Position, live.Position, pp),
			FocalPoint: tween.Lerp(t.from.FocalPoint, live.FocalPoint, fp),
		}

		if pDone && fDone {
			d.render = live
			d.active = nil
			d.current = t.target
			d.target = viewpoint.None
			log.Debug("transition complete", "at", t.target)
			if t.arrive != nil {
				t.arrive()
			}
			if t.onComplete != nil {
				effects = append(effects, t.onComplete)
			}
		}
	}

	if s := d.settle; s != nil {
		if d.active != nil || d.current != s.target {
			d.settle = nil
			return effects
		}
		live, _ := d.registry.Live(s.target)
		p, done := s.tween.Progress(d.elapsed)
		d.render = common.Pose{
			Position:   tween.Lerp(s.from.Position, live.Position, p),
			FocalPoint: tween.Lerp(s.from.FocalPoint, live.FocalPoint, p),
		}
		if done {
			d.render = live
			d.settle = nil
		}
	}
	return effects
}

func run(effects []func()) {
	for _, f := range effects {
		f()
	}
}
