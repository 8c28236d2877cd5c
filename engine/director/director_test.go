package director

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/bus"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
	"github.com/Carmen-Shannon/oxy-desk/engine/tween"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
)

const frame = 16 * time.Millisecond

type stubRaycaster struct {
	hit scene.Hit
	ok  bool
}

func (s *stubRaycaster) Raycast(common.Ray) (scene.Hit, bool) {
	return s.hit, s.ok
}

func (s *stubRaycaster) set(name string) {
	if name == "" {
		s.hit, s.ok = scene.Hit{}, false
		return
	}
	s.hit, s.ok = scene.Hit{Name: name, Distance: 100}, true
}

type focusRecorder struct {
	calls []bool
}

func (f *focusRecorder) SetFocused(focused bool) {
	f.calls = append(f.calls, focused)
}

type harness struct {
	d        Director
	cam      camera.Camera
	orbit    camera.CameraController
	registry viewpoint.Registry
	ray      *stubRaycaster
	bus      bus.Bus
	focus    *focusRecorder
	enter    int
	left     int
	now      time.Duration
}

func newHarness(options ...DirectorBuilderOption) *harness {
	h := &harness{
		cam:      camera.NewCamera(),
		orbit:    camera.NewCameraController(camera.WithRadiusBounds(5000, 40000)),
		registry: viewpoint.NewRegistry(viewpoint.DefaultTuning(), reframe.DefaultPolicy()),
		ray:      &stubRaycaster{},
		bus:      bus.NewBus(),
		focus:    &focusRecorder{},
	}
	h.bus.Subscribe(bus.EnterMonitor, func(bus.Event) { h.enter++ })
	h.bus.Subscribe(bus.LeftMonitor, func(bus.Event) { h.left++ })

	base := []DirectorBuilderOption{
		WithOrbitController(h.orbit),
		WithFocusListener(h.focus),
		WithBus(h.bus),
		WithViewport(1920, 1080),
	}
	h.d = NewDirector(h.cam, h.registry, h.ray, append(base, options...)...)
	h.d.Tick(0)
	return h
}

// advance ticks in frame steps until now+d, always landing exactly on the end time.
func (h *harness) advance(d time.Duration) {
	end := h.now + d
	for h.now+frame < end {
		h.now += frame
		h.d.Tick(h.now)
	}
	h.now = end
	h.d.Tick(h.now)
}

func (h *harness) click(name string) {
	h.ray.set(name)
	h.d.HandlePointerInput(960, 540, PointerTarget{Kind: TargetCanvas})
}

func (h *harness) live(id viewpoint.ID) common.Pose {
	p, _ := h.registry.Live(id)
	return p
}

func TestTransition_ToCurrentIsNoop(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	before := h.d.RenderPose()

	called := false
	h.d.Transition(viewpoint.Idle, time.Second, tween.QuinticInOut, func() { called = true })

	if h.d.Transitioning() {
		t.Error("expected no transition to start")
	}
	if h.d.Target() != viewpoint.None {
		t.Errorf("expected no target, got %s", h.d.Target())
	}
	if h.d.RenderPose() != before {
		t.Errorf("expected render pose unchanged, got %v", h.d.RenderPose())
	}
	h.advance(2 * time.Second)
	if called {
		t.Error("expected onComplete not to run for a no-op transition")
	}
}

func TestTransition_LastRequestWins(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))

	aDone, bDone := 0, 0
	h.d.Transition(viewpoint.Desk, time.Second, tween.QuinticInOut, func() { aDone++ })
	h.advance(300 * time.Millisecond)
	h.d.Transition(viewpoint.Monitor, time.Second, tween.ExpoOut, func() { bDone++ })

	if h.d.Current() != viewpoint.None || h.d.Target() != viewpoint.Monitor {
		t.Fatalf("expected (none, monitor) mid-transition, got (%s, %s)", h.d.Current(), h.d.Target())
	}
	h.advance(2 * time.Second)

	if h.d.Current() != viewpoint.Monitor {
		t.Errorf("expected to end at monitor, got %s", h.d.Current())
	}
	if h.d.RenderPose() != h.live(viewpoint.Monitor) {
		t.Errorf("expected monitor pose %v, got %v", h.live(viewpoint.Monitor), h.d.RenderPose())
	}
	if aDone != 0 || bDone != 1 {
		t.Errorf("expected only the second callback once, got first=%d second=%d", aDone, bDone)
	}
}

func TestTransition_StartsFromRenderPose(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.advance(100 * time.Millisecond)
	start := h.d.RenderPose()

	h.d.Transition(viewpoint.Loading, time.Second, tween.QuinticInOut, nil)
	h.d.Tick(h.now)
	if h.d.RenderPose() != start {
		t.Errorf("expected zero progress to keep the pose %v, got %v", start, h.d.RenderPose())
	}
}

func TestTransition_UnknownViewpointIgnored(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.d.Transition("kitchen", time.Second, nil, nil)
	h.d.Transition(viewpoint.None, time.Second, nil, nil)
	if h.d.Transitioning() || h.d.Current() != viewpoint.Idle {
		t.Errorf("expected to stay at idle, got current=%s transitioning=%v", h.d.Current(), h.d.Transitioning())
	}
}

func TestPointer_ComputerFromDeskEntersOnce(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))

	h.click("computer-screen-hitbox")
	h.click("computer-screen-hitbox")

	if h.enter != 1 || h.left != 0 {
		t.Errorf("expected enter=1 left=0, got enter=%d left=%d", h.enter, h.left)
	}
	if h.d.Target() != viewpoint.Monitor {
		t.Errorf("expected target monitor, got %s", h.d.Target())
	}
	if len(h.focus.calls) != 1 || !h.focus.calls[0] {
		t.Errorf("expected one focus=true call, got %v", h.focus.calls)
	}
}

func TestPointer_BackgroundFromMonitorLeaves(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Monitor))

	h.click("wall-01")

	if h.left != 1 || h.enter != 0 {
		t.Errorf("expected left=1 enter=0, got left=%d enter=%d", h.left, h.enter)
	}
	if h.d.Target() != viewpoint.Desk {
		t.Errorf("expected target desk, got %s", h.d.Target())
	}
	if len(h.focus.calls) != 1 || h.focus.calls[0] {
		t.Errorf("expected one focus=false call, got %v", h.focus.calls)
	}
}

func TestPointer_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		initial    viewpoint.ID
		hit        string
		wantTarget viewpoint.ID
		wantEnter  int
		wantLeft   int
	}{
		{"monitor, computer hit stays", viewpoint.Monitor, "monitor-bezel", viewpoint.None, 0, 0},
		{"monitor, nothing hit leaves", viewpoint.Monitor, "", viewpoint.Desk, 0, 1},
		{"idle, computer hit enters", viewpoint.Idle, "Computer_Stand", viewpoint.Monitor, 1, 0},
		{"idle, background toggles to desk", viewpoint.Idle, "wall-01", viewpoint.Desk, 0, 0},
		{"desk, background toggles to idle", viewpoint.Desk, "", viewpoint.Idle, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(WithInitial(tt.initial))
			h.click(tt.hit)
			if h.d.Target() != tt.wantTarget {
				t.Errorf("expected target %s, got %s", tt.wantTarget, h.d.Target())
			}
			if h.enter != tt.wantEnter || h.left != tt.wantLeft {
				t.Errorf("expected enter=%d left=%d, got enter=%d left=%d", tt.wantEnter, tt.wantLeft, h.enter, h.left)
			}
		})
	}
}

func TestPointer_TargetingMonitorBackgroundLeaves(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	h.click("computer-screen-hitbox")
	h.advance(500 * time.Millisecond)
	h.click("wall-01")

	if h.enter != 1 || h.left != 1 {
		t.Errorf("expected enter=1 left=1, got enter=%d left=%d", h.enter, h.left)
	}
	if h.d.Target() != viewpoint.Desk {
		t.Errorf("expected target desk, got %s", h.d.Target())
	}
}

func TestPointer_TargetingIdleBackgroundTogglesToDesk(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	h.click("")
	if h.d.Target() != viewpoint.Idle {
		t.Fatalf("expected target idle, got %s", h.d.Target())
	}
	h.advance(200 * time.Millisecond)
	h.click("")
	if h.d.Target() != viewpoint.Desk {
		t.Errorf("expected target desk, got %s", h.d.Target())
	}
}

func TestPointer_IgnoredTargets(t *testing.T) {
	kinds := []TargetKind{TargetEmbeddedFrame, TargetButton, TargetLink, TargetNonInteractive}
	for _, k := range kinds {
		h := newHarness(WithInitial(viewpoint.Desk))
		h.ray.set("computer-screen-hitbox")
		h.d.HandlePointerInput(10, 10, PointerTarget{Kind: k})
		if h.enter != 0 || h.d.Transitioning() {
			t.Errorf("kind %d: expected input to be ignored", k)
		}
	}
}

func TestPointer_IgnoredWhileLoading(t *testing.T) {
	h := newHarness()
	h.click("computer-screen-hitbox")
	if h.enter != 0 || h.d.Current() != viewpoint.Loading {
		t.Errorf("expected loading camera to ignore clicks, got enter=%d current=%s", h.enter, h.d.Current())
	}
}

func TestPointer_IgnoredInFreeLook(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.d.ToggleFreeLook(true)
	h.advance(time.Second)
	h.click("computer-screen-hitbox")
	if h.enter != 0 || h.d.Transitioning() {
		t.Errorf("expected free-look to ignore clicks, got enter=%d", h.enter)
	}
}

func TestEnterMonitor_Timing(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	h.d.EnterMonitor()
	h.advance(1990 * time.Millisecond)
	if h.d.Current() == viewpoint.Monitor {
		t.Fatal("expected enter transition to take 2000ms")
	}
	h.advance(10 * time.Millisecond)
	if h.d.Current() != viewpoint.Monitor {
		t.Errorf("expected monitor after 2000ms, got %s", h.d.Current())
	}
	h.d.EnterMonitor()
	if h.enter != 1 {
		t.Errorf("expected repeated enter to be a no-op, got %d events", h.enter)
	}
}

func TestLeaveMonitor_NoopAtDesk(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	h.d.LeaveMonitor()
	if h.left != 0 || h.d.Transitioning() {
		t.Errorf("expected no-op at desk, got left=%d", h.left)
	}
}

func TestIdle_DeterministicAcrossDirectors(t *testing.T) {
	a := newHarness(WithInitial(viewpoint.Idle))
	b := newHarness(WithInitial(viewpoint.Idle))
	for i := 0; i < 300; i++ {
		a.advance(frame)
		b.advance(frame)
		if a.d.RenderPose() != b.d.RenderPose() {
			t.Fatalf("tick %d: expected identical poses, got %v and %v", i, a.d.RenderPose(), b.d.RenderPose())
		}
	}
	if a.d.RenderPose() != a.live(viewpoint.Idle) {
		t.Error("expected resting idle camera to follow the idle live pose")
	}
}

func TestEndToEnd_LoadingScreenDone(t *testing.T) {
	h := newHarness()
	if h.d.Current() != viewpoint.Loading {
		t.Fatalf("expected initial loading viewpoint, got %s", h.d.Current())
	}
	h.advance(100 * time.Millisecond)

	h.bus.Publish(bus.Event{Topic: bus.LoadingScreenDone})
	if h.d.Target() != viewpoint.Idle {
		t.Fatalf("expected target idle, got %s", h.d.Target())
	}
	h.advance(2500 * time.Millisecond)

	if h.d.Current() != viewpoint.Idle {
		t.Errorf("expected idle after 2500ms, got %s", h.d.Current())
	}
	if h.d.RenderPose() != h.live(viewpoint.Idle) {
		t.Errorf("expected render pose %v, got %v", h.live(viewpoint.Idle), h.d.RenderPose())
	}
	if h.cam.Pose() != h.d.RenderPose() {
		t.Errorf("expected camera pose to match render pose")
	}

	h.d.Transition(viewpoint.Desk, 0, nil, nil)
	h.advance(frame)
	h.bus.Publish(bus.Event{Topic: bus.LoadingScreenDone})
	if h.d.Transitioning() {
		t.Error("expected a second loading signal to be ignored")
	}
}

func TestEndToEnd_FreeCamToggle(t *testing.T) {
	tuning := viewpoint.DefaultTuning()
	h := newHarness(WithInitial(viewpoint.Idle))

	h.bus.Publish(bus.Event{Topic: bus.FreeCamToggle, Payload: true})
	h.advance(750 * time.Millisecond)

	if !h.d.FreeLook() {
		t.Fatal("expected free-look engaged after 750ms")
	}
	if h.d.InputMode() != InputCapture {
		t.Errorf("expected capture input mode, got %s", h.d.InputMode())
	}
	if h.d.RenderPose() != tuning.FreeLookStart {
		t.Errorf("expected render pose %v, got %v", tuning.FreeLookStart, h.d.RenderPose())
	}
	if h.cam.Pose() != tuning.FreeLookStart {
		t.Errorf("expected camera at %v, got %v", tuning.FreeLookStart, h.cam.Pose())
	}

	h.orbit.Drag(120, 0)
	h.advance(frame)
	if h.d.RenderPose() != h.orbit.Pose() {
		t.Error("expected free-look camera to follow the orbit controller")
	}

	h.bus.Publish(bus.Event{Topic: bus.FreeCamToggle, Payload: false})
	if h.d.FreeLook() || h.d.InputMode() != InputPassThrough {
		t.Error("expected free-look released immediately")
	}
	h.advance(4000 * time.Millisecond)

	if h.d.Current() != viewpoint.Idle {
		t.Errorf("expected idle after 4000ms, got %s", h.d.Current())
	}
	if h.d.FreeLook() {
		t.Error("expected free-look disengaged")
	}
}

func TestFreeLook_ReleaseDuringEntrance(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.d.ToggleFreeLook(true)
	h.advance(300 * time.Millisecond)
	h.d.ToggleFreeLook(false)
	h.advance(5 * time.Second)

	if h.d.FreeLook() || h.d.Current() != viewpoint.Idle {
		t.Errorf("expected idle without free-look, got current=%s freeLook=%v", h.d.Current(), h.d.FreeLook())
	}
}

func TestFreeLook_LoadingDoneWhileEngagedEasesOnRelease(t *testing.T) {
	h := newHarness()
	h.d.ToggleFreeLook(true)
	h.advance(750 * time.Millisecond)
	if !h.d.FreeLook() {
		t.Fatal("expected free-look engaged after 750ms")
	}

	h.d.LoadingDone()
	h.advance(2500 * time.Millisecond)
	if h.d.Current() != viewpoint.FreeLookStart || !h.d.FreeLook() {
		t.Fatalf("expected free-look to keep the camera, got current=%s freeLook=%v", h.d.Current(), h.d.FreeLook())
	}

	before := h.d.RenderPose()
	h.d.ToggleFreeLook(false)
	if !h.d.Transitioning() || h.d.Target() != viewpoint.Idle {
		t.Fatalf("expected a transition to idle, got transitioning=%v target=%s", h.d.Transitioning(), h.d.Target())
	}
	h.advance(frame)
	if jump := h.d.RenderPose().Position.Sub(before.Position).Len(); jump > 1000 {
		t.Errorf("expected release to ease out, got a %.1f unit jump in one frame", jump)
	}

	h.advance(4000 * time.Millisecond)
	if h.d.Current() != viewpoint.Idle {
		t.Errorf("expected idle after 4000ms, got %s", h.d.Current())
	}

	h.d.LoadingDone()
	if h.d.Transitioning() {
		t.Error("expected a second loading signal to be ignored")
	}
}

func TestFreeLook_LoadingDoneDuringEntranceKeepsEntrance(t *testing.T) {
	h := newHarness()
	h.d.ToggleFreeLook(true)
	h.advance(300 * time.Millisecond)
	h.d.LoadingDone()

	if h.d.Target() != viewpoint.FreeLookStart {
		t.Errorf("expected entrance toward free-look-start, got %s", h.d.Target())
	}
	h.advance(time.Second)
	if !h.d.FreeLook() {
		t.Error("expected free-look engaged")
	}
}

func TestFreeLook_TransitionRefusedWhileEngaged(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.d.ToggleFreeLook(true)
	h.advance(750 * time.Millisecond)

	h.d.Transition(viewpoint.Desk, time.Second, nil, nil)
	if h.d.Transitioning() || h.d.Current() != viewpoint.FreeLookStart {
		t.Errorf("expected transition refused in free-look, got transitioning=%v current=%s", h.d.Transitioning(), h.d.Current())
	}
}

func TestFreeLook_FromMonitorDropsFocus(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Monitor))
	h.d.ToggleFreeLook(true)
	if h.left != 1 {
		t.Errorf("expected left monitor event, got %d", h.left)
	}
	if len(h.focus.calls) != 1 || h.focus.calls[0] {
		t.Errorf("expected focus=false, got %v", h.focus.calls)
	}
}

func TestFreeCamToggle_NonBoolPayloadIgnored(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Idle))
	h.bus.Publish(bus.Event{Topic: bus.FreeCamToggle, Payload: "yes"})
	if h.d.Transitioning() {
		t.Error("expected malformed toggle to be ignored")
	}
}

func TestResize_SettlesMonitorToReframedPose(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Monitor))
	h.advance(frame)
	wide := h.d.RenderPose()

	h.d.Resize(390, 844)
	h.advance(frame)
	mid := h.d.RenderPose()
	narrow := h.live(viewpoint.Monitor)

	if mid == narrow {
		t.Error("expected the reframe to ease rather than snap")
	}
	if mid.Position.Z() < wide.Position.Z() {
		t.Errorf("expected camera to start moving back, got z=%v from %v", mid.Position.Z(), wide.Position.Z())
	}

	h.advance(600 * time.Millisecond)
	if h.d.RenderPose() != narrow {
		t.Errorf("expected reframed pose %v, got %v", narrow, h.d.RenderPose())
	}
	if h.d.Current() != viewpoint.Monitor {
		t.Errorf("expected to remain at monitor, got %s", h.d.Current())
	}
	if got := h.cam.Aspect(); got != float32(390)/float32(844) {
		t.Errorf("expected camera aspect updated, got %v", got)
	}
}

func TestResize_TransitionFollowsReframedTarget(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	h.d.EnterMonitor()
	h.advance(500 * time.Millisecond)
	h.d.Resize(390, 844)
	h.advance(2 * time.Second)

	if h.d.RenderPose() != h.live(viewpoint.Monitor) {
		t.Errorf("expected arrival at the reframed monitor pose, got %v", h.d.RenderPose())
	}
}

func TestSetPointer_DrivesDeskParallax(t *testing.T) {
	h := newHarness(WithInitial(viewpoint.Desk))
	rest := h.d.RenderPose()
	h.d.SetPointer(1920, 0)
	h.advance(time.Second)
	if h.d.RenderPose().Position.X() <= rest.Position.X() {
		t.Errorf("expected camera to drift right, got %v from %v", h.d.RenderPose().Position, rest.Position)
	}
}

func TestClose_Unsubscribes(t *testing.T) {
	h := newHarness()
	h.d.Close()
	if h.bus.Count(bus.FreeCamToggle) != 0 || h.bus.Count(bus.LoadingScreenDone) != 0 {
		t.Error("expected director subscriptions removed")
	}
}

func TestTimings_UnknownCurveFallsBack(t *testing.T) {
	timings := DefaultTimings()
	timings.Toggle.Curve = "bounce"
	h := newHarness(WithInitial(viewpoint.Idle), WithTimings(timings))
	h.click("")
	h.advance(timings.Toggle.Duration)
	if h.d.Current() != viewpoint.Desk {
		t.Errorf("expected toggle to complete with a fallback curve, got %s", h.d.Current())
	}
}
