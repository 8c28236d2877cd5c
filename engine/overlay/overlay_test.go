package overlay

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

var testViewport = reframe.Viewport{Width: 1600, Height: 900}

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// facingCamera returns a camera on the screen normal at the given distance, looking at the screen center.
func facingCamera(distance float32) camera.Camera {
	g := DefaultGeometry()
	probe := scene.NewQuad("probe", g.Position, g.Rotation(), 1, 1)
	return camera.NewCamera(
		camera.WithAspect(testViewport.Aspect(1)),
		camera.WithPose(common.Pose{
			Position:   g.Position.Add(probe.Normal().Mul(distance)),
			FocalPoint: g.Position,
		}),
	)
}

func TestNewOverlay_RegistersHitPlane(t *testing.T) {
	sc := scene.NewScene()
	o := NewOverlay(facingCamera(2000), sc)

	if sc.Get(HitPlaneName) == nil {
		t.Fatal("expected hit plane registered in the scene")
	}
	if sc.Count() != 1 {
		t.Errorf("expected only the hit plane in the scene, got %d objects", sc.Count())
	}
	w, h := o.HitPlane().Size()
	g := DefaultGeometry()
	if w != g.ScreenWidth || h != g.ScreenHeight {
		t.Errorf("expected hit plane %vx%v, got %vx%v", g.ScreenWidth, g.ScreenHeight, w, h)
	}
}

func TestSurfaces_AreStable(t *testing.T) {
	o := NewOverlay(facingCamera(2000), nil)
	hit, dim, wells := o.HitPlane(), o.DimPlane(), o.LightWells()
	for i := 0; i < 5; i++ {
		o.Update(time.Duration(i)*time.Second, testViewport)
	}
	if o.HitPlane() != hit || o.DimPlane() != dim || o.LightWells() != wells {
		t.Error("expected surfaces to be created once and never replaced")
	}
}

func TestDimPlane_InFrontOfLayers(t *testing.T) {
	g := DefaultGeometry()
	o := NewOverlay(facingCamera(2000), nil)
	offset := o.DimPlane().Center().Sub(g.Position).Dot(o.HitPlane().Normal())
	if !approx(offset, g.MaxDepth(), 1e-3) {
		t.Errorf("expected dim plane at depth %v, got %v", g.MaxDepth(), offset)
	}
}

func TestLightWells_SpanMaxDepth(t *testing.T) {
	g := DefaultGeometry()
	o := NewOverlay(facingCamera(2000), nil)
	normal := o.HitPlane().Normal()

	for _, well := range o.LightWells() {
		lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
		for _, c := range well.Corners() {
			d := c.Sub(g.Position).Dot(normal)
			lo, hi = min(lo, d), max(hi, d)
		}
		if !approx(lo, 0, 1e-2) || !approx(hi, g.MaxDepth(), 1e-2) {
			t.Errorf("%s: expected depth span [0, %v], got [%v, %v]", well.Name(), g.MaxDepth(), lo, hi)
		}
	}
}

func TestDimOpacity_GrowsWithDistance(t *testing.T) {
	near := NewOverlay(facingCamera(1000), nil)
	far := NewOverlay(facingCamera(20000), nil)
	near.Update(0, testViewport)
	far.Update(0, testViewport)

	if near.DimOpacity() >= far.DimOpacity() {
		t.Errorf("expected farther camera to dim more, got near=%v far=%v", near.DimOpacity(), far.DimOpacity())
	}
}

func TestDimOpacity_GrowsWithMisalignment(t *testing.T) {
	g := DefaultGeometry()
	straight := NewOverlay(facingCamera(3000), nil)

	oblique := camera.NewCamera(camera.WithPose(common.Pose{
		Position:   g.Position.Add(mgl32.Vec3{2500, 0, 1650}),
		FocalPoint: g.Position,
	}))
	tilted := NewOverlay(oblique, nil)

	straight.Update(0, testViewport)
	tilted.Update(0, testViewport)
	if straight.DimOpacity() >= tilted.DimOpacity() {
		t.Errorf("expected oblique view to dim more, got straight=%v oblique=%v", straight.DimOpacity(), tilted.DimOpacity())
	}
	if o := tilted.DimOpacity(); o < 0 || o > g.DimMax {
		t.Errorf("expected opacity within [0, %v], got %v", g.DimMax, o)
	}
}

func TestFootprint_CenteredWhenFacing(t *testing.T) {
	o := NewOverlay(facingCamera(2500), nil)
	o.Update(0, testViewport)

	rect, ok := o.Footprint()
	if !ok {
		t.Fatal("expected a footprint")
	}
	cx, cy := rect.X+rect.Width/2, rect.Y+rect.Height/2
	if !approx(cx, 800, 1) || !approx(cy, 450, 1) {
		t.Errorf("expected footprint centered at (800,450), got (%v,%v)", cx, cy)
	}
	if !o.Visible() {
		t.Error("expected screen visible")
	}
}

func TestFootprint_BehindCamera(t *testing.T) {
	g := DefaultGeometry()
	away := camera.NewCamera(camera.WithPose(common.Pose{
		Position:   g.Position.Add(mgl32.Vec3{0, 0, 2000}),
		FocalPoint: g.Position.Add(mgl32.Vec3{0, 0, 5000}),
	}))
	o := NewOverlay(away, nil)
	o.Update(0, testViewport)

	if _, ok := o.Footprint(); ok {
		t.Error("expected no footprint for a screen behind the camera")
	}
	if o.Visible() {
		t.Error("expected screen outside the frustum")
	}
	err := o.HandleMessage([]byte(`{"type":"mousedown","clientX":10,"clientY":10}`))
	if !errors.Is(err, ErrNotOnScreen) {
		t.Errorf("expected ErrNotOnScreen, got %v", err)
	}
}

func TestCaptures_OnlyWhileFocused(t *testing.T) {
	o := NewOverlay(facingCamera(2500), nil)
	o.Update(0, testViewport)

	if o.Captures(800, 450) {
		t.Error("expected unfocused screen to leave presses to the director")
	}
	o.SetFocused(true)
	if !o.Captures(800, 450) {
		t.Error("expected focused screen to capture presses inside its footprint")
	}
	if o.Captures(1, 1) {
		t.Error("expected presses outside the footprint to pass through")
	}
}

func TestPressBack(t *testing.T) {
	leaves := 0
	o := NewOverlay(facingCamera(2000), nil, WithLeaveHook(func() { leaves++ }))

	if o.BackVisible() {
		t.Error("expected back control hidden while unfocused")
	}
	if o.PressBack() {
		t.Error("expected unfocused press not to be consumed")
	}

	o.SetFocused(true)
	if !o.BackVisible() {
		t.Error("expected back control visible while focused")
	}
	if !o.PressBack() {
		t.Error("expected focused press to be consumed")
	}
	if leaves != 1 {
		t.Errorf("expected one leave request, got %d", leaves)
	}
}

func TestHandleMessage_ScalesIntoFootprint(t *testing.T) {
	var got []NativeEvent
	o := NewOverlay(facingCamera(2500), nil, WithDispatcher(DispatcherFunc(func(e NativeEvent) {
		got = append(got, e)
	})))
	o.Update(0, testViewport)
	rect, _ := o.Footprint()
	cw, ch := DefaultGeometry().ContentSize()

	msgs := []string{
		`{"type":"mousedown","clientX":0,"clientY":0}`,
		`{"type":"mousemove","clientX":` + ftoa(cw) + `,"clientY":` + ftoa(ch) + `}`,
		`{"type":"mouseup","clientX":` + ftoa(cw/2) + `,"clientY":` + ftoa(ch/2) + `}`,
	}
	for _, m := range msgs {
		if err := o.HandleMessage([]byte(m)); err != nil {
			t.Fatalf("HandleMessage(%s): %v", m, err)
		}
	}

	want := [][2]float32{
		{rect.X, rect.Y},
		{rect.X + rect.Width, rect.Y + rect.Height},
		{rect.X + rect.Width/2, rect.Y + rect.Height/2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if !approx(got[i].X, w[0], 1e-2) || !approx(got[i].Y, w[1], 1e-2) {
			t.Errorf("event %d: expected (%v,%v), got (%v,%v)", i, w[0], w[1], got[i].X, got[i].Y)
		}
	}
	if got[0].Type != TypeMouseDown || got[1].Type != TypeMouseMove || got[2].Type != TypeMouseUp {
		t.Errorf("expected types preserved, got %v %v %v", got[0].Type, got[1].Type, got[2].Type)
	}
}

func TestHandleMessage_KeysNeedNoFootprint(t *testing.T) {
	var got []NativeEvent
	o := NewOverlay(facingCamera(2500), nil, WithDispatcher(DispatcherFunc(func(e NativeEvent) {
		got = append(got, e)
	})))

	if err := o.HandleMessage([]byte(`{"type":"keydown","key":"Enter"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Key != "Enter" || got[0].Type != TypeKeyDown {
		t.Errorf("expected one keydown Enter, got %v", got)
	}
}

func TestHandleMessage_Rejects(t *testing.T) {
	dispatched := 0
	o := NewOverlay(facingCamera(2500), nil, WithDispatcher(DispatcherFunc(func(NativeEvent) { dispatched++ })))
	o.Update(0, testViewport)

	for _, m := range []string{`{"type":`, `{"type":"wheel","clientX":1}`, `{}`} {
		if err := o.HandleMessage([]byte(m)); err == nil {
			t.Errorf("expected error for %s", m)
		}
	}
	if dispatched != 0 {
		t.Errorf("expected nothing dispatched, got %d", dispatched)
	}
}

func TestContentProbe_RetriesOnInterval(t *testing.T) {
	calls := 0
	o := NewOverlay(facingCamera(2000), nil, WithContentProbe(func() bool {
		calls++
		return calls == 3
	}))

	for _, ms := range []int{0, 40, 80, 100, 150, 199} {
		o.Update(time.Duration(ms)*time.Millisecond, testViewport)
	}
	if calls != 2 || o.ContentReady() {
		t.Fatalf("expected 2 probes and not ready, got %d probes ready=%v", calls, o.ContentReady())
	}

	o.Update(200*time.Millisecond, testViewport)
	if !o.ContentReady() {
		t.Fatal("expected content ready after third probe")
	}
	o.Update(time.Second, testViewport)
	if calls != 3 {
		t.Errorf("expected probing to stop once ready, got %d probes", calls)
	}
}

func TestContentProbe_DefaultReady(t *testing.T) {
	if !NewOverlay(facingCamera(2000), nil).ContentReady() {
		t.Error("expected content ready without a probe")
	}
}
