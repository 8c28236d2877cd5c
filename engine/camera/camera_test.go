package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestCamera_RayThroughCenterFollowsForward(t *testing.T) {
	c := NewCamera(WithPose(common.Pose{
		Position:   mgl32.Vec3{0, 1000, 5000},
		FocalPoint: mgl32.Vec3{0, 500, 0},
	}))

	ray := c.Ray(0, 0)
	if !ray.Direction.ApproxEqualThreshold(c.Forward(), 1e-4) {
		t.Errorf("expected center ray along %v, got %v", c.Forward(), ray.Direction)
	}
	if ray.Origin != c.Pose().Position {
		t.Errorf("expected ray origin at the camera, got %v", ray.Origin)
	}
}

func TestCamera_RayHitsProjectedPoint(t *testing.T) {
	vp := reframe.Viewport{Width: 1280, Height: 720}
	c := NewCamera(
		WithAspect(vp.Aspect(1)),
		WithPose(common.Pose{Position: mgl32.Vec3{300, 800, 4000}, FocalPoint: mgl32.Vec3{0, 0, 0}}),
	)

	target := mgl32.Vec3{250, -120, 40}
	x, y, ok := c.Project(target, vp)
	if !ok {
		t.Fatal("expected point in front of the camera")
	}
	ndcX, ndcY := common.ScreenToNDC(x, y, vp.Width, vp.Height)
	ray := c.Ray(ndcX, ndcY)

	// The ray must pass within a small distance of the projected point.
	toTarget := target.Sub(ray.Origin)
	along := toTarget.Dot(ray.Direction)
	miss := toTarget.Sub(ray.Direction.Mul(along)).Len()
	if miss > 1 {
		t.Errorf("expected ray through %v, missed by %v", target, miss)
	}
}

func TestCamera_ProjectBehindCamera(t *testing.T) {
	c := NewCamera(WithPose(common.Pose{Position: mgl32.Vec3{0, 0, 10}, FocalPoint: mgl32.Vec3{0, 0, 0}}))
	if _, _, ok := c.Project(mgl32.Vec3{0, 0, 500}, reframe.Viewport{Width: 100, Height: 100}); ok {
		t.Error("expected point behind the camera to be rejected")
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	c := NewCamera(WithPose(common.Pose{Position: mgl32.Vec3{0, 0, 1000}, FocalPoint: mgl32.Vec3{}}))
	x, y, ok := c.Project(mgl32.Vec3{}, reframe.Viewport{Width: 800, Height: 800})
	if !ok || !approx(x, 400, 1e-2) || !approx(y, 400, 1e-2) {
		t.Errorf("expected (400,400), got (%v,%v,%v)", x, y, ok)
	}
}

func TestCamera_SetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	c.SetAspect(0)
	c.SetAspect(-2)
	if c.Aspect() != 1.5 {
		t.Errorf("expected aspect 1.5, got %v", c.Aspect())
	}
}

func TestCamera_FrustumContainsFocalPoint(t *testing.T) {
	c := NewCamera(WithPose(common.Pose{Position: mgl32.Vec3{0, 0, 5000}, FocalPoint: mgl32.Vec3{0, 100, 0}}))
	f := c.Frustum()
	if !f.ContainsPoint(mgl32.Vec3{0, 100, 0}) {
		t.Error("expected focal point inside frustum")
	}
	if f.ContainsPoint(mgl32.Vec3{0, 0, 9000}) {
		t.Error("expected point behind camera outside frustum")
	}
}

func TestController_LookFromKeepsExactPose(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(5000, 40000))
	pos := mgl32.Vec3{-15000, 12000, 15000}
	cc.LookFrom(pos, mgl32.Vec3{})

	if cc.Position() != pos {
		t.Errorf("expected position %v, got %v", pos, cc.Position())
	}
	if cc.Target() != (mgl32.Vec3{}) {
		t.Errorf("expected target origin, got %v", cc.Target())
	}
	if !approx(cc.Radius(), pos.Len(), 1e-1) {
		t.Errorf("expected radius %v, got %v", pos.Len(), cc.Radius())
	}

	// Re-deriving position from the spherical coordinates must land on the same point.
	cc.SetAzimuth(cc.Azimuth())
	if !cc.Position().ApproxEqualThreshold(pos, 1) {
		t.Errorf("expected spherical round trip to %v, got %v", pos, cc.Position())
	}
}

func TestController_DragClampsElevation(t *testing.T) {
	cc := NewCameraController()
	cc.Drag(0, 1e6)
	if cc.Elevation() != cc.MaxElevation() {
		t.Errorf("expected elevation clamped to %v, got %v", cc.MaxElevation(), cc.Elevation())
	}
	cc.Drag(0, -1e6)
	if cc.Elevation() != cc.MinElevation() {
		t.Errorf("expected elevation clamped to %v, got %v", cc.MinElevation(), cc.Elevation())
	}

	before := cc.Azimuth()
	cc.Drag(100, 0)
	want := before - 100*cc.MouseSensitivity()
	if !approx(cc.Azimuth(), want, 1e-6) {
		t.Errorf("expected azimuth %v, got %v", want, cc.Azimuth())
	}
}

func TestController_ZoomClampsRadius(t *testing.T) {
	cc := NewCameraController(WithRadius(1000), WithRadiusBounds(500, 2000), WithZoomSpeed(100))
	cc.Zoom(100)
	if cc.Radius() != 500 {
		t.Errorf("expected radius 500, got %v", cc.Radius())
	}
	cc.Zoom(-100)
	if cc.Radius() != 2000 {
		t.Errorf("expected radius 2000, got %v", cc.Radius())
	}
}

func TestController_PanPreservesOffset(t *testing.T) {
	cc := NewCameraController(WithTarget(mgl32.Vec3{10, 20, 30}), WithPanSpeed(1))
	offset := cc.Position().Sub(cc.Target())
	cc.PanRight(250)
	cc.PanUp(-40)
	cc.PanForward(75)
	got := cc.Position().Sub(cc.Target())
	if !got.ApproxEqualThreshold(offset, 1e-2) {
		t.Errorf("expected pan to preserve offset %v, got %v", offset, got)
	}
	if cc.Target() == (mgl32.Vec3{10, 20, 30}) {
		t.Error("expected target to move")
	}
}

func TestController_Pose(t *testing.T) {
	cc := NewCameraController()
	p := cc.Pose()
	if p.Position != cc.Position() || p.FocalPoint != cc.Target() {
		t.Errorf("expected pose to mirror position and target, got %v", p)
	}
}

func TestControllerOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		options   []CameraControllerOption
		minRadius float32
		maxRadius float32
		radius    float32
	}{
		{"swapped bounds", []CameraControllerOption{WithRadiusBounds(40000, 5000)}, 5000, 40000, 20000},
		{"non-positive bounds ignored", []CameraControllerOption{WithRadiusBounds(0, 100)}, 2000, 60000, 20000},
		{"radius clamped", []CameraControllerOption{WithRadius(100), WithRadiusBounds(500, 900)}, 500, 900, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(tt.options...)
			if cc.MinRadius() != tt.minRadius || cc.MaxRadius() != tt.maxRadius {
				t.Errorf("expected bounds %v..%v, got %v..%v", tt.minRadius, tt.maxRadius, cc.MinRadius(), cc.MaxRadius())
			}
			if cc.Radius() != tt.radius {
				t.Errorf("expected radius %v, got %v", tt.radius, cc.Radius())
			}
		})
	}
}

func TestElevationBoundsStayOffThePoles(t *testing.T) {
	cc := NewCameraController(WithElevation(3), WithElevationBounds(2, -2))
	if cc.Elevation() >= math.Pi/2 {
		t.Errorf("expected elevation below the pole, got %v", cc.Elevation())
	}
}

func TestCameraOptionsValidate(t *testing.T) {
	c := NewCamera(WithFov(4), WithClipPlanes(100, 50), WithUp(mgl32.Vec3{}))
	if !approx(c.Fov(), mgl32.DegToRad(45), 1e-6) {
		t.Errorf("expected default fov, got %v", c.Fov())
	}
	if c.Near() != 10 || c.Far() != 200000 {
		t.Errorf("expected default clip planes 10..200000, got %v..%v", c.Near(), c.Far())
	}
	if c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected default up, got %v", c.Up())
	}

	c = NewCamera(WithClipPlanes(1, 500), WithUp(mgl32.Vec3{0, 0, 2}))
	if c.Near() != 1 || c.Far() != 500 {
		t.Errorf("expected clip planes 1..500, got %v..%v", c.Near(), c.Far())
	}
	if c.Up() != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("expected normalized up, got %v", c.Up())
	}
}
