// Package overlay coordinates the embedded screen living inside the 3D monitor: its hit-test plane,
// the dimming and light-well planes around it, the back control, and the input messages the
// embedded content sends back across its boundary.
package overlay

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotOnScreen is returned when a pointer message arrives while the screen has no footprint.
var ErrNotOnScreen = errors.New("embedded screen is not on screen")

// Overlay owns the surfaces of the embedded screen. They are built once from the authored
// geometry and never recreated; only the dimmer opacity and the projected footprint change.
// Pointer classification follows the raycast policy: the hit plane is registered in the scene
// and takes part in the camera director's raycast.
// Thread-safe for concurrent access.
type Overlay interface {
	// Geometry returns the authored geometry.
	Geometry() Geometry

	// HitPlane returns the invisible hit-test plane registered in the scene.
	HitPlane() *scene.Quad

	// DimPlane returns the dimming plane in front of every visual layer.
	DimPlane() *scene.Quad

	// LightWells returns the four side planes enclosing the layers, ordered top, bottom, left, right.
	LightWells() [4]*scene.Quad

	// SetFocused records whether the camera is in the monitor view.
	//
	// Parameters:
	//   - focused: the new focus state
	SetFocused(focused bool)

	// Focused reports whether the monitor view is focused.
	Focused() bool

	// BackVisible reports whether the back control is shown. It is shown exactly while focused.
	BackVisible() bool

	// PressBack activates the back control. While focused it asks the camera to leave the monitor
	// and reports the press as consumed so it is never also treated as a background click.
	//
	// Returns:
	//   - bool: true if the press was consumed
	PressBack() bool

	// Captures reports whether a host pointer press at (x, y) belongs to the embedded content.
	// Only a focused screen captures presses, and only inside its footprint.
	//
	// Parameters:
	//   - x, y: client-space pixel coordinates
	//
	// Returns:
	//   - bool: true if the press must not reach the camera director
	Captures(x, y float32) bool

	// Update recomputes the dimmer opacity, the projected footprint and frustum visibility, and
	// polls for late embedded content.
	//
	// Parameters:
	//   - elapsed: monotonic time since ticking started
	//   - vp: the current viewport
	Update(elapsed time.Duration, vp reframe.Viewport)

	// DimOpacity returns the dimming plane's opacity from the last Update.
	DimOpacity() float32

	// Footprint returns the content area's on-screen bounding rectangle from the last Update.
	//
	// Returns:
	//   - common.Rect: the rectangle in client pixels
	//   - bool: false if the content is not projected on screen
	Footprint() (common.Rect, bool)

	// Visible reports whether the screen center was inside the view frustum at the last Update.
	Visible() bool

	// ContentReady reports whether the embedded content has been found.
	ContentReady() bool

	// HandleMessage parses a message from the embedded content, scales mouse coordinates from
	// content pixels into the footprint and dispatches the result as a native event.
	//
	// Parameters:
	//   - data: the JSON message
	//
	// Returns:
	//   - error: error if the message is malformed or has nowhere to land
	HandleMessage(data []byte) error
}

type overlay struct {
	mu sync.Mutex

	geometry Geometry
	camera   camera.Camera

	hitPlane   *scene.Quad
	content    *scene.Quad
	dimPlane   *scene.Quad
	lightWells [4]*scene.Quad

	leave      func()
	dispatcher Dispatcher
	probe      func() bool

	focused    bool
	dim        float32
	footprint  common.Rect
	projected  bool
	visible    bool
	ready      bool
	lastProbe  time.Duration
	probedOnce bool
}

var _ Overlay = &overlay{}

// NewOverlay builds the overlay surfaces and registers the hit plane in the scene.
//
// Parameters:
//   - cam: the render camera, read for dimming and projection
//   - sc: the hit-testable scene, or nil
//   - options: optional builder options
//
// Returns:
//   - Overlay: the new overlay
func NewOverlay(cam camera.Camera, sc scene.Scene, options ...OverlayBuilderOption) Overlay {
	o := &overlay{
		geometry: DefaultGeometry(),
		camera:   cam,
	}
	for _, opt := range options {
		opt(o)
	}
	o.buildSurfaces()
	if o.probe == nil {
		o.ready = true
	}
	if sc != nil {
		sc.Add(o.hitPlane)
	}
	return o
}

// buildSurfaces creates every plane from the geometry.
func (o *overlay) buildSurfaces() {
	g := o.geometry
	rot := g.Rotation()
	o.hitPlane = scene.NewQuad(HitPlaneName, g.Position, rot, g.ScreenWidth, g.ScreenHeight)

	right, up := o.hitPlane.Axes()
	normal := o.hitPlane.Normal()
	depth := g.MaxDepth()

	cw, ch := g.ContentSize()
	o.content = scene.NewQuadAxes("computer-screen-content", g.Position, right, up, cw, ch)
	o.dimPlane = scene.NewQuadAxes("computer-screen-dimmer", g.Position.Add(normal.Mul(depth)), right, up, g.ScreenWidth, g.ScreenHeight)

	mid := g.Position.Add(normal.Mul(depth / 2))
	hw, hh := g.ScreenWidth/2, g.ScreenHeight/2
	o.lightWells = [4]*scene.Quad{
		scene.NewQuadAxes("computer-screen-well-top", mid.Add(up.Mul(hh)), right, normal, g.ScreenWidth, depth),
		scene.NewQuadAxes("computer-screen-well-bottom", mid.Sub(up.Mul(hh)), right, normal.Mul(-1), g.ScreenWidth, depth),
		scene.NewQuadAxes("computer-screen-well-left", mid.Sub(right.Mul(hw)), normal.Mul(-1), up, depth, g.ScreenHeight),
		scene.NewQuadAxes("computer-screen-well-right", mid.Add(right.Mul(hw)), normal, up, depth, g.ScreenHeight),
	}
}

func (o *overlay) Geometry() Geometry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.geometry
}

func (o *overlay) HitPlane() *scene.Quad {
	return o.hitPlane
}

func (o *overlay) DimPlane() *scene.Quad {
	return o.dimPlane
}

func (o *overlay) LightWells() [4]*scene.Quad {
	return o.lightWells
}

func (o *overlay) SetFocused(focused bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.focused != focused {
		log.Debug("screen focus changed", "focused", focused)
	}
	o.focused = focused
}

func (o *overlay) Focused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.focused
}

func (o *overlay) BackVisible() bool {
	return o.Focused()
}

func (o *overlay) PressBack() bool {
	o.mu.Lock()
	focused := o.focused
	leave := o.leave
	o.mu.Unlock()

	if !focused {
		return false
	}
	if leave != nil {
		leave()
	}
	return true
}

func (o *overlay) Captures(x, y float32) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.focused && o.projected && o.footprint.Contains(x, y)
}

func (o *overlay) Update(elapsed time.Duration, vp reframe.Viewport) {
	o.mu.Lock()
	defer o.mu.Unlock()

	pose := o.camera.Pose()
	o.dim = o.dimOpacity(o.camera.Forward(), pose.Position)
	o.footprint, o.projected = o.project(vp)
	o.visible = o.camera.Frustum().ContainsPoint(o.geometry.Position)
	o.pollContent(elapsed)
}

func (o *overlay) DimOpacity() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dim
}

func (o *overlay) Footprint() (common.Rect, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.footprint, o.projected
}

func (o *overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *overlay) ContentReady() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ready
}

func (o *overlay) HandleMessage(data []byte) error {
	msg, err := ParseMessage(data)
	if err != nil {
		log.Warn("dropping embedded content message", "error", err)
		return err
	}

	o.mu.Lock()
	event, err := o.translate(msg)
	dispatcher := o.dispatcher
	o.mu.Unlock()
	if err != nil {
		return err
	}

	if dispatcher != nil {
		dispatcher.DispatchNative(event)
	}
	return nil
}

// --- internal helpers; callers hold the mutex ---

// dimOpacity blends view-angle misalignment with inverse-distance falloff.
func (o *overlay) dimOpacity(forward, position mgl32.Vec3) float32 {
	g := o.geometry
	normal := o.hitPlane.Normal()

	facing := mgl32.Clamp(forward.Dot(normal.Mul(-1)), 0, 1)
	misalignment := 1 - facing

	distance := position.Sub(g.Position).Len()
	falloff := max(g.DimFalloff, 1)
	far := 1 - 1/(1+distance/falloff)

	w := mgl32.Clamp(g.DimAngleWeight, 0, 1)
	return mgl32.Clamp(w*misalignment+(1-w)*far, 0, 1) * mgl32.Clamp(g.DimMax, 0, 1)
}

// project computes the bounding rectangle of the content area's projected corners.
func (o *overlay) project(vp reframe.Viewport) (common.Rect, bool) {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, c := range o.content.Corners() {
		x, y, ok := o.camera.Project(c, vp)
		if !ok {
			return common.Rect{}, false
		}
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	return common.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// pollContent probes for the embedded content on a fixed interval until it is found.
func (o *overlay) pollContent(elapsed time.Duration) {
	if o.ready || o.probe == nil {
		return
	}
	if o.probedOnce && elapsed-o.lastProbe < o.geometry.RetryInterval {
		return
	}
	o.probedOnce = true
	o.lastProbe = elapsed
	if o.probe() {
		o.ready = true
		log.Debug("embedded content ready", "elapsed", elapsed)
	}
}

// translate scales a parsed message into host pixels.
func (o *overlay) translate(msg *Message) (NativeEvent, error) {
	event := NativeEvent{Type: msg.Type, Key: msg.Key}
	if !msg.IsMouse() {
		return event, nil
	}
	if !o.projected {
		return NativeEvent{}, fmt.Errorf("%s at (%v, %v): %w", msg.Type, msg.ClientX, msg.ClientY, ErrNotOnScreen)
	}

	cw, ch := o.geometry.ContentSize()
	event.X = o.footprint.X + msg.ClientX/cw*o.footprint.Width
	event.Y = o.footprint.Y + msg.ClientY/ch*o.footprint.Height
	return event, nil
}
