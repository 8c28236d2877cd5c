package main

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/bus"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/director"
	"github.com/Carmen-Shannon/oxy-desk/engine/overlay"
	"github.com/Carmen-Shannon/oxy-desk/engine/tween"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
)

// input translates window events into director, overlay and orbit calls.
// Every method runs on the engine tick goroutine.
type input struct {
	dir     director.Director
	orbit   camera.CameraController
	overlay overlay.Overlay
	bus     bus.Bus
	timings director.Timings

	dragging     bool
	lastX, lastY float32
}

func (in *input) pointerDown(x, y float32) {
	if in.dir.InputMode() == director.InputCapture {
		in.dragging = true
		in.lastX, in.lastY = x, y
		return
	}

	target := director.PointerTarget{Kind: director.TargetCanvas}
	if in.overlay.Captures(x, y) {
		target = director.PointerTarget{Kind: director.TargetEmbeddedFrame, Name: overlay.HitPlaneName}
	}
	in.dir.HandlePointerInput(x, y, target)
}

func (in *input) pointerUp() {
	in.dragging = false
}

func (in *input) pointerMove(x, y float32) {
	in.dir.SetPointer(x, y)

	if !in.dragging {
		return
	}
	if in.dir.InputMode() != director.InputCapture {
		in.dragging = false
		return
	}
	in.orbit.Drag(x-in.lastX, y-in.lastY)
	in.lastX, in.lastY = x, y
}

func (in *input) scroll(delta float32) {
	if in.dir.InputMode() == director.InputCapture {
		in.orbit.Zoom(delta)
	}
}

func (in *input) keyDown(key uint32) {
	switch key {
	case common.KeyF:
		engaged := in.dir.FreeLook() || in.dir.Target() == viewpoint.FreeLookStart
		in.bus.Publish(bus.Event{Topic: bus.FreeCamToggle, Payload: !engaged})
	case common.KeyEsc:
		in.overlay.PressBack()
	case common.KeyEnter:
		in.dir.EnterMonitor()
	case common.KeySpace:
		in.toggleDesk()
	case common.KeyLeft, common.KeyRight, common.KeyUp, common.KeyDown:
		in.orbitStep(key)
	}
}

// orbitStep turns the free-look orbit one keyboard step.
func (in *input) orbitStep(key uint32) {
	if in.dir.InputMode() != director.InputCapture {
		return
	}
	switch key {
	case common.KeyLeft:
		in.orbit.OrbitLeft()
	case common.KeyRight:
		in.orbit.OrbitRight()
	case common.KeyUp:
		in.orbit.OrbitUp()
	case common.KeyDown:
		in.orbit.OrbitDown()
	}
}

// toggleDesk swaps between the idle and desk viewpoints when the camera rests on or heads to one.
func (in *input) toggleDesk() {
	at := in.dir.Target()
	if at == viewpoint.None {
		at = in.dir.Current()
	}

	var next viewpoint.ID
	switch at {
	case viewpoint.Idle:
		next = viewpoint.Desk
	case viewpoint.Desk:
		next = viewpoint.Idle
	default:
		return
	}

	curve, err := tween.ByName(in.timings.Toggle.Curve)
	if err != nil {
		log.Warn("toggle curve", "error", err)
		curve = tween.QuinticInOut
	}
	in.dir.Transition(next, in.timings.Toggle.Duration, curve, nil)
}

// native receives events forwarded from the embedded content so drags and keys that start
// inside the screen keep reaching the host.
func (in *input) native(e overlay.NativeEvent) {
	switch e.Type {
	case overlay.TypeMouseMove:
		in.pointerMove(e.X, e.Y)
	case overlay.TypeMouseUp:
		in.pointerUp()
	case overlay.TypeKeyDown:
		if e.Key == "Escape" {
			in.overlay.PressBack()
		}
	}
}
