package director

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-desk/engine/bus"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
)

// DirectorBuilderOption is a functional option for configuring a Director.
// Use the With* functions to create options.
type DirectorBuilderOption func(d *director)

// WithOrbitController sets the controller that drives the camera during free-look.
//
// Parameters:
//   - orbit: the orbit controller
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithOrbitController(orbit camera.CameraController) DirectorBuilderOption {
	return func(d *director) {
		d.orbit = orbit
	}
}

// WithFocusListener sets the listener told when the monitor view gains or loses focus.
//
// Parameters:
//   - l: the focus listener, typically the screen overlay
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithFocusListener(l FocusListener) DirectorBuilderOption {
	return func(d *director) {
		d.focus = l
	}
}

// WithBus attaches the UI event bus. The director publishes monitor enter/leave events on it
// and subscribes to free-cam toggles and the loading-complete signal.
//
// Parameters:
//   - b: the bus
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithBus(b bus.Bus) DirectorBuilderOption {
	return func(d *director) {
		d.bus = b
	}
}

// WithPolicy sets the reframing policy. Defaults to reframe.DefaultPolicy().
//
// Parameters:
//   - p: the reframing policy
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithPolicy(p reframe.Policy) DirectorBuilderOption {
	return func(d *director) {
		d.policy = p
	}
}

// WithTimings sets the scripted transition timings. Defaults to DefaultTimings().
//
// Parameters:
//   - t: the timings
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithTimings(t Timings) DirectorBuilderOption {
	return func(d *director) {
		d.timings = t
	}
}

// WithInitial sets the viewpoint the director starts at. Defaults to viewpoint.Loading.
//
// Parameters:
//   - id: the starting viewpoint
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithInitial(id viewpoint.ID) DirectorBuilderOption {
	return func(d *director) {
		d.current = id
		if id != viewpoint.Loading {
			d.loaded = true
		}
	}
}

// WithViewport sets the initial viewport.
//
// Parameters:
//   - width, height: client area in device pixels
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithViewport(width, height int) DirectorBuilderOption {
	return func(d *director) {
		d.viewport = reframe.Viewport{Width: width, Height: height}
	}
}

// WithComputerNames replaces the substrings that mark a scene object as the in-scene computer.
// Matching is case-insensitive.
//
// Parameters:
//   - names: the allow-list
//
// Returns:
//   - DirectorBuilderOption: option function to apply
func WithComputerNames(names ...string) DirectorBuilderOption {
	return func(d *director) {
		d.allow = make([]string, 0, len(names))
		for _, n := range names {
			d.allow = append(d.allow, strings.ToLower(n))
		}
	}
}
