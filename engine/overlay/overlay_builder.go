package overlay

// OverlayBuilderOption is a functional option for configuring an Overlay.
// Use the With* functions to create options.
type OverlayBuilderOption func(o *overlay)

// WithGeometry sets the authored screen geometry. Defaults to DefaultGeometry().
//
// Parameters:
//   - g: the geometry
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithGeometry(g Geometry) OverlayBuilderOption {
	return func(o *overlay) {
		o.geometry = g
	}
}

// WithLeaveHook sets the function the back control calls, typically the director's LeaveMonitor.
//
// Parameters:
//   - leave: the hook
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithLeaveHook(leave func()) OverlayBuilderOption {
	return func(o *overlay) {
		o.leave = leave
	}
}

// WithDispatcher sets where translated embedded content events are sent.
//
// Parameters:
//   - d: the dispatcher
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithDispatcher(d Dispatcher) OverlayBuilderOption {
	return func(o *overlay) {
		o.dispatcher = d
	}
}

// WithContentProbe sets the check for the embedded content element. Until it reports true the
// overlay keeps probing every Geometry.RetryInterval. Without a probe the content counts as ready.
//
// Parameters:
//   - probe: reports whether the content is available
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithContentProbe(probe func() bool) OverlayBuilderOption {
	return func(o *overlay) {
		o.probe = probe
	}
}
