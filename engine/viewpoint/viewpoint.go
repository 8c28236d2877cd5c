// Package viewpoint defines the named camera targets the director moves between. Each viewpoint
// owns an authored base pose, a live pose it rewrites every tick, and an injected update rule.
package viewpoint

import (
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/reframe"
	"github.com/go-gl/mathgl/mgl32"
)

// ID names one of the fixed viewpoints. The zero value None means "no viewpoint".
type ID string

const (
	None          ID = ""
	Idle          ID = "idle"
	Monitor       ID = "monitor"
	Desk          ID = "desk"
	Loading       ID = "loading"
	FreeLookStart ID = "free-look-start"
)

// All lists every defined viewpoint in registry order.
var All = []ID{Idle, Monitor, Desk, Loading, FreeLookStart}

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return string(id)
}

// Context is the read-only per-tick input shared by every update rule. The director builds one
// per tick and passes it by pointer; rules must not retain or modify it.
type Context struct {
	// Elapsed is the monotonic time since the engine started ticking.
	Elapsed time.Duration
	// Pointer is the last pointer position in [-1, 1] on both axes, y up.
	Pointer mgl32.Vec2
	// Viewport is the current host client area.
	Viewport reframe.Viewport
	// Narrow is the single narrow-viewport decision for this tick.
	Narrow bool
	// Policy holds the reframing constants. Rules that need it fall back to their base pose when nil.
	Policy *reframe.Policy
}

// UpdateFunc is a per-viewpoint procedural rule. It reads the context and rewrites the live pose.
type UpdateFunc func(v *Viewpoint, ctx *Context)

// Viewpoint is a named camera target. Vectors are stored by value, so the live pose of one
// viewpoint never shares storage with another's.
type Viewpoint struct {
	id     ID
	base   common.Pose
	live   common.Pose
	update UpdateFunc
}

// New creates a viewpoint whose live pose starts at base.
//
// Parameters:
//   - id: the viewpoint identity
//   - base: the authored pose
//   - update: the procedural rule, or nil for a static viewpoint
//
// Returns:
//   - *Viewpoint: the new viewpoint
func New(id ID, base common.Pose, update UpdateFunc) *Viewpoint {
	return &Viewpoint{
		id:     id,
		base:   base,
		live:   base,
		update: update,
	}
}

// ID returns the viewpoint identity.
func (v *Viewpoint) ID() ID {
	return v.id
}

// Base returns the authored pose.
func (v *Viewpoint) Base() common.Pose {
	return v.base
}

// Live returns a copy of the live pose.
func (v *Viewpoint) Live() common.Pose {
	return v.live
}

// SetLive overwrites the live pose. Update rules publish their result through it.
func (v *Viewpoint) SetLive(p common.Pose) {
	v.live = p
}

// Update runs the viewpoint's rule once. Viewpoints without a rule copy base into live.
//
// Parameters:
//   - ctx: the tick context
func (v *Viewpoint) Update(ctx *Context) {
	if v.update == nil {
		Static(v, ctx)
		return
	}
	v.update(v, ctx)
}

// Static is the default rule: the live pose mirrors the base pose.
func Static(v *Viewpoint, _ *Context) {
	v.SetLive(v.Base())
}
