package viewpoint

import (
	"math"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// IdleTuning controls the idle sway: two independent sinusoids over elapsed seconds.
type IdleTuning struct {
	Base       common.Pose `yaml:"base"`
	AmplitudeX float32     `yaml:"amplitude_x"`
	AmplitudeY float32     `yaml:"amplitude_y"`
	FrequencyX float32     `yaml:"frequency_x"`
	FrequencyY float32     `yaml:"frequency_y"`
}

// DeskTuning controls the desk pointer parallax.
type DeskTuning struct {
	// FocalRate and PositionRate are the per-tick smoothing factors in (0, 1].
	FocalRate    float32 `yaml:"focal_rate"`
	PositionRate float32 `yaml:"position_rate"`
	// PositionSway and FocalSway scale the normalized pointer into world offsets on x and y.
	PositionSway mgl32.Vec2 `yaml:"position_sway"`
	FocalSway    mgl32.Vec2 `yaml:"focal_sway"`
	// MinHeight is the lowest y the camera position may reach.
	MinHeight float32 `yaml:"min_height"`
}

// IdleRule returns the idle sway rule. The result is a pure function of ctx.Elapsed and the base
// pose: x and y follow their sinusoids, z stays at the base value.
//
// Parameters:
//   - t: the sway tuning
//
// Returns:
//   - UpdateFunc: the rule
func IdleRule(t IdleTuning) UpdateFunc {
	return func(v *Viewpoint, ctx *Context) {
		s := ctx.Elapsed.Seconds()
		pos := v.Base().Position
		pos[0] += float32(math.Sin(s*float64(t.FrequencyX))) * t.AmplitudeX
		pos[1] += float32(math.Sin(s*float64(t.FrequencyY))) * t.AmplitudeY
		v.SetLive(common.Pose{Position: pos, FocalPoint: v.Base().FocalPoint})
	}
}

// DeskRule returns the desk parallax rule. On wide viewports the live focal point and position are
// smoothed toward pointer-derived targets around the base pose, each at its own rate, and the
// position is kept above MinHeight. On narrow viewports the live pose is the policy's static desk pose.
//
// Parameters:
//   - t: the parallax tuning
//
// Returns:
//   - UpdateFunc: the rule
func DeskRule(t DeskTuning) UpdateFunc {
	return func(v *Viewpoint, ctx *Context) {
		if ctx.Narrow && ctx.Policy != nil {
			v.SetLive(ctx.Policy.DeskPoseFor(true))
			return
		}

		px, py := ctx.Pointer.X(), ctx.Pointer.Y()
		posTarget := v.Base().Position.Add(mgl32.Vec3{px * t.PositionSway.X(), py * t.PositionSway.Y(), 0})
		focalTarget := v.Base().FocalPoint.Add(mgl32.Vec3{px * t.FocalSway.X(), py * t.FocalSway.Y(), 0})

		live := v.Live()
		live.FocalPoint = smooth(live.FocalPoint, focalTarget, t.FocalRate)
		live.Position = smooth(live.Position, posTarget, t.PositionRate)
		if live.Position[1] < t.MinHeight {
			live.Position[1] = t.MinHeight
		}
		v.SetLive(live)
	}
}

// MonitorRule returns the monitor reframing rule: the live pose is the policy's framed monitor
// pose around the base focal point, recomputed every update.
func MonitorRule() UpdateFunc {
	return func(v *Viewpoint, ctx *Context) {
		if ctx.Policy == nil {
			v.SetLive(v.Base())
			return
		}
		v.SetLive(ctx.Policy.MonitorPoseFor(ctx.Narrow, ctx.Viewport, v.Base().FocalPoint))
	}
}

func smooth(prev, target mgl32.Vec3, rate float32) mgl32.Vec3 {
	return prev.Add(target.Sub(prev).Mul(rate))
}
