// Package reframe maps viewport dimensions to camera framing for the viewpoints that must keep
// the desk and the monitor composed across aspect ratios. Every method on Policy is a pure
// function of its arguments.
package reframe

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the host client area in device pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Policy holds the tuning constants of the reframing rules.
type Policy struct {
	// Breakpoint is the width below which a viewport counts as narrow.
	Breakpoint int `yaml:"breakpoint"`
	// MinDimension floors both viewport dimensions before any division.
	MinDimension int `yaml:"min_dimension"`

	// MonitorBaseDistance is the narrow-viewport monitor distance at an infinitely wide aspect.
	MonitorBaseDistance float32 `yaml:"monitor_base_distance"`
	// MonitorAspectFactor scales the 1/aspect term of the narrow monitor distance.
	MonitorAspectFactor float32 `yaml:"monitor_aspect_factor"`
	// MonitorWideDepth is the fixed monitor distance on wide viewports.
	MonitorWideDepth float32 `yaml:"monitor_wide_depth"`
	// MonitorZoomAdjust is added to MonitorWideDepth on wide viewports.
	MonitorZoomAdjust float32 `yaml:"monitor_zoom_adjust"`

	// DeskWide is the desk resting pose the parallax rule sways around.
	DeskWide common.Pose `yaml:"desk_wide"`
	// DeskNarrow is the static, pulled-back desk pose used on narrow viewports.
	DeskNarrow common.Pose `yaml:"desk_narrow"`
}

// DefaultPolicy returns the canonical tuning constants.
func DefaultPolicy() Policy {
	return Policy{
		Breakpoint:          768,
		MinDimension:        1,
		MonitorBaseDistance: 1300,
		MonitorAspectFactor: 900,
		MonitorWideDepth:    2000,
		MonitorZoomAdjust:   -100,
		DeskWide: common.Pose{
			Position:   mgl32.Vec3{0, 1800, 5500},
			FocalPoint: mgl32.Vec3{0, 500, 0},
		},
		DeskNarrow: common.Pose{
			Position:   mgl32.Vec3{0, 2600, 8000},
			FocalPoint: mgl32.Vec3{0, 600, 0},
		},
	}
}

// Clamp returns the viewport with each dimension raised to at least minDimension (and at least 1).
func (v Viewport) Clamp(minDimension int) Viewport {
	floor := common.AtLeast(minDimension, 1)
	return Viewport{
		Width:  common.AtLeast(v.Width, floor),
		Height: common.AtLeast(v.Height, floor),
	}
}

// Aspect returns width / height of the viewport after clamping to minDimension.
func (v Viewport) Aspect(minDimension int) float32 {
	c := v.Clamp(minDimension)
	return float32(c.Width) / float32(c.Height)
}

// IsNarrow reports whether the viewport width is strictly below the breakpoint.
//
// Parameters:
//   - vp: the current viewport
//
// Returns:
//   - bool: true for narrow (mobile-class) viewports
func (p Policy) IsNarrow(vp Viewport) bool {
	return vp.Width < p.Breakpoint
}

// MonitorDistance returns how far the camera sits from the monitor focal point on a narrow
// viewport. Narrower aspect ratios push the camera further back so the whole screen stays
// framed; the result is continuous and non-decreasing as width/height shrinks.
//
// Parameters:
//   - vp: the current viewport
//
// Returns:
//   - float32: distance along the monitor's viewing axis
func (p Policy) MonitorDistance(vp Viewport) float32 {
	return p.MonitorBaseDistance + p.MonitorAspectFactor/vp.Aspect(p.MinDimension)
}

// MonitorPose returns the framed monitor pose for the viewport around the given focal point.
// Narrow viewports use MonitorDistance; wide ones a fixed depth plus the zoom adjustment.
//
// Parameters:
//   - vp: the current viewport
//   - focal: the monitor look-at point
//
// Returns:
//   - common.Pose: the camera pose looking at focal
func (p Policy) MonitorPose(vp Viewport, focal mgl32.Vec3) common.Pose {
	return p.MonitorPoseFor(p.IsNarrow(vp), vp, focal)
}

// MonitorPoseFor is MonitorPose with the narrow decision supplied by the caller, so a frame that
// already classified the viewport does not classify it again.
func (p Policy) MonitorPoseFor(narrow bool, vp Viewport, focal mgl32.Vec3) common.Pose {
	depth := p.MonitorWideDepth + p.MonitorZoomAdjust
	if narrow {
		depth = p.MonitorDistance(vp)
	}
	return common.Pose{
		Position:   focal.Add(mgl32.Vec3{0, 0, depth}),
		FocalPoint: focal,
	}
}

// DeskPose returns the desk overview pose for the viewport.
func (p Policy) DeskPose(vp Viewport) common.Pose {
	return p.DeskPoseFor(p.IsNarrow(vp))
}

// DeskPoseFor returns DeskNarrow or DeskWide.
func (p Policy) DeskPoseFor(narrow bool) common.Pose {
	if narrow {
		return p.DeskNarrow
	}
	return p.DeskWide
}
