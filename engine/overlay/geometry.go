package overlay

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// HitPlaneName is the scene name of the overlay's hit-test plane.
const HitPlaneName = "computer-screen-hitbox"

// Layer is one visual layer stacked in front of the embedded content.
type Layer struct {
	Name  string  `yaml:"name"`
	Depth float32 `yaml:"depth"`
}

// Geometry is the authored placement of the embedded screen and the tuning of its dimmer.
type Geometry struct {
	// ScreenWidth and ScreenHeight are the screen size in world units; the embedded content
	// renders at the same size in its own pixels.
	ScreenWidth  float32 `yaml:"screen_width"`
	ScreenHeight float32 `yaml:"screen_height"`
	// Padding insets the content area from the screen edge on every side.
	Padding float32 `yaml:"padding"`
	// Position is the world-space center of the screen.
	Position mgl32.Vec3 `yaml:"position"`
	// TiltDegrees rotates the screen back about the X axis.
	TiltDegrees float32 `yaml:"tilt_degrees"`
	// Layers are the visual layers in front of the content, by depth along the screen normal.
	Layers []Layer `yaml:"layers"`

	// DimAngleWeight blends view-angle misalignment (weight) against distance falloff (1 - weight).
	DimAngleWeight float32 `yaml:"dim_angle_weight"`
	// DimFalloff is the camera distance at which the distance term reaches one half.
	DimFalloff float32 `yaml:"dim_falloff"`
	// DimMax caps the dimming plane's opacity.
	DimMax float32 `yaml:"dim_max"`

	// RetryInterval is how often a missing embedded content element is probed for again.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// DefaultGeometry returns the authored screen placement.
func DefaultGeometry() Geometry {
	return Geometry{
		ScreenWidth:  1280,
		ScreenHeight: 1024,
		Padding:      32,
		Position:     mgl32.Vec3{0, 950, 255},
		TiltDegrees:  -3,
		Layers: []Layer{
			{Name: "content", Depth: 0},
			{Name: "scanlines", Depth: 5},
			{Name: "smudges", Depth: 10},
			{Name: "glare", Depth: 20},
		},
		DimAngleWeight: 0.7,
		DimFalloff:     6000,
		DimMax:         0.85,
		RetryInterval:  100 * time.Millisecond,
	}
}

// MaxDepth returns the largest layer depth, or zero without layers.
func (g Geometry) MaxDepth() float32 {
	var d float32
	for _, l := range g.Layers {
		d = max(d, l.Depth)
	}
	return d
}

// ContentSize returns the embedded content area after padding, floored at one unit.
func (g Geometry) ContentSize() (width, height float32) {
	return max(g.ScreenWidth-2*g.Padding, 1), max(g.ScreenHeight-2*g.Padding, 1)
}

// Rotation returns the screen's Euler rotation in radians.
func (g Geometry) Rotation() mgl32.Vec3 {
	return mgl32.Vec3{mgl32.DegToRad(g.TiltDegrees), 0, 0}
}
