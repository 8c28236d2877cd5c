// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Pose is a camera placement: where the camera sits and the world-space point it looks at.
// Both vectors are values, so copying a Pose never shares storage with the source.
type Pose struct {
	// Position is the world-space camera position.
	Position mgl32.Vec3 `yaml:"position"`
	// FocalPoint is the world-space look-at target.
	FocalPoint mgl32.Vec3 `yaml:"focal_point"`
}

// Ray is a half-line used for picking. Direction is expected to be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parametric distance t along the ray.
//
// Parameters:
//   - t: distance along the ray direction
//
// Returns:
//   - mgl32.Vec3: Origin + Direction*t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Rect is an axis-aligned rectangle in client pixel space (origin top-left, y down).
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point lies inside the rectangle (edges inclusive).
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}
