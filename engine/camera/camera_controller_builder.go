package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a free-look controller.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial orbit distance. It is clamped to the radius bounds after all
// options are applied.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis, in radians.
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial angle above the horizontal plane, in radians.
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the point the controller orbits.
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithRadiusBounds limits how close and how far zooming may go.
// Swapped bounds are reordered; non-positive bounds are ignored.
//
// Parameters:
//   - min: closest orbit distance
//   - max: farthest orbit distance
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if min <= 0 || max <= 0 {
			return
		}
		if min > max {
			min, max = max, min
		}
		cc.minRadius, cc.maxRadius = min, max
	}
}

// WithElevationBounds limits vertical orbiting. Bounds are kept strictly inside (-π/2, π/2)
// so the view never flips over the poles.
//
// Parameters:
//   - min: lowest elevation in radians
//   - max: highest elevation in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		const limit = float32(math.Pi/2 - 0.01)
		if min > max {
			min, max = max, min
		}
		cc.minElevation = mgl32.Clamp(min, -limit, limit)
		cc.maxElevation = mgl32.Clamp(max, -limit, limit)
	}
}

// WithOrbitSpeed sets the angle, in radians, of one keyboard orbit step.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.orbitSpeed = speed
		}
	}
}

// WithMouseSensitivity sets radians of rotation per pixel of drag.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sensitivity > 0 {
			cc.mouseSensitivity = sensitivity
		}
	}
}

// WithZoomSpeed sets world units per scroll step.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.zoomSpeed = speed
		}
	}
}

// WithPanSpeed scales planar translation deltas.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.panSpeed = speed
		}
	}
}
