package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// rayEpsilon rejects near-parallel rays and self-intersections at the ray origin.
const rayEpsilon = 1e-6

// RotationMatrix builds a 3x3 rotation from Euler angles using the Y * X * Z (yaw-pitch-roll) order.
//
// Parameters:
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//
// Returns:
//   - mgl32.Mat3: the combined rotation matrix (column-major)
func RotationMatrix(rotX, rotY, rotZ float32) mgl32.Mat3 {
	return mgl32.Rotate3DY(rotY).Mul3(mgl32.Rotate3DX(rotX)).Mul3(mgl32.Rotate3DZ(rotZ))
}

// IntersectPlane intersects a ray with an infinite plane given by a point and a normal.
// Parallel rays and hits behind the ray origin report no intersection.
//
// Parameters:
//   - ray: the ray to test
//   - point: any point on the plane
//   - normal: the plane normal (need not face the ray)
//
// Returns:
//   - float32: distance along the ray to the hit
//   - bool: true if the ray hits the plane in front of its origin
func IntersectPlane(ray Ray, point, normal mgl32.Vec3) (float32, bool) {
	denom := normal.Dot(ray.Direction)
	if float32(math.Abs(float64(denom))) < rayEpsilon {
		return 0, false
	}
	t := point.Sub(ray.Origin).Dot(normal) / denom
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectAABB intersects a ray with an axis-aligned box using the slab method.
// A ray starting inside the box hits the exit face.
//
// Parameters:
//   - ray: the ray to test
//   - minCorner, maxCorner: the box extents
//
// Returns:
//   - float32: distance along the ray to the nearest face hit
//   - bool: true if the box is hit in front of the ray origin
func IntersectAABB(ray Ray, minCorner, maxCorner mgl32.Vec3) (float32, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	for i := range 3 {
		d := ray.Direction[i]
		o := ray.Origin[i]
		if float32(math.Abs(float64(d))) < rayEpsilon {
			if o < minCorner[i] || o > maxCorner[i] {
				return 0, false
			}
			continue
		}
		t1 := (minCorner[i] - o) / d
		t2 := (maxCorner[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	if tFar < rayEpsilon {
		return 0, false
	}
	if tNear < rayEpsilon {
		return tFar, true
	}
	return tNear, true
}

// ScreenToNDC converts client-space pixel coordinates (origin top-left, y down) to
// normalized device coordinates in [-1, 1] with y up. Dimensions below one pixel are
// treated as one pixel.
//
// Parameters:
//   - x, y: client-space pointer position in pixels
//   - width, height: client area size in pixels
//
// Returns:
//   - ndcX, ndcY: normalized device coordinates
func ScreenToNDC(x, y float32, width, height int) (ndcX, ndcY float32) {
	w := float32(max(width, 1))
	h := float32(max(height, 1))
	ndcX = (x/w)*2 - 1
	ndcY = 1 - (y/h)*2
	return ndcX, ndcY
}
