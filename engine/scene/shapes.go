package scene

import (
	"math"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Quad is a flat, oriented rectangle. Its unrotated extent lies in the XY plane facing +Z.
type Quad struct {
	name     string
	center   mgl32.Vec3
	rotation mgl32.Vec3
	width    float32
	height   float32

	right  mgl32.Vec3
	up     mgl32.Vec3
	normal mgl32.Vec3
}

var _ Object = &Quad{}

// NewQuad creates a rectangle centered at center, rotated by the Euler angles in rotation (radians,
// applied Y * X * Z), with the given width along its local X and height along its local Y.
//
// Parameters:
//   - name: the object name
//   - center: world-space center
//   - rotation: Euler angles in radians
//   - width, height: extents in world units
//
// Returns:
//   - *Quad: the quad
func NewQuad(name string, center, rotation mgl32.Vec3, width, height float32) *Quad {
	rot := common.RotationMatrix(rotation.X(), rotation.Y(), rotation.Z())
	return &Quad{
		name:     name,
		center:   center,
		rotation: rotation,
		width:    width,
		height:   height,
		right:    rot.Mul3x1(mgl32.Vec3{1, 0, 0}),
		up:       rot.Mul3x1(mgl32.Vec3{0, 1, 0}),
		normal:   rot.Mul3x1(mgl32.Vec3{0, 0, 1}),
	}
}

// NewQuadAxes creates a rectangle from explicit local axes. right and up are normalized and
// the normal is right x up.
//
// Parameters:
//   - name: the object name
//   - center: world-space center
//   - right, up: the local width and height directions
//   - width, height: extents in world units
//
// Returns:
//   - *Quad: the quad
func NewQuadAxes(name string, center, right, up mgl32.Vec3, width, height float32) *Quad {
	r := right.Normalize()
	u := up.Normalize()
	return &Quad{
		name:   name,
		center: center,
		width:  width,
		height: height,
		right:  r,
		up:     u,
		normal: r.Cross(u).Normalize(),
	}
}

func (q *Quad) Name() string {
	return q.name
}

func (q *Quad) Center() mgl32.Vec3 {
	return q.center
}

// Rotation returns the Euler angles the quad was built from. Quads built from axes report zero.
func (q *Quad) Rotation() mgl32.Vec3 {
	return q.rotation
}

// Axes returns the quad's local right and up unit vectors.
func (q *Quad) Axes() (right, up mgl32.Vec3) {
	return q.right, q.up
}

// Normal returns the unit vector the quad faces.
func (q *Quad) Normal() mgl32.Vec3 {
	return q.normal
}

func (q *Quad) Size() (width, height float32) {
	return q.width, q.height
}

// Corners returns the four world-space corners in order top-left, top-right, bottom-right, bottom-left.
func (q *Quad) Corners() [4]mgl32.Vec3 {
	hw := q.right.Mul(q.width / 2)
	hh := q.up.Mul(q.height / 2)
	return [4]mgl32.Vec3{
		q.center.Sub(hw).Add(hh),
		q.center.Add(hw).Add(hh),
		q.center.Add(hw).Sub(hh),
		q.center.Sub(hw).Sub(hh),
	}
}

// Intersect hits the quad from either side.
func (q *Quad) Intersect(ray common.Ray) (float32, bool) {
	t, ok := common.IntersectPlane(ray, q.center, q.normal)
	if !ok {
		return 0, false
	}
	local := ray.At(t).Sub(q.center)
	u := local.Dot(q.right)
	v := local.Dot(q.up)
	if float32(math.Abs(float64(u))) > q.width/2 || float32(math.Abs(float64(v))) > q.height/2 {
		return 0, false
	}
	return t, true
}

// Box is an axis-aligned solid used for furniture and walls.
type Box struct {
	name string
	min  mgl32.Vec3
	max  mgl32.Vec3
}

var _ Object = &Box{}

// NewBox creates an axis-aligned box. The corners may be given in any order.
//
// Parameters:
//   - name: the object name
//   - a, b: opposite corners
//
// Returns:
//   - *Box: the box
func NewBox(name string, a, b mgl32.Vec3) *Box {
	return &Box{
		name: name,
		min:  mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		max:  mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

func (b *Box) Name() string {
	return b.name
}

// Bounds returns the min and max corners.
func (b *Box) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return b.min, b.max
}

func (b *Box) Intersect(ray common.Ray) (float32, bool) {
	return common.IntersectAABB(ray, b.min, b.max)
}
