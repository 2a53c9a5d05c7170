package mathutil

import "github.com/chewxy/math32"

// Quat is a unit quaternion (x, y, z, w) used for body orientation.
// The Product/Roll/Pitch/Yaw shape below mirrors the teacher's
// pkg/core/math/vec/quaternion.go, generalized to a full XYZ Euler
// decomposition (rather than the teacher's single roll/pitch/yaw-only
// accessors) because the simulator needs all three angles at once,
// every fixed step, for the IMU fusion model (spec §4.B).
type Quat struct {
	X, Y, Z, W float32
}

// Identity is the zero-rotation quaternion.
var Identity = Quat{W: 1}

// FromAxisAngle builds a unit quaternion representing a rotation of
// angle radians about axis (which need not be normalized).
func FromAxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Normalized()
	s, c := math32.Sincos(angle * 0.5)
	return Quat{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: c}
}

// Product returns a*b, i.e. applying b first then a, following the same
// Hamilton product layout as the teacher's Quaternion.Product.
func (a Quat) Product(b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func (q Quat) Normalized() Quat {
	m := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if m == 0 {
		return Identity
	}
	inv := 1 / m
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// RotateVec3 rotates v by q.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Conjugate returns the inverse rotation for a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// EulerXYZ is the Tait-Bryan decomposition used by the IMU fusion model:
// Roll about the body's X axis (the lateral axle axis in this module's
// Y-forward convention), Pitch about its Y (forward) axis, Yaw about its
// vertical (Z) axis. All angles are in radians.
type EulerXYZ struct {
	Roll, Pitch, Yaw float32
}

// ToEulerXYZ decomposes q the same way three.js's Euler('XYZ') does:
// extract pitch (rotation about Y) from the m[0][2] matrix element, then
// roll and yaw from the remaining elements, falling back to the gimbal
// lock case when |m[0][2]| is within epsilon of 1.
func (q Quat) ToEulerXYZ() EulerXYZ {
	x, y, z, w := q.X, q.Y, q.Z, q.W

	m02 := 2 * (x*z + y*w)
	m12 := 2 * (y*z - x*w)
	m22 := 1 - 2*(x*x+y*y)
	m01 := 2 * (x*y - z*w)
	m00 := 1 - 2*(y*y+z*z)
	m21 := 2 * (y*z + x*w)
	m11 := 1 - 2*(x*x+z*z)

	pitch := math32.Asin(Clamp(m02, -1, 1))

	var roll, yaw float32
	if math32.Abs(m02) < 0.9999999 {
		roll = math32.Atan2(-m12, m22)
		yaw = math32.Atan2(-m01, m00)
	} else {
		roll = math32.Atan2(m21, m11)
		yaw = 0
	}

	return EulerXYZ{Roll: roll, Pitch: pitch, Yaw: yaw}
}
