// Package mathutil provides the float32 vector, quaternion and scalar
// helpers shared by the track, sensor, motor and physics packages.
package mathutil

import "github.com/chewxy/math32"

// Clamp restricts a to the closed interval [min, max].
func Clamp(a, min, max float32) float32 {
	switch {
	case a > max:
		return max
	case a < min:
		return min
	default:
		return a
	}
}

// Sign returns -1, 0 or 1 according to the sign of a.
func Sign(a float32) float32 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// Smoothstep evaluates the classic 3t^2-2t^3 interpolant for t in [0,1].
// Callers are responsible for clamping t beforehand.
func Smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// SQR returns a*a, matching the teacher's math.SQR helper.
func SQR(a float32) float32 {
	return a * a
}

// Pytag computes hypot(a, b) without intermediate overflow.
func Pytag(a, b float32) float32 {
	absA := math32.Abs(a)
	absB := math32.Abs(b)
	if absA > absB {
		if absA == 0 {
			return 0
		}
		return absA * math32.Sqrt(1.0+SQR(absB/absA))
	}
	if absB > 0 {
		return absB * math32.Sqrt(1.0+SQR(absA/absB))
	}
	return 0
}
