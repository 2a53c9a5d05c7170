package sensors

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"

// LineSize and Transition are the line-reflectance constants of spec
// §4.B; Transition equals LineSize as specified there.
const (
	LineSize   = 0.02
	Transition = LineSize
)

// Reflectance evaluates R(d), the line-reflectance function of spec
// §4.B: black (0) under the line, white (100) past the transition band,
// smoothstep in between. R is even in d, non-decreasing for d>=0, with
// R(0)=0 and R(LineSize/2+Transition)=100 (spec §8.3).
//
// A NaN or infinite d (the sensor ray missed every collider) returns
// white, matching the "if the ray misses all track segments, return
// white" rule.
func Reflectance(d float32) float32 {
	if isNonFinite(d) {
		return 100
	}
	ad := abs(d)

	half := float32(LineSize / 2)
	outer := half + Transition
	switch {
	case ad <= half:
		return 0
	case ad >= outer:
		return 100
	default:
		t := (ad - half) / Transition
		return 100 * mathutil.Smoothstep(t)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func isNonFinite(v float32) bool {
	return v != v || v > 3.4e38 || v < -3.4e38
}
