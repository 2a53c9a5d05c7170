// Package track builds the procedural track geometry described in
// spec §4.A: a chain of segments, each derived from the pose at which
// the previous segment ended, with per-segment colliders and a signed
// line-distance function used by the sensor models.
package track

import (
	math32 "github.com/chewxy/math32"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
)

// Side mirrors the teacher's wheel-side tagging in
// pkg/robot/kinematics/wheels (left/right), generalized here to mirror
// track geometry left or right of the line.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Sign returns the signed projection used throughout §4.A's geometry
// formulas: Left=+1, Right=-1.
func (s Side) Sign() float32 {
	if s == SideLeft {
		return 1
	}
	return -1
}

// Kind tags the variant of a TrackSegment.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
	KindStraight
	KindNinetyDegTurn
	KindCircleTurn
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindEnd:
		return "End"
	case KindStraight:
		return "Straight"
	case KindNinetyDegTurn:
		return "NinetyDegTurn"
	case KindCircleTurn:
		return "CircleTurn"
	default:
		return "Unknown"
	}
}

// Physical constants shared by every segment kind (spec §4.A). The
// exact tip length is left unspecified by the source; 0.1 m is chosen
// and frozen here.
const (
	TipLength   = 0.1   // L_tip, meters
	TrackWidth  = 0.2   // W, meters, total collider width
	TrackHeight = 0.002 // H, meters, total collider height
	LineSize    = 0.02  // meters, matches internal/sensors.LineSize
)

// Segment is one element of a Track, tagged by Kind. Only the fields
// relevant to Kind are meaningful; this mirrors the teacher's tagged
// Config/State structs (e.g. pkg/robot/kinematics) more than a Go sum
// type, since the guest-facing track description (spec §6) is itself a
// tagged union serialized the same way.
type Segment struct {
	Kind Kind

	Length         float32 // Straight
	LineHalfLength float32 // NinetyDegTurn
	Radius         float32 // CircleTurn
	Angle          float32 // CircleTurn, radians, unsigned sweep magnitude
	Side           Side    // NinetyDegTurn, CircleTurn
}

// Start returns a Start segment (fixed tip length).
func Start() Segment { return Segment{Kind: KindStart} }

// End returns an End segment (fixed tip length).
func End() Segment { return Segment{Kind: KindEnd} }

// Straight returns a straight segment of the given length in meters.
func Straight(length float32) Segment {
	return Segment{Kind: KindStraight, Length: length}
}

// NinetyDegTurn returns an L-shaped ninety degree turn.
func NinetyDegTurn(lineHalfLength float32, side Side) Segment {
	return Segment{Kind: KindNinetyDegTurn, LineHalfLength: lineHalfLength, Side: side}
}

// CircleTurn returns a circular arc of the given radius and sweep angle
// (radians, unsigned; sign comes from side).
func CircleTurn(radius, angle float32, side Side) Segment {
	return Segment{Kind: KindCircleTurn, Radius: radius, Angle: angle, Side: side}
}

// computeNextOrigin returns the pose at which the segment following
// this one begins, given the pose at which this one begins. This is
// the chaining invariant of spec §3/§8.1: origin[i+1] = f(origin[i]).
func (s Segment) computeNextOrigin(origin mathutil.Transform2D) mathutil.Transform2D {
	switch s.Kind {
	case KindStart, KindEnd:
		return origin.TranslateInDirection(mathutil.Vec2{Y: TipLength})
	case KindStraight:
		return origin.TranslateInDirection(mathutil.Vec2{Y: s.Length})
	case KindNinetyDegTurn:
		sgn := s.Side.Sign()
		l := s.LineHalfLength
		next := origin.TranslateInDirection(mathutil.Vec2{X: -sgn * l, Y: l})
		return next.Rotate(sgn * math32.Pi / 2)
	case KindCircleTurn:
		sgn := s.Side.Sign()
		r, theta := s.Radius, s.Angle
		sin, cos := math32.Sincos(theta)
		offset := mathutil.Vec2{X: sgn * r * (cos - 1), Y: r * sin}
		next := origin.TranslateInDirection(offset)
		return next.Rotate(sgn * theta)
	default:
		return origin
	}
}
