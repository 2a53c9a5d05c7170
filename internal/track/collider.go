package track

import (
	math32 "github.com/chewxy/math32"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
)

// Part is one oriented box of a segment's (possibly compound) collider,
// already placed in world coordinates. The physics bridge (§4.D) treats
// every Part as a static raycast target; Parts are never used for
// rigid-body contact generation, since track colliders sit at z=-H,
// just below the ambient ground plane the bot's wheels actually rest on.
type Part struct {
	Center      mathutil.Vec3
	Heading     float32 // rotation about +Z, radians
	HalfExtents mathutil.Vec3
}

// arcLocalPoint is the local-frame point swept by a CircleTurn at
// running angle phi (see segment.go computeNextOrigin for the matching
// end-pose derivation at phi=theta).
func arcLocalPoint(radius, phi, sign float32) mathutil.Vec2 {
	s, c := math32.Sincos(phi)
	return mathutil.Vec2{X: sign * radius * (c - 1), Y: radius * s}
}

// buildCollider synthesizes the collider Parts for one segment, given
// the pose at which it begins (spec §4.A "Collider synthesis").
func buildCollider(seg Segment, origin mathutil.Transform2D) []Part {
	const halfHeight = TrackHeight / 2
	boxAt := func(centerLocal mathutil.Vec2, headingDelta float32, halfWidth, halfLength float32) Part {
		t := origin.TranslateInDirection(centerLocal)
		return Part{
			Center:      mathutil.Vec3{X: t.Pos.X, Y: t.Pos.Y, Z: -TrackHeight},
			Heading:     t.Heading + headingDelta,
			HalfExtents: mathutil.Vec3{X: halfWidth, Y: halfLength, Z: halfHeight},
		}
	}

	switch seg.Kind {
	case KindStart, KindEnd:
		return []Part{boxAt(mathutil.Vec2{Y: TipLength / 2}, 0, TrackWidth/2, TipLength/2)}
	case KindStraight:
		return []Part{boxAt(mathutil.Vec2{Y: seg.Length / 2}, 0, TrackWidth/2, seg.Length/2)}
	case KindNinetyDegTurn:
		sgn := seg.Side.Sign()
		hl := (seg.LineHalfLength + TrackWidth/2) / 2
		ht := (seg.LineHalfLength - TrackWidth/2) / 2
		bar1 := boxAt(mathutil.Vec2{Y: hl}, 0, TrackWidth/2, hl)
		bar2 := boxAt(mathutil.Vec2{X: -sgn * ht, Y: ht}, sgn*math32.Pi/2, TrackWidth/2, hl)
		return []Part{bar1, bar2}
	case KindCircleTurn:
		sgn := seg.Side.Sign()
		n := int(math32.Round(40 * math32.Abs(seg.Angle) / math32.Pi))
		if n < 1 {
			n = 1
		}
		sub := seg.Angle / float32(n)
		parts := make([]Part, 0, n)
		for k := 0; k < n; k++ {
			mid := (float32(k) + 0.5) * sub
			center := arcLocalPoint(seg.Radius, mid, sgn)
			tangentHeading := sgn * mid
			halfChord := seg.Radius * math32.Sin(sub/2)
			if halfChord < 1e-6 {
				halfChord = 1e-6
			}
			parts = append(parts, boxAt(center, tangentHeading, TrackWidth/2, halfChord))
		}
		return parts
	default:
		return nil
	}
}
