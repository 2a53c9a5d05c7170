package track

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"

// SignedDistance returns the signed perpendicular distance from world to
// the line center of segment index i, in the segment's own local frame
// (spec §4.A). Positive is to the segment's "right" per its Side sign
// convention; callers (the line sensor model) only care about the
// magnitude and the even/odd symmetry, not the sign's orientation.
func (t *Track) SignedDistance(i int, world mathutil.Vec2) float32 {
	seg := t.Segments[i]
	origin := t.Origins[i]
	local := origin.Local(world)

	switch seg.Kind {
	case KindStart, KindEnd, KindStraight:
		return local.X
	case KindNinetyDegTurn:
		sgn := seg.Side.Sign()
		ty := (seg.LineHalfLength - TrackWidth/2) / 2
		if local.Y < sgn*local.X+ty {
			return local.X
		}
		return sgn * (local.Y - ty)
	case KindCircleTurn:
		sgn := seg.Side.Sign()
		center := mathutil.Vec2{X: -sgn * seg.Radius}
		return (local.Sub(center).Magnitude() - seg.Radius) * sgn
	default:
		return local.X
	}
}
