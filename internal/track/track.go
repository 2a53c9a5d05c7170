package track

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"

// Track is an ordered, immutable chain of segments with derived
// absolute origins and colliders (spec §3 "Track").
type Track struct {
	Segments  []Segment
	Origins   []mathutil.Transform2D // origin[i] is the pose at which Segments[i] begins
	Colliders [][]Part               // Colliders[i] are Segments[i]'s collider parts
}

// Build constructs a Track from an ordered list of segment specs,
// chaining origins with computeNextOrigin starting from (-TipLength/2,
// 0) heading 0, per spec §3.
func Build(specs []Segment) *Track {
	t := &Track{
		Segments:  append([]Segment(nil), specs...),
		Origins:   make([]mathutil.Transform2D, len(specs)),
		Colliders: make([][]Part, len(specs)),
	}

	origin := mathutil.Transform2D{Pos: mathutil.Vec2{X: -TipLength / 2}}
	for i, seg := range t.Segments {
		t.Origins[i] = origin
		t.Colliders[i] = buildCollider(seg, origin)
		origin = seg.computeNextOrigin(origin)
	}
	return t
}

// EndPose returns the pose immediately following the last segment —
// used by the chain-closure invariant (spec §8.1).
func (t *Track) EndPose() mathutil.Transform2D {
	if len(t.Segments) == 0 {
		return mathutil.Transform2D{}
	}
	last := len(t.Segments) - 1
	return t.Segments[last].computeNextOrigin(t.Origins[last])
}

// RaycastHit is the result of a successful downward raycast against the
// track's colliders.
type RaycastHit struct {
	SegmentIndex int
	Point        mathutil.Vec2 // world XY of the hit
	Kind         Kind
}

// RaycastDown casts a ray straight down (-Z) from (xy, startZ) for at
// most maxDist meters against every segment's collider parts, following
// spec §4.B's "casts a ray straight down ... against the set of
// track-segment colliders". The first segment (in index order) whose
// footprint contains xy and whose top surface lies within the ray's
// reach is returned; segments are processed in order so overlapping
// colliders resolve deterministically.
func (t *Track) RaycastDown(xy mathutil.Vec2, startZ, maxDist float32) (RaycastHit, bool) {
	for i, parts := range t.Colliders {
		for _, p := range parts {
			local := mathutil.Vec2{X: xy.X - p.Center.X, Y: xy.Y - p.Center.Y}.Rotated(-p.Heading)
			if local.X < -p.HalfExtents.X || local.X > p.HalfExtents.X {
				continue
			}
			if local.Y < -p.HalfExtents.Y || local.Y > p.HalfExtents.Y {
				continue
			}
			surfaceZ := p.Center.Z + p.HalfExtents.Z
			if surfaceZ > startZ || startZ-surfaceZ > maxDist {
				continue
			}
			return RaycastHit{SegmentIndex: i, Point: xy, Kind: t.Segments[i].Kind}, true
		}
	}
	return RaycastHit{}, false
}
