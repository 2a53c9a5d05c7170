package sensors

import (
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// ClassifyPosition implements the bot-on-track detector of spec §4.B: a
// single downward raycast from the body center, classified by whether
// it hits the track at all and, if so, whether the hit segment is End.
func ClassifyPosition(tr *track.Track, bodyPos mathutil.Vec3) BotPosition {
	xy := mathutil.Vec2{X: bodyPos.X, Y: bodyPos.Y}
	hit, ok := tr.RaycastDown(xy, bodyPos.Z, RayMaxDistance)
	if !ok {
		return Out
	}
	if hit.Kind == track.KindEnd {
		return End
	}
	return OnTrack
}
