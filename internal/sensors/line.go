package sensors

import (
	math32 "github.com/chewxy/math32"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// RayMaxDistance is the fixed downward raycast distance every line
// sensor and the bot-on-track detector use (spec §4.B, 0.1 m).
const RayMaxDistance = 0.1

// mmToM converts the millimeter dimensions of BotConfiguration into
// meters, the unit the track and physics packages work in.
func mmToM(v float32) float32 { return v / 1000 }

// lineSensorOrigins returns the 16 world-space ray origins for the line
// sensor bar: arrayed transverse to the body's heading (its local Y
// axis) at the configured spacing, mounted at the configured height
// above the body and LengthFront ahead of its center.
func lineSensorOrigins(cfg config.BotConfiguration, bodyPos mathutil.Vec3, bodyRot mathutil.Quat) [LineSensorCount]mathutil.Vec3 {
	spacing := mmToM(cfg.FrontSensorsSpacing)
	height := mmToM(cfg.FrontSensorsHeight)
	front := mmToM(cfg.LengthFront)

	var origins [LineSensorCount]mathutil.Vec3
	for i := 0; i < LineSensorCount; i++ {
		lateral := (float32(i) - float32(LineSensorCount-1)/2) * spacing
		local := mathutil.Vec3{X: lateral, Y: front, Z: height}
		origins[i] = bodyPos.Add(bodyRot.RotateVec3(local))
	}
	return origins
}

// SampleLineSensors evaluates all 16 line sensors against the track,
// following spec §4.B: raycast straight down, convert the hit into the
// segment's local frame, apply Reflectance, then add Gaussian noise and
// clamp to [0,100].
func SampleLineSensors(tr *track.Track, cfg config.BotConfiguration, bodyPos mathutil.Vec3, bodyRot mathutil.Quat, noise *NoiseSource) [LineSensorCount]float32 {
	origins := lineSensorOrigins(cfg, bodyPos, bodyRot)

	var out [LineSensorCount]float32
	for i, origin := range origins {
		xy := mathutil.Vec2{X: origin.X, Y: origin.Y}
		var d float32
		if hit, ok := tr.RaycastDown(xy, origin.Z, RayMaxDistance); ok {
			d = tr.SignedDistance(hit.SegmentIndex, hit.Point)
		} else {
			d = math32.Inf(1)
		}
		v := Reflectance(d) + noise.Sample()
		out[i] = mathutil.Clamp(v, 0, 100)
	}
	return out
}
