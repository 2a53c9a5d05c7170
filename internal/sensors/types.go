// Package sensors implements the numerical sensor models of spec §4.B:
// line reflectance with noise, the bot-on-track classifier, IMU fusion
// and motor encoders. It depends only on the track, config and mathutil
// packages, never on the physics bridge, so it can be exercised with
// hand-built poses in tests without a running physics world.
package sensors

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"

// BotPosition classifies where the bot's center currently sits relative
// to the track (spec §3).
type BotPosition int

const (
	OnTrack BotPosition = iota
	End
	Out
)

func (p BotPosition) String() string {
	switch p {
	case OnTrack:
		return "OnTrack"
	case End:
		return "End"
	case Out:
		return "Out"
	default:
		return "Unknown"
	}
}

// LineSensorCount is the fixed number of transverse line sensors
// (spec §3 "line_sensors: 16 values").
const LineSensorCount = 16

// Snapshot is one fixed-step sample of every sensor channel (spec §3
// SensorsData).
type Snapshot struct {
	LineSensors    [LineSensorCount]float32 // in [0,100]
	BotPosition    BotPosition
	PositionChanged bool // true when BotPosition differs from the previous step (original_source supplement)
	BodyPos        mathutil.Vec3
	BodyRot        mathutil.Quat
	ImuFused       mathutil.EulerXYZ // radians
	Gyro           mathutil.Vec3     // rad/s, body-local
	MotorAngleLeft  uint16
	MotorAngleRight uint16
}
