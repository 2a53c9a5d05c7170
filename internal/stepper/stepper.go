// Package stepper defines the narrow capability the Guest ABI Host
// uses to advance and observe the simulated world (spec §4.G), so that
// internal/hostabi can be unit tested against a deterministic fake
// instead of the full physics bridge. This mirrors the teacher's
// pkg/core/pipeline.Step shape: a small capability interface with one
// concrete production implementation and one test double, rather than
// a registry of many interchangeable steps.
package stepper

import (
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/sensors"
)

// SensorKind tags which sensor a sample_sensors call targets (spec §6).
type SensorKind int

const (
	SensorLine SensorKind = iota
	SensorGyro
	SensorImuFused
	SensorMotorAngles
	SensorEnabled
)

// Pose is the body's world transform, returned by body_pose().
type Pose struct {
	Pos mathutil.Vec3
	Rot mathutil.Quat
}

// Stepper is the capability surface the host needs: advance physics,
// apply motor commands, sample sensors, and read/gate activity.
type Stepper interface {
	StepOnce(dtUs uint32)
	SetMotors(left, right int16)
	SampleSensors(kind SensorKind, start, count uint16) ([]byte, bool)
	BodyPose() Pose
	IsActive() bool
	MarkActive()
	BotPosition() sensors.BotPosition
	WheelTransforms() (left, right Pose)
	MotorAngles() (left, right uint16)
}
