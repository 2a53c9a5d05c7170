package stepper

import (
	math32 "github.com/chewxy/math32"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/physics"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/sensors"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// FixedPointScale converts the i16-packed gyro/IMU channels between
// radians (or rad/s) and milli-units, matching the byte width spec §6
// assigns those sensor kinds. The source leaves the exact fixed-point
// scale unspecified; milli-radians is frozen here (see DESIGN.md).
// Exported so internal/hostabi can decode the same channels back into
// the trace's raw float32 fields without duplicating the constant.
const FixedPointScale = 1000

// PhysicsStepper wires the Stepper capability to the physics bridge and
// sensor models (spec §4.G "A concrete PhysicsStepper wires this to
// §4.D").
type PhysicsStepper struct {
	world  *physics.World
	cfg    config.BotConfiguration
	track  *track.Track
	noise  *sensors.NoiseSource
	active bool
	enabled bool
}

// NewPhysicsStepper builds a stepper over a freshly constructed world.
func NewPhysicsStepper(cfg config.BotConfiguration, tr *track.Track, noiseSeed uint64) *PhysicsStepper {
	return &PhysicsStepper{
		world: physics.NewWorld(cfg, tr),
		cfg:   cfg,
		track: tr,
		noise: sensors.NewNoiseSource(noiseSeed),
	}
}

func (s *PhysicsStepper) StepOnce(dtUs uint32) {
	s.world.SetActive(s.active)
	s.world.Step(dtUs)
}

func (s *PhysicsStepper) SetMotors(left, right int16) { s.world.SetMotors(left, right) }

func (s *PhysicsStepper) IsActive() bool { return s.active }

func (s *PhysicsStepper) MarkActive() { s.active = true }

// SetEnabled drives the remote-enable signal sampled by the Enabled
// sensor kind and read by get_enabled/wait_enabled/wait_disabled.
func (s *PhysicsStepper) SetEnabled(enabled bool) { s.enabled = enabled }

func (s *PhysicsStepper) Enabled() bool { return s.enabled }

func (s *PhysicsStepper) BodyPose() Pose {
	return Pose{Pos: s.world.Body.Pos, Rot: s.world.Body.Rot}
}

func (s *PhysicsStepper) BotPosition() sensors.BotPosition {
	return sensors.ClassifyPosition(s.track, s.world.Body.Pos)
}

func (s *PhysicsStepper) WheelTransforms() (left, right Pose) {
	lp, lr := s.world.WheelTransform(track.SideLeft)
	rp, rr := s.world.WheelTransform(track.SideRight)
	return Pose{Pos: lp, Rot: lr}, Pose{Pos: rp, Rot: rr}
}

func (s *PhysicsStepper) MotorAngles() (left, right uint16) {
	gearN, gearD := s.cfg.GearRatioNum, s.cfg.GearRatioDen
	return sensors.MotorAngle(s.world.WheelLeft.Angle, gearN, gearD),
		sensors.MotorAngle(s.world.WheelRight.Angle, gearN, gearD)
}

func (s *PhysicsStepper) SampleSensors(kind SensorKind, start, count uint16) ([]byte, bool) {
	switch kind {
	case SensorLine:
		values := sensors.SampleLineSensors(s.track, s.cfg, s.world.Body.Pos, s.world.Body.Rot, s.noise)
		if !inRange(start, count, len(values)) {
			return nil, false
		}
		out := make([]byte, count)
		for i := uint16(0); i < count; i++ {
			v := values[start+i]
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			out[i] = byte(v)
		}
		return out, true
	case SensorGyro:
		_, gyro := sensors.FuseIMU(s.world.Body.Rot, s.world.Body.AngVel)
		channels := [3]float32{gyro.X, gyro.Y, gyro.Z}
		return packI16(channels[:], start, count)
	case SensorImuFused:
		euler, _ := sensors.FuseIMU(s.world.Body.Rot, s.world.Body.AngVel)
		channels := [3]float32{euler.Roll, euler.Pitch, euler.Yaw}
		return packI16(channels[:], start, count)
	case SensorMotorAngles:
		if !inRange(start, count, 2) {
			return nil, false
		}
		l, r := s.MotorAngles()
		channels := [2]uint16{l, r}
		out := make([]byte, 0, count*2)
		for i := uint16(0); i < count; i++ {
			out = append(out, byte(channels[start+i]), byte(channels[start+i]>>8))
		}
		return out, true
	case SensorEnabled:
		if !inRange(start, count, 1) {
			return nil, false
		}
		v := byte(0)
		if s.enabled {
			v = 1
		}
		return []byte{v}, true
	default:
		return nil, false
	}
}

func inRange(start, count uint16, n int) bool {
	return int(start)+int(count) <= n
}

func packI16(channels []float32, start, count uint16) ([]byte, bool) {
	if !inRange(start, count, len(channels)) {
		return nil, false
	}
	out := make([]byte, 0, count*2)
	for i := uint16(0); i < count; i++ {
		scaled := channels[start+i] * FixedPointScale
		scaled = math32.Round(scaled)
		if scaled > 32767 {
			scaled = 32767
		}
		if scaled < -32768 {
			scaled = -32768
		}
		v := int16(scaled)
		out = append(out, byte(v), byte(uint16(v)>>8))
	}
	return out, true
}
