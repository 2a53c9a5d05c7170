package stepper

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/sensors"

// MockStepper is a deterministic fake used for internal/hostabi unit
// tests (spec §4.G): a monotonic clock and fixed fake sensor values,
// with no physics dependency.
type MockStepper struct {
	NowUs uint32

	PWMLeft, PWMRight int16
	active            bool
	enabled           bool

	Pose        Pose
	Position    sensors.BotPosition
	LineValues  [sensors.LineSensorCount]byte
	MotorLeft   uint16
	MotorRight  uint16
	WheelLeft   Pose
	WheelRight  Pose

	// StepCalls counts StepOnce invocations, letting tests assert how
	// many fixed steps a blocking call advanced through.
	StepCalls int
}

func NewMockStepper() *MockStepper { return &MockStepper{} }

func (m *MockStepper) StepOnce(dtUs uint32) {
	m.NowUs += dtUs
	m.StepCalls++
}

func (m *MockStepper) SetMotors(left, right int16) { m.PWMLeft, m.PWMRight = left, right }

func (m *MockStepper) IsActive() bool { return m.active }

func (m *MockStepper) MarkActive() { m.active = true }

func (m *MockStepper) SetEnabled(enabled bool) { m.enabled = enabled }

func (m *MockStepper) Enabled() bool { return m.enabled }

func (m *MockStepper) BodyPose() Pose { return m.Pose }

func (m *MockStepper) BotPosition() sensors.BotPosition { return m.Position }

func (m *MockStepper) WheelTransforms() (left, right Pose) { return m.WheelLeft, m.WheelRight }

func (m *MockStepper) MotorAngles() (left, right uint16) { return m.MotorLeft, m.MotorRight }

func (m *MockStepper) SampleSensors(kind SensorKind, start, count uint16) ([]byte, bool) {
	switch kind {
	case SensorLine:
		if int(start)+int(count) > len(m.LineValues) {
			return nil, false
		}
		return m.LineValues[start : start+count], true
	case SensorEnabled:
		if start != 0 || count != 1 {
			return nil, false
		}
		v := byte(0)
		if m.enabled {
			v = 1
		}
		return []byte{v}, true
	default:
		return make([]byte, count), true
	}
}
