// Package hostabi implements the Guest ABI Host of spec §4.F: the
// operations a wasm guest calls into, the handle table backing its
// async operations, and the fuel-metered cooperative scheduling model
// under which the guest runs to the next host call and the host
// advances physics exactly as far as that call requires.
//
// The package is split in two: this file is the pure ABI logic, tested
// directly against stepper.MockStepper (spec §4.G); host_module.go
// binds these methods onto a wazero host module so a real guest
// component can call them.
package hostabi

import (
	"github.com/pkg/errors"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/recorder"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/stepper"
)

// ReadError is the guest-recoverable error enum of spec §6.
type ReadError int

const (
	ErrNone ReadError = iota
	ErrInvalidSensor
	ErrInvalidRange
	ErrInvalidHandle
	ErrTrapped
)

func (e ReadError) String() string {
	switch e {
	case ErrNone:
		return "none"
	case ErrInvalidSensor:
		return "invalid_sensor"
	case ErrInvalidRange:
		return "invalid_range"
	case ErrInvalidHandle:
		return "invalid_handle"
	case ErrTrapped:
		return "trapped"
	default:
		return "unknown"
	}
}

type handleKind int

const (
	handleTimer handleKind = iota
	handleSensor
)

type pendingHandle struct {
	kind       handleKind
	deadlineUs uint32

	sensorKind        stepper.SensorKind
	start, count      uint16

	ready  bool
	result []byte
}

// TrapError is returned by the driver (never the guest) when the run
// must abort: fuel exhaustion, unknown-handle accesses are recoverable
// to the guest per spec §7 and surfaced as ReadError instead.
type TrapError struct {
	Reason string
}

func (e *TrapError) Error() string { return "trap: " + e.Reason }

// Host is the single capability value threaded through every ABI
// method (spec §9 "Globally shared simulation time and RNG are
// captured in a single Host value passed by capability").
type Host struct {
	stepper      stepper.Stepper
	stepPeriodUs uint32
	recorder     *recorder.Recorder

	nowUs uint32

	pwmLeft, pwmRight int16

	handles    map[uint64]*pendingHandle
	nextHandle uint64

	sensorLatency func(stepper.SensorKind) uint32
}

// defaultLatency is zero for every simulated sensor kind (spec §4.F
// read_sensor_blocking: "zero for simulated sensors").
func defaultLatency(stepper.SensorKind) uint32 { return 0 }

// New builds a Host over the given stepper, recording one trace entry
// per fixed step of stepPeriodUs microseconds.
func New(step stepper.Stepper, stepPeriodUs uint32, rec *recorder.Recorder) *Host {
	return &Host{
		stepper:       step,
		stepPeriodUs:  stepPeriodUs,
		recorder:      rec,
		handles:       make(map[uint64]*pendingHandle),
		sensorLatency: defaultLatency,
	}
}

// SetStepper rebinds the stepper capability. The driver (spec §4.G)
// instantiates the host before it knows the guest's configuration —
// setup() only returns that configuration — so it constructs the host
// with a placeholder stepper, calls setup(), builds the real
// PhysicsStepper from the result, and swaps it in before calling run().
func (h *Host) SetStepper(s stepper.Stepper) { h.stepper = s }

// CurrentTime implements current_time() (spec §4.F, immediate).
func (h *Host) CurrentTime() uint32 { return h.nowUs }

// stepOnce advances physics by exactly one fixed step, resolves any
// handles that become ready, and appends one execution record (spec
// §4.E, §4.G).
func (h *Host) stepOnce() {
	h.stepper.SetMotors(h.pwmLeft, h.pwmRight)
	h.stepper.StepOnce(h.stepPeriodUs)
	h.nowUs += h.stepPeriodUs

	for _, p := range h.handles {
		if p.ready || h.nowUs < p.deadlineUs {
			continue
		}
		p.ready = true
		if p.kind == handleSensor {
			if data, ok := h.stepper.SampleSensors(p.sensorKind, p.start, p.count); ok {
				p.result = data
			}
		}
	}

	h.appendRecord()
}

func (h *Host) appendRecord() {
	if h.recorder == nil {
		return
	}
	pose := h.stepper.BodyPose()
	left, right := h.stepper.WheelTransforms()
	motorLeft, motorRight := h.stepper.MotorAngles()

	var lineVals [16]float32
	if raw, ok := h.stepper.SampleSensors(stepper.SensorLine, 0, 16); ok {
		for i, b := range raw {
			lineVals[i] = float32(b)
		}
	}

	var gyro mathutil.Vec3
	if raw, ok := h.stepper.SampleSensors(stepper.SensorGyro, 0, 3); ok {
		v := decodeFixedPointChannels(raw, 3)
		gyro = mathutil.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}

	var imuFused mathutil.EulerXYZ
	if raw, ok := h.stepper.SampleSensors(stepper.SensorImuFused, 0, 3); ok {
		v := decodeFixedPointChannels(raw, 3)
		imuFused = mathutil.EulerXYZ{Roll: v[0], Pitch: v[1], Yaw: v[2]}
	}

	h.recorder.Append(recorder.Record{
		TimeUs:          h.nowUs,
		BodyPos:         pose.Pos,
		BodyRot:         pose.Rot,
		WheelLeftPos:    left.Pos,
		WheelLeftRot:    left.Rot,
		WheelRightPos:   right.Pos,
		WheelRightRot:   right.Rot,
		LineSensors:     lineVals,
		Gyro:            gyro,
		ImuFused:        imuFused,
		MotorAngleLeft:  motorLeft,
		MotorAngleRight: motorRight,
		PWMLeft:         h.pwmLeft,
		PWMRight:        h.pwmRight,
		BotPosition:     h.stepper.BotPosition(),
		Active:          h.stepper.IsActive(),
	})
}

// decodeFixedPointChannels unpacks n little-endian i16 channels (as
// packed by stepper.PhysicsStepper.SampleSensors for SensorGyro and
// SensorImuFused) back into radians/rad-per-second, the inverse of
// PhysicsStepper's packI16 at stepper.FixedPointScale.
func decodeFixedPointChannels(data []byte, n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n && i*2+1 < len(data); i++ {
		raw := uint16(data[i*2]) | uint16(data[i*2+1])<<8
		out[i] = float32(int16(raw)) / stepper.FixedPointScale
	}
	return out
}

// scheduleOrAdvance is the shared primitive behind every blocking
// operation (spec §4.F "blocking host calls do not replenish fuel —
// they only advance simulated time"; the original source's
// bot/src/blocking_api.rs and sim/executor/src/wasm_executor.rs split
// blocking from async entirely at the call site, but both ultimately
// bottom out in "advance physics to a target time"). It steps physics
// one fixed period at a time until now has reached target, so partial
// periods always round up (spec scenario S1).
func (h *Host) scheduleOrAdvance(target uint32) {
	for h.nowUs < target {
		h.stepOnce()
	}
}

// SleepBlockingFor implements sleep_blocking_for (spec §4.F, blocking).
func (h *Host) SleepBlockingFor(us uint32) {
	h.scheduleOrAdvance(h.nowUs + us)
}

// SleepBlockingUntil implements sleep_blocking_until (spec §4.F,
// blocking). Resolved Open Question (spec §9): a target at or before
// now returns immediately with no advance, matching the source.
func (h *Host) SleepBlockingUntil(us uint32) {
	h.scheduleOrAdvance(us)
}

// ReadSensorBlocking implements read_sensor_blocking (spec §4.F,
// blocking). Resolved Open Question (spec §9): latency is charged as
// an advance even when it is zero, so a zero-latency sensor still
// observes state at or after "now" rather than skipping the scheduling
// primitive entirely.
func (h *Host) ReadSensorBlocking(kind stepper.SensorKind, start, count uint16) ([]byte, ReadError) {
	if _, ok := h.stepper.SampleSensors(kind, start, count); !ok {
		return nil, ErrInvalidRange
	}
	latency := h.sensorLatency(kind)
	h.scheduleOrAdvance(h.nowUs + latency)
	data, _ := h.stepper.SampleSensors(kind, start, count)
	return data, ErrNone
}

func (h *Host) allocHandle() uint64 {
	h.nextHandle++
	return h.nextHandle
}

// SleepAsyncFor implements sleep_async_for (spec §4.F, async).
func (h *Host) SleepAsyncFor(us uint32) uint64 {
	id := h.allocHandle()
	h.handles[id] = &pendingHandle{kind: handleTimer, deadlineUs: h.nowUs + us}
	return id
}

// SleepAsyncUntil implements sleep_async_until (spec §4.F, async).
func (h *Host) SleepAsyncUntil(us uint32) uint64 {
	id := h.allocHandle()
	h.handles[id] = &pendingHandle{kind: handleTimer, deadlineUs: us}
	return id
}

// ReadSensorAsync implements read_sensor_async (spec §4.F, async). The
// range is validated immediately (a cheap probe sample, discarded)
// rather than only once the handle resolves, so an invalid index is
// reported to the guest at the call site instead of surfacing later as
// a silently empty Ready result.
func (h *Host) ReadSensorAsync(kind stepper.SensorKind, start, count uint16) (uint64, ReadError) {
	if _, ok := h.stepper.SampleSensors(kind, start, count); !ok {
		return 0, ErrInvalidRange
	}
	id := h.allocHandle()
	h.handles[id] = &pendingHandle{
		kind:       handleSensor,
		deadlineUs: h.nowUs + h.sensorLatency(kind),
		sensorKind: kind,
		start:      start,
		count:      count,
	}
	return id, ErrNone
}

// PollTimer implements poll_timer (spec §4.F, immediate).
func (h *Host) PollTimer(handle uint64) (ready bool, err ReadError) {
	p, ok := h.handles[handle]
	if !ok || p.kind != handleTimer {
		return false, ErrInvalidHandle
	}
	return h.nowUs >= p.deadlineUs, ErrNone
}

// PollSensor implements poll_sensor (spec §4.F, immediate).
func (h *Host) PollSensor(handle uint64) (ready bool, data []byte, err ReadError) {
	p, ok := h.handles[handle]
	if !ok || p.kind != handleSensor {
		return false, nil, ErrInvalidHandle
	}
	if h.nowUs < p.deadlineUs {
		return false, nil, ErrNone
	}
	if !p.ready {
		// The deadline was reached with no step in between (zero
		// latency), so the sample is taken now, at the deadline.
		p.ready = true
		if data, ok := h.stepper.SampleSensors(p.sensorKind, p.start, p.count); ok {
			p.result = data
		}
	}
	return true, p.result, ErrNone
}

// ForgetHandle implements forget_handle (spec §4.F, immediate).
// Resolved Open Question (spec §9): forgetting an unknown handle is an
// error, for symmetry with poll's InvalidHandle behavior (invariant
// §8.6).
func (h *Host) ForgetHandle(handle uint64) ReadError {
	if _, ok := h.handles[handle]; !ok {
		return ErrInvalidHandle
	}
	delete(h.handles, handle)
	return ErrNone
}

// SetPower implements set_power (spec §4.F, immediate): stored, takes
// effect on the next fixed step.
func (h *Host) SetPower(left, right int16) {
	h.pwmLeft = clampPWM(left)
	h.pwmRight = clampPWM(right)
}

func clampPWM(v int16) int16 {
	const min, max = -1000, 1000
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// GetEnabled implements get_enabled (spec §4.F, immediate).
func (h *Host) GetEnabled() bool {
	h.markActive()
	return h.enabledSource().Enabled()
}

// WaitEnabled implements wait_enabled (spec §4.F, blocking).
func (h *Host) WaitEnabled() {
	h.markActive()
	for !h.enabledSource().Enabled() {
		h.stepOnce()
	}
}

// WaitDisabled implements wait_disabled (spec §4.F, blocking).
func (h *Host) WaitDisabled() {
	h.markActive()
	for h.enabledSource().Enabled() {
		h.stepOnce()
	}
}

func (h *Host) markActive() {
	if !h.stepper.IsActive() {
		h.stepper.MarkActive()
	}
}

// enabledSigner is satisfied by steppers that expose the remote-enable
// signal (PhysicsStepper and MockStepper both do); kept as a narrow
// interface so Host doesn't need the concrete stepper type.
type enabledSigner interface {
	Enabled() bool
}

func (h *Host) enabledSource() enabledSigner {
	if s, ok := h.stepper.(enabledSigner); ok {
		return s
	}
	return alwaysDisabled{}
}

type alwaysDisabled struct{}

func (alwaysDisabled) Enabled() bool { return false }

// WriteLine implements write_line (spec §4.F, immediate).
func (h *Host) WriteLine(s string) {
	if h.recorder != nil {
		h.recorder.WriteLine(s)
	}
}

// WriteFile implements write_file (spec §4.F, immediate).
func (h *Host) WriteFile(name string, data []byte, schema []recorder.CSVColumn) {
	if h.recorder != nil {
		h.recorder.WriteFile(name, data, schema)
	}
}

// ValidateSensorRange reports a zero-count sensor range as a
// pkg/errors error for the driver's own logs; the guest only ever sees
// the ReadError enum (spec §7 propagation policy). It checks only that
// count is non-zero: index bounds are checked by the stepper's
// SampleSensors, and the ABI operations in this file do not call it.
func ValidateSensorRange(kind stepper.SensorKind, start, count uint16) error {
	if count == 0 {
		return errors.Errorf("sensor range count must be non-zero")
	}
	return nil
}
