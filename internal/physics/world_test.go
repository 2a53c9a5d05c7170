package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

func testConfig(t *testing.T) config.BotConfiguration {
	t.Helper()
	cfg := config.BotConfiguration{
		WidthAxle:           150,
		LengthFront:         150,
		LengthBack:          30,
		ClearingBack:        5,
		WheelDiameter:       30,
		GearRatioNum:        1,
		GearRatioDen:        20,
		FrontSensorsSpacing: 5,
		FrontSensorsHeight:  5,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func straightTrack() *track.Track {
	return track.Build([]track.Segment{track.Start(), track.Straight(2), track.End()})
}

// TestWorld_DrivesForwardWithEqualPWM checks that equal, positive PWM on
// both wheels moves the body forward along the track's heading without
// inducing yaw.
func TestWorld_DrivesForwardWithEqualPWM(t *testing.T) {
	cfg := testConfig(t)
	w := NewWorld(cfg, straightTrack())
	w.SetActive(true)
	w.SetMotors(500, 500)

	startPos := w.Body.Pos
	for i := 0; i < 1000; i++ {
		w.Step(1000) // 1ms steps
	}

	moved := w.Body.Pos.Sub(startPos).Magnitude()
	assert.Greater(t, moved, float32(0), "equal forward PWM must move the body")

	euler := w.Body.Rot.ToEulerXYZ()
	assert.InDelta(t, 0, euler.Yaw, 1e-3, "equal PWM on both wheels must not yaw the body")
}

// TestWorld_InactiveDoesNotMove checks spec §4.C: no force is applied
// while the execution-activity flag is false.
func TestWorld_InactiveDoesNotMove(t *testing.T) {
	cfg := testConfig(t)
	w := NewWorld(cfg, straightTrack())
	w.SetMotors(1000, 1000)
	w.SetActive(false)

	startPos := w.Body.Pos
	for i := 0; i < 100; i++ {
		w.Step(1000)
	}

	assert.Equal(t, startPos, w.Body.Pos, "an inactive world must not move the body")
	assert.Equal(t, float32(0), w.WheelLeft.AngularVel, "an inactive world must not spin the wheels")
}

// TestWorld_DifferentialSteerYaws checks that unequal PWM produces yaw
// (turning), matching the no-slip diff-drive coupling.
func TestWorld_DifferentialSteerYaws(t *testing.T) {
	cfg := testConfig(t)
	w := NewWorld(cfg, straightTrack())
	w.SetActive(true)
	w.SetMotors(200, 800)

	for i := 0; i < 500; i++ {
		w.Step(1000)
	}

	euler := w.Body.Rot.ToEulerXYZ()
	assert.NotZero(t, euler.Yaw, "differential PWM must yaw the body")
}
