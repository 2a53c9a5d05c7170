package sensors

import (
	"testing"

	math32 "github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
)

// TestReflectance_Invariants checks spec §8.3: R is even in d,
// non-decreasing on d>=0, R(0)=0, R(LineSize/2+Transition)=100.
func TestReflectance_Invariants(t *testing.T) {
	require.Equal(t, float32(0), Reflectance(0), "R(0) must be 0")

	outer := float32(LineSize/2 + Transition)
	assert.InDelta(t, 100, Reflectance(outer), 1e-4, "R at the outer edge must be 100")

	for _, d := range []float32{0.001, 0.005, 0.009, 0.011, 0.015, 0.02, 0.03, 0.05} {
		assert.Equal(t, Reflectance(d), Reflectance(-d), "R must be even in d")
	}

	prev := float32(-1)
	for d := float32(0); d <= outer+0.01; d += 0.001 {
		v := Reflectance(d)
		assert.GreaterOrEqual(t, v, prev, "R must be non-decreasing on d>=0")
		prev = v
	}

	assert.Equal(t, float32(100), Reflectance(math32.Inf(1)), "a missed ray must read white")
}

// TestMotorAngle_Wrap checks that large accumulated angles wrap to 16
// bits instead of overflowing.
func TestMotorAngle_Wrap(t *testing.T) {
	// 65536 ticks (32 motor-frame revolutions at TicksPerRevolution=2048)
	// should wrap back to (approximately) zero ticks.
	revolutions := float32(65536 / TicksPerRevolution)
	a := MotorAngle(2*math32.Pi*revolutions, 1, 1)
	assert.InDelta(t, 0, int(a), 1, "65536 ticks should wrap to ~0 ticks")
}

// TestFuseIMU_Identity checks that an unrotated, stationary body fuses
// to zero Euler angles and zero gyro.
func TestFuseIMU_Identity(t *testing.T) {
	euler, gyro := FuseIMU(mathutil.Identity, mathutil.Vec3{})
	assert.Zero(t, euler.Roll)
	assert.Zero(t, euler.Pitch)
	assert.Zero(t, euler.Yaw)
	assert.Zero(t, gyro.Magnitude())
}
