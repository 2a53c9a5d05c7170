package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPWMToTorque_Zero checks spec §8.4: zero pwm always yields zero
// torque, and full pwm at the motor's own no-load speed yields zero
// torque.
func TestPWMToTorque_Zero(t *testing.T) {
	for _, omega := range []float32{-100, 0, 50, 1000} {
		assert.Equal(t, float32(0), PWMToTorque(0, omega, 1, 1), "zero pwm must produce zero torque")
	}

	noLoadWheelOmega := NoLoadOmega * 1 // gear ratio 1
	assert.InDelta(t, 0, PWMToTorque(PWMMax, noLoadWheelOmega, 1, 1), 1e-9)
	assert.InDelta(t, 0, PWMToTorque(-PWMMax, -noLoadWheelOmega, 1, 1), 1e-9)
}

// TestPWMToTorque_LinearAtStall checks spec §8.5: at zero wheel speed
// and unity gearing, torque is linear in pwm with slope
// StallTorque/PWMMax.
func TestPWMToTorque_LinearAtStall(t *testing.T) {
	slope := StallTorque / float32(PWMMax)
	for _, pwm := range []int16{-1000, -500, -1, 1, 250, 1000} {
		got := PWMToTorque(pwm, 0, 1, 1)
		want := slope * float32(pwm)
		assert.InDelta(t, want, got, 1e-9)
	}
}
