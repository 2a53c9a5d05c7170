// Package motor implements the DC motor torque-speed transfer function
// of spec §4.C: PWM duty cycle and current wheel angular velocity in,
// signed wheel torque out.
package motor

import math32 "github.com/chewxy/math32"

// PWM duty-cycle bounds (spec §3 MotorDriversDutyCycles, §4.C).
const (
	PWMMin int16 = -1000
	PWMMax int16 = 1000
)

// NoLoadOmega is the motor's unloaded speed at full drive, in rad/s:
// 40000 RPM converted to rad/s (spec §4.C).
const NoLoadOmega = 40000 * 2 * math32.Pi / 60

// StallTorque is the motor's stall torque in N*m (spec §4.C).
const StallTorque = 0.001

// ClampPWM restricts pwm to [PWMMin, PWMMax] (spec §3).
func ClampPWM(pwm int16) int16 {
	switch {
	case pwm > PWMMax:
		return PWMMax
	case pwm < PWMMin:
		return PWMMin
	default:
		return pwm
	}
}

// gearRatio returns num/den, or 1 if den is zero (spec §4.C step 2).
func gearRatio(num, den float32) float32 {
	if den == 0 {
		return 1
	}
	return num / den
}

// PWMToTorque computes the signed wheel torque (N*m) produced by pwm at
// the wheel's current angular velocity wheelOmega (rad/s along its
// axle), given the gearbox ratio gearNum/gearDen (spec §4.C transfer
// function, steps 1-6).
func PWMToTorque(pwm int16, wheelOmega, gearNum, gearDen float32) float32 {
	clamped := ClampPWM(pwm)
	p := float32(clamped) / float32(PWMMax)

	g := gearRatio(gearNum, gearDen)
	absG := math32.Abs(g)
	if absG == 0 {
		absG = 1
	}

	omegaMotor := wheelOmega / absG
	omegaNoLoad := NoLoadOmega * math32.Abs(p)

	var ratio float32
	if omegaNoLoad > 1e-6 {
		ratio = 1 - math32.Abs(omegaMotor)/omegaNoLoad
		if ratio < 0 {
			ratio = 0
		}
	}

	motorTorque := StallTorque * math32.Abs(p) * ratio
	wheelTorque := motorTorque / absG

	if p < 0 {
		return -wheelTorque
	}
	return wheelTorque
}
