// Package physics is the fixed-step rigid-body bridge of spec §4.D: a
// bot body, two wheels and a bumper, driven by motor torques and
// advanced on a fixed micro-second cadence.
//
// No 3D rigid-body engine exists anywhere in the retrieval pack (see
// DESIGN.md), so this is a hand-written, deliberately small
// differential-drive physics model rather than a general contact
// solver: wheel spin is integrated from motor torque, coupled to body
// translation through the same no-slip rolling kinematics as the
// teacher's pkg/robot/kinematics/wheels/differential.go
// (Forward()/Inverse()), while the motor's reaction torque (spec §4.C)
// is integrated separately as a body pitch perturbation, since the
// wheel axle is the body-local lateral (X) axis.
package physics

import (
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/config"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/motor"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/track"
)

// Assumed mass constants (spec §4.D specifies relative density/friction
// only; absolute masses are an implementation choice, frozen here).
const (
	BodyMass   = 0.05  // kg
	WheelMass  = 0.005 // kg
	BodyHeight = 0.05  // m, used only for the pitch-inertia estimate
	Friction   = 0.1   // min-combine friction coefficient (spec §4.D), informational
)

// WheelState is one wheel's rotational state.
type WheelState struct {
	Angle      float32 // cumulative shaft angle, radians
	AngularVel float32 // rad/s about the axle
}

// BodyState is the bot chassis's pose and angular velocity.
type BodyState struct {
	Pos    mathutil.Vec3
	Rot    mathutil.Quat
	AngVel mathutil.Vec3 // world-space rad/s
}

// World is the single dynamic bot plus the static track it drives on
// (spec §4.D).
type World struct {
	Track  *track.Track
	Config config.BotConfiguration

	Body       BodyState
	WheelLeft  WheelState
	WheelRight WheelState

	pwmLeft, pwmRight int16
	active            bool

	wheelRadius     float32
	axleWidth       float32
	wheelInertia    float32
	pitchInertia    float32
}

// NewWorld places the bot at the track's starting pose (origin of the
// first, Start, segment) with its wheels level and motionless.
func NewWorld(cfg config.BotConfiguration, tr *track.Track) *World {
	w := &World{Track: tr, Config: cfg}

	r := mmToM(cfg.WheelRadius())
	w.wheelRadius = r
	w.axleWidth = mmToM(cfg.WidthAxle)
	w.wheelInertia = 0.5 * WheelMass * r * r

	length := mmToM(cfg.LengthFront + cfg.LengthBack)
	w.pitchInertia = (BodyMass / 12) * (length*length + BodyHeight*BodyHeight)

	start := mathutil.Transform2D{}
	if len(tr.Origins) > 0 {
		start = tr.Origins[0]
	}
	w.Body.Pos = mathutil.Vec3{X: start.Pos.X, Y: start.Pos.Y, Z: r}
	w.Body.Rot = mathutil.FromAxisAngle(mathutil.Vec3{Z: 1}, start.Heading)

	return w
}

func mmToM(v float32) float32 { return v / 1000 }

// SetMotors stores the next fixed step's signed PWM duty cycles,
// clamped per spec §3.
func (w *World) SetMotors(left, right int16) {
	w.pwmLeft = motor.ClampPWM(left)
	w.pwmRight = motor.ClampPWM(right)
}

// SetActive gates motor force application and, by extension, whether
// the bot can move at all (spec §4.C "No force is applied when the
// execution-activity flag is false").
func (w *World) SetActive(active bool) { w.active = active }

// Step advances the world by dtUs microseconds (spec §4.D "fixed-step
// advancement").
func (w *World) Step(dtUs uint32) {
	dt := float32(dtUs) / 1e6
	if dt <= 0 {
		return
	}

	gearN, gearD := w.Config.GearRatioNum, w.Config.GearRatioDen

	var torqueL, torqueR float32
	if w.active {
		torqueL = motor.PWMToTorque(w.pwmLeft, w.WheelLeft.AngularVel, gearN, gearD)
		torqueR = motor.PWMToTorque(w.pwmRight, w.WheelRight.AngularVel, gearN, gearD)
	}

	omegaL := w.WheelLeft.AngularVel + torqueL/w.wheelInertia*dt
	omegaR := w.WheelRight.AngularVel + torqueR/w.wheelInertia*dt

	w.WheelLeft.AngularVel = omegaL
	w.WheelRight.AngularVel = omegaR
	w.WheelLeft.Angle += omegaL * dt
	w.WheelRight.Angle += omegaR * dt

	r := w.wheelRadius
	forwardSpeed := (omegaL*r + omegaR*r) / 2
	yawRate := (omegaR*r - omegaL*r) / w.axleWidth

	var pitchRate float32
	if w.active {
		pitchRate = -(torqueL + torqueR) / w.pitchInertia
	}

	// The axle runs along the body's local lateral (X) axis, matching
	// the track frame's Y-forward/X-lateral convention (internal/track's
	// Transform2D), so the reaction torque perturbs rotation about X.
	pitchWorld := w.Body.Rot.RotateVec3(mathutil.Vec3{X: pitchRate})
	w.Body.AngVel = mathutil.Vec3{X: pitchWorld.X, Y: pitchWorld.Y, Z: pitchWorld.Z + yawRate}

	halfAngVel := mathutil.Quat{X: w.Body.AngVel.X, Y: w.Body.AngVel.Y, Z: w.Body.AngVel.Z}
	dq := halfAngVel.Product(w.Body.Rot)
	w.Body.Rot = mathutil.Quat{
		X: w.Body.Rot.X + 0.5*dt*dq.X,
		Y: w.Body.Rot.Y + 0.5*dt*dq.Y,
		Z: w.Body.Rot.Z + 0.5*dt*dq.Z,
		W: w.Body.Rot.W + 0.5*dt*dq.W,
	}.Normalized()

	// Forward is the body's local Y axis, mirroring internal/track's
	// Transform2D.TranslateInDirection convention.
	forwardWorld := w.Body.Rot.RotateVec3(mathutil.Vec3{Y: forwardSpeed})
	w.Body.Pos = mathutil.Vec3{
		X: w.Body.Pos.X + forwardWorld.X*dt,
		Y: w.Body.Pos.Y + forwardWorld.Y*dt,
		Z: r,
	}
}

// WheelTransform returns a wheel's world pose for the execution
// recorder (spec §3 ExecutionData left/right wheel transforms): the
// body's anchor offset by half the axle width, spun by the wheel's own
// cumulative angle about its axle (the body-local X axis). The left
// wheel sits on the body's -X side, as in the track frame's left turns.
func (w *World) WheelTransform(side track.Side) (mathutil.Vec3, mathutil.Quat) {
	half := -w.axleWidth / 2 * side.Sign()
	anchorLocal := mathutil.Vec3{X: half}
	pos := w.Body.Pos.Add(w.Body.Rot.RotateVec3(anchorLocal))

	var angle float32
	if side == track.SideLeft {
		angle = w.WheelLeft.Angle
	} else {
		angle = w.WheelRight.Angle
	}
	spin := mathutil.FromAxisAngle(mathutil.Vec3{X: 1}, angle)
	return pos, w.Body.Rot.Product(spin)
}
