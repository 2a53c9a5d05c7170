package sensors

import math32 "github.com/chewxy/math32"

// TicksPerRevolution is the motor encoder's resolution. The source
// leaves this unspecified; 2048 ticks/revolution (a common quadrature
// encoder resolution) is chosen and frozen here.
const TicksPerRevolution = 2048

const ticksPerRadian = TicksPerRevolution / (2 * math32.Pi)

// MotorAngle implements spec §4.B's motor encoder model: the wheel's
// cumulative shaft angle (radians) is reduced to the motor frame by the
// gear ratio, converted to encoder ticks, and wrapped to 16 bits.
func MotorAngle(wheelAngleRad, gearRatioNum, gearRatioDen float32) uint16 {
	gear := gearRatioNum / gearRatioDen
	if gearRatioDen == 0 {
		gear = gearRatioNum
	}
	motorAngleRad := wheelAngleRad * gear
	ticks := int64(math32.Round(motorAngleRad * ticksPerRadian))
	return uint16(uint64(ticks) & 0xFFFF)
}
