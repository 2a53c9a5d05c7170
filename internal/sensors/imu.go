package sensors

import "github.com/haraldreingruber-dedalus/line-follower-simulator/internal/mathutil"

// FuseIMU implements spec §4.B's "IMU fusion": the fused Euler angles
// are the body transform's own XYZ decomposition (there is no separate
// integration filter — the simulated IMU is perfect up to sensor
// quantization, which happens at ABI encoding time), and the gyro
// values are the body's angular velocity projected onto body-local
// axes.
func FuseIMU(bodyRot mathutil.Quat, angularVelocityWorld mathutil.Vec3) (euler mathutil.EulerXYZ, gyroLocal mathutil.Vec3) {
	euler = bodyRot.ToEulerXYZ()
	gyroLocal = bodyRot.Conjugate().RotateVec3(angularVelocityWorld)
	return euler, gyroLocal
}
