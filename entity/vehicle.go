package entity

import (
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
)

const (
	VehicleLength   = 4.5  // 车长（米）
	MaxAcceleration = 4.0  // 油门全开时的加速度（米/秒²）
	MaxDeceleration = 10.0 // 刹车全开时的减速度（米/秒²）
)

// Acceleration 指令对应的纵向加速度
func Acceleration(cmd driver.Command) float64 {
	return cmd.Accelerate*MaxAcceleration - cmd.Brake*MaxDeceleration
}

// ComputeVAndDistance 计算本时刻的速度与移动距离
// v(t)=v(t-1)+acc*dt, ds=v(t-1)*dt+acc*dt*dt/2
func ComputeVAndDistance(v, a, dt float64) (float64, float64) {
	dv := a * dt
	if v+dv < 0 {
		// 刹车到停止
		return 0, v * v / 2 / -a
	}
	return v + dv, (v + dv/2) * dt
}
