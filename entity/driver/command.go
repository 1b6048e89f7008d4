package driver

import "fmt"

// Command 每个仿真步输出的驾驶指令
// 功能：描述发送给下游仿真桥接的转向、油门、刹车指令
// 说明：Speed为本步测得的车速，仅透传，不由控制器产生
type Command struct {
	Steering   float64 // 转向，[-1,1]，正值向左
	Accelerate float64 // 油门，[0,1]
	Brake      float64 // 刹车，[0,1]

	Speed float64 // 当前测得车速
}

// IsAccel 是否处于加速状态
func (c Command) IsAccel() bool {
	return c.Accelerate > 0
}

// IsBrake 是否处于制动状态
func (c Command) IsBrake() bool {
	return c.Brake > 0
}

// Mode 指令模式的简短描述，用于日志
func (c Command) Mode() string {
	switch {
	case c.IsAccel():
		return "[ACCEL]"
	case c.IsBrake():
		return "[BRAKE]"
	default:
		return "[COAST]"
	}
}

func (c Command) String() string {
	return fmt.Sprintf(
		"%s steering=%.4f accelerate=%.4f brake=%.4f speed=%.2f",
		c.Mode(), c.Steering, c.Accelerate, c.Brake, c.Speed,
	)
}
