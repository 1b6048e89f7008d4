package entity

import (
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
)

// Frame 一个仿真步的输入
type Frame struct {
	Indicators affordance.Indicators // 估计器给出的指标
	Speed      float64               // 当前测得车速（米/秒）
}

// 指标来源接口（轨迹回放或合成道路）
type ISource interface {
	// 返回本步的输入，来源耗尽时返回false
	Next() (Frame, bool)
	// 将本步指令作用于车辆，dt为时间间隔（秒）
	Apply(cmd driver.Command, dt float64)
}

// 逐步记录输出接口
type ISink interface {
	Write(step int32, f Frame, cmd driver.Command) error
	Flush() error
}
