package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
)

// Clock 驾驶循环时钟
// 功能：管理驾驶循环的时间推进
// 说明：维护当前步数与仿真时间，模拟区间为[StartStep, EndStep)，EndStep为0表示不限制
type Clock struct {
	DT        float64 // 每步时间间隔（秒）
	StartStep int32   // 起始步
	EndStep   int32   // 结束步

	T    float64 // 当前时间（秒）
	Step int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 参数：stepConfig-控制步配置，包含起始步、总步数、时间间隔
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:        stepConfig.Interval,
		StartStep: stepConfig.Start,
	}
	if stepConfig.Total > 0 {
		c.EndStep = stepConfig.Start + stepConfig.Total
	}
	c.Init()
	return c
}

// Init 重置为起始步
func (c *Clock) Init() {
	c.Step = c.StartStep
	c.T = float64(c.Step) * c.DT
}

// Tick 推进一步
func (c *Clock) Tick() {
	c.Step++
	c.T = float64(c.Step) * c.DT
}

// Done 是否已到达结束步
func (c *Clock) Done() bool {
	return c.EndStep > 0 && c.Step >= c.EndStep
}

// Elapsed 自起始步以来经过的步数
func (c *Clock) Elapsed() int32 {
	return c.Step - c.StartStep
}

// String 获取时钟的字符串表示
// 返回：格式化的时间字符串（HH:MM:SS.mmm）
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, t)
}
