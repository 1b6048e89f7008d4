package driver

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/container"
)

const (
	roadWidth = 8.0      // 转向误差归一化使用的道路宽度
	steerLock = 0.541052 // 最大转向角（弧度）

	// 转向曲线整形：steering*(reshapeA*steering+reshapeB)
	reshapeThreshold = 0.1
	reshapeA         = 2.5
	reshapeB         = 0.75
)

// Step 执行一个仿真步的控制
// 功能：根据本步指标、当前车速与车道数提示，计算驾驶指令并返回更新后的状态
// 参数：s-上一步的状态，ind-本步指标，speed-当前车速，lanes-车道数提示（[1,3]之外时自动估计）
// 返回：新状态与本步指令，传入的s不会被修改
// 算法说明：
// 1. 输入存在NaN/Inf时输出中性指令，状态保持不变
// 2. 多车道：更新侧方车道空闲锁存，变道决策或跟车限速，按状态计算目标中心线
// 3. 单车道：只做跟车限速与车道保持
// 4. 转向控制：steering=(angle-centerLine/roadWidth)/steerLock/steerGain，保持车道时整形
// 5. 记录转向历史，计算期望车速并进行速度控制
func Step(s State, ind affordance.Indicators, speed float64, lanes int) (State, Command) {
	if err := ind.Validate(); err != nil {
		log.Warnf("reject tick: %v", err)
		return s, Command{Speed: speed}
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		log.Warnf("reject tick: %v: speed=%v", affordance.ErrNonFinite, speed)
		return s, Command{}
	}

	s = s.Clone()
	if s.SteeringHistory.Cap() == 0 {
		s.SteeringHistory = container.NewRing[float64](steeringHistorySize)
	}
	prev := s.LaneChange
	p := profileFor(resolveLanes(lanes, ind))

	limit := float64(unconstrainedSpeed)
	if p.laneChange {
		s.updateGapLatches(ind)
		limit = s.planLaneChange(ind, p)
		s.updateCenterLine(ind)
	} else {
		if ind.DistObstacleCenterLane < occupiedDistance {
			limit = CarFollowLimit(ind.DistObstacleCenterLane)
		}
		s.holdLane(ind)
	}

	steering := (ind.Angle - s.CenterLineOffset/roadWidth) / steerLock / s.SteerGain
	if (!p.laneChange || s.LaneChange == LaneKeep) && s.SteerGain > 1 && steering > reshapeThreshold {
		steering = steering * (reshapeA*steering + reshapeB)
	}
	s.SteeringHistory.Push(steering)

	s.DesiredSpeed = desiredSpeed(ind.Fast, s.SteerTrend(), limit)
	cmd := SpeedControl(s.DesiredSpeed, speed)
	cmd.Steering = lo.Clamp(steering, -1, 1)

	if s.LaneChange != prev {
		log.Debugf("lane change %v -> %v, lanes=%d, gain=%v", prev, s.LaneChange, p.lanes, s.SteerGain)
	}
	return s, cmd
}

// Controller 单车控制器
// 功能：持有State并在每个仿真步调用Step
// 说明：非线程安全，只能由驾驶循环所在的goroutine调用
type Controller struct {
	state State
}

// NewController 创建状态为初始值的控制器
func NewController() *Controller {
	return &Controller{state: NewState()}
}

// Control 执行一个仿真步的控制并保存新状态
func (c *Controller) Control(ind affordance.Indicators, speed float64, lanes int) Command {
	var cmd Command
	c.state, cmd = Step(c.state, ind, speed, lanes)
	return cmd
}

// State 返回当前状态的副本
func (c *Controller) State() State {
	return c.state.Clone()
}

// Reset 恢复初始状态
func (c *Controller) Reset() {
	c.state = NewState()
}
