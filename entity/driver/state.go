package driver

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/container"
)

// LaneChangeState 变道状态机的状态
type LaneChangeState int

const (
	LaneKeep              LaneChangeState = 0  // 保持车道
	LaneChangeLeftBegin   LaneChangeState = -2 // 开始向左变道
	LaneChangeLeftSettle  LaneChangeState = -1 // 驶入左侧车道
	LaneChangeRightBegin  LaneChangeState = 2  // 开始向右变道
	LaneChangeRightSettle LaneChangeState = 1  // 驶入右侧车道
)

func (s LaneChangeState) String() string {
	switch s {
	case LaneKeep:
		return "keep"
	case LaneChangeLeftBegin:
		return "left-begin"
	case LaneChangeLeftSettle:
		return "left-settle"
	case LaneChangeRightBegin:
		return "right-begin"
	case LaneChangeRightSettle:
		return "right-settle"
	default:
		return fmt.Sprintf("LaneChangeState(%d)", int(s))
	}
}

const (
	steeringHistorySize      = 5   // 转向历史的容量
	initialObstacleDist      = 60  // 上一步侧方车道前车距离的初始值
	initialGapTimerThreshold = 60  // 侧方车道空闲判定的初始计时阈值
	initialSteerGain         = 1.0 // 初始转向增益
)

// State 控制器跨仿真步保持的状态
// 功能：记录变道状态机、侧方车道空闲锁存、转向历史等
// 说明：由Step以值的方式传入传出，只能由驾驶循环所在的单一goroutine持有
type State struct {
	LaneChange LaneChangeState // 变道状态

	SteeringHistory container.Ring[float64] // 最近5步输出的转向值

	PrevDistLeftLane  float64 // 上一步左车道前车距离
	PrevDistRightLane float64 // 上一步右车道前车距离

	LeftGapClear      bool // 左车道已持续空闲
	RightGapClear     bool // 右车道已持续空闲
	LeftGapTimer      int  // 左车道空闲计时（步）
	RightGapTimer     int  // 右车道空闲计时（步）
	GapTimerThreshold int  // 空闲判定的计时阈值（步）

	SteerGain        float64 // 转向增益（coe_steer）
	CenterLineOffset float64 // 本步转向误差的目标横向偏移

	PrevML float64 // 最近一次有效的当前车道左侧标线距离
	PrevMR float64 // 最近一次有效的当前车道右侧标线距离

	DesiredSpeed float64 // 期望车速
}

// NewState 创建控制器的初始状态
func NewState() State {
	return State{
		LaneChange:        LaneKeep,
		SteeringHistory:   container.NewRing[float64](steeringHistorySize),
		PrevDistLeftLane:  initialObstacleDist,
		PrevDistRightLane: initialObstacleDist,
		GapTimerThreshold: initialGapTimerThreshold,
		SteerGain:         initialSteerGain,
	}
}

// Clone 返回不与原状态共享转向历史存储的副本
func (s State) Clone() State {
	s.SteeringHistory = s.SteeringHistory.Clone()
	return s
}

// SteerTrend 转向历史之和，用于判断车辆是否正在转向
func (s State) SteerTrend() float64 {
	return lo.Sum(s.SteeringHistory.Slots())
}
