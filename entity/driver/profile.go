package driver

import (
	"math"

	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
)

// trendBand 允许发起变道的转向趋势范围
// 说明：向左变道要求趋势位于[lo, hi)，向右变道要求趋势位于(lo, hi]
type trendBand struct {
	lo, hi float64
}

func (b trendBand) allowsLeft(trend float64) bool {
	return trend >= b.lo && trend < b.hi
}

func (b trendBand) allowsRight(trend float64) bool {
	return trend > b.lo && trend <= b.hi
}

// preferRule 前方空闲时主动回到偏好车道的规则
type preferRule struct {
	band  trendBand // 转向趋势范围
	timer int       // 变道后本侧空闲计时的重置值
}

// profile 与车道数相关的状态机参数
// 功能：1/2/3车道共用同一状态机，差异仅体现在这些参数上
type profile struct {
	lanes      int  // 车道数
	laneChange bool // 是否允许变道（单车道时仅保持车道）

	gapTimerThreshold int       // 因前车阻挡变道后设置的空闲计时阈值
	timerAfterMove    int       // 因前车阻挡变道后目标侧空闲计时的重置值
	leftBand          trendBand // 因前车阻挡向左变道的转向趋势范围
	rightBand         trendBand // 因前车阻挡向右变道的转向趋势范围

	preferLeft  *preferRule // 位于最右车道时回到中间车道
	preferRight *preferRule // 位于最左车道时向右回归
}

var (
	// 单车道：只做车道保持与跟车
	profileOneLane = profile{lanes: 1}

	// 双车道：偏好右侧车道
	// TODO: 双车道因前车阻挡变道的趋势范围单侧无界，与三车道不对称，需结合实车数据确认是否统一
	profileTwoLanes = profile{
		lanes:             2,
		laneChange:        true,
		gapTimerThreshold: 30,
		timerAfterMove:    0,
		leftBand:          trendBand{lo: 0, hi: math.Inf(1)},
		rightBand:         trendBand{lo: math.Inf(-1), hi: 0},
		preferRight:       &preferRule{band: trendBand{lo: -0.2, hi: 0}, timer: 20},
	}

	// 三车道：偏好中间车道
	profileThreeLanes = profile{
		lanes:             3,
		laneChange:        true,
		gapTimerThreshold: 60,
		timerAfterMove:    30,
		leftBand:          trendBand{lo: 0, hi: 0.2},
		rightBand:         trendBand{lo: -0.2, hi: 0},
		preferLeft:        &preferRule{band: trendBand{lo: 0, hi: 0.2}, timer: 30},
		preferRight:       &preferRule{band: trendBand{lo: -0.2, hi: 0}, timer: 30},
	}
)

// resolveLanes 确定本步使用的车道数
// 算法说明：
// 1. 提示值在[1,3]内时直接使用
// 2. 否则使用分类器估计的车道数
// 3. 估计值为0（驶出道路）时按单车道处理，只做车道保持
func resolveLanes(hint int, ind affordance.Indicators) int {
	if hint >= 1 && hint <= 3 {
		return hint
	}
	if n := ind.NumberOfLanes(); n >= 1 {
		return n
	}
	return 1
}

func profileFor(lanes int) profile {
	switch lanes {
	case 2:
		return profileTwoLanes
	case 3:
		return profileThreeLanes
	default:
		return profileOneLane
	}
}
