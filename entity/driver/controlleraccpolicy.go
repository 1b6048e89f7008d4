package driver

import (
	"math"

	"github.com/samber/lo"
)

const (
	occupiedDistance   = 15  // 当前车道前车距离小于该值时视为被占用
	unconstrainedSpeed = 100 // 无跟车约束时的限速

	// 最优速度跟车模型参数
	ovmMaxV = 20.0
	ovmC    = 2.772
	ovmD    = -0.693

	maxDesiredSpeed      = 20.0 // 期望车速上限
	minDesiredSpeed      = 10.0 // 期望车速下限（跟车约束前）
	steeringSpeedPenalty = 4.5  // 转向历史之和对期望车速的惩罚系数
	accelerateGain       = 0.2
	brakeGain            = 0.1
)

// CarFollowLimit 最优速度跟车模型（optimal velocity model）给出的限速
// 参数：gap-与前车的距离
// 返回：v_max*(1-exp(-(c/v_max)*gap-d))，不小于0
func CarFollowLimit(gap float64) float64 {
	v := ovmMaxV * (1 - math.Exp(-ovmC/ovmMaxV*gap-ovmD))
	return math.Max(v, 0)
}

// desiredSpeed 计算期望车速
// 参数：fast-估计器的高速提示，trend-转向历史之和，limit-跟车限速
// 算法说明：
// 1. 高速提示为1时取上限，否则按转向历史之和降速
// 2. 不低于下限
// 3. 跟车限速更低时取跟车限速
func desiredSpeed(fast, trend, limit float64) float64 {
	v := maxDesiredSpeed
	if fast != 1 {
		v = maxDesiredSpeed - math.Abs(trend)*steeringSpeedPenalty
	}
	v = math.Max(v, minDesiredSpeed)
	return math.Min(v, limit)
}

// SpeedControl 速度控制，根据期望车速与当前车速计算油门与刹车
// 说明：油门与刹车不会同时非零
func SpeedControl(desired, current float64) Command {
	c := Command{Speed: current}
	if desired >= current {
		c.Accelerate = lo.Clamp(accelerateGain*(desired-current+1), 0, 1)
	} else {
		c.Brake = lo.Clamp(brakeGain*(current-desired), 0, 1)
	}
	return c
}
