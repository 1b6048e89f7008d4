package driver

import "github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"

const (
	gapOccupiedDistance = 20  // 侧方车道前车距离连续两步小于该值时视为被占用
	laneChangeSteerGain = 6.0 // 发起变道时的转向增益
)

// updateGapLatches 更新侧方车道空闲锁存
// 算法说明：
// 1. 上一步与本步的侧方前车距离均小于20时，锁存与计时清零，否则计时加一
// 2. 计时超过阈值时锁存置位，计时钳制在阈值
func (s *State) updateGapLatches(ind affordance.Indicators) {
	distL, distR := ind.DistObstacleLeftLane, ind.DistObstacleRightLane

	if s.PrevDistLeftLane < gapOccupiedDistance && distL < gapOccupiedDistance {
		s.LeftGapClear = false
		s.LeftGapTimer = 0
	} else {
		s.LeftGapTimer++
	}
	if s.PrevDistRightLane < gapOccupiedDistance && distR < gapOccupiedDistance {
		s.RightGapClear = false
		s.RightGapTimer = 0
	} else {
		s.RightGapTimer++
	}

	s.PrevDistLeftLane = distL
	s.PrevDistRightLane = distR

	if s.LeftGapTimer > s.GapTimerThreshold {
		s.LeftGapTimer = s.GapTimerThreshold
		s.LeftGapClear = true
	}
	if s.RightGapTimer > s.GapTimerThreshold {
		s.RightGapTimer = s.GapTimerThreshold
		s.RightGapClear = true
	}
}

// beginLeft 因前车阻挡发起向左变道，对侧锁存同时失效
func (s *State) beginLeft(p profile) {
	s.LaneChange = LaneChangeLeftBegin
	s.SteerGain = laneChangeSteerGain
	s.RightGapClear = false
	s.RightGapTimer = 0
	s.LeftGapClear = false
	s.LeftGapTimer = p.timerAfterMove
	s.GapTimerThreshold = p.gapTimerThreshold
}

// beginRight 因前车阻挡发起向右变道，对侧锁存同时失效
func (s *State) beginRight(p profile) {
	s.LaneChange = LaneChangeRightBegin
	s.SteerGain = laneChangeSteerGain
	s.LeftGapClear = false
	s.LeftGapTimer = 0
	s.RightGapClear = false
	s.RightGapTimer = p.timerAfterMove
	s.GapTimerThreshold = p.gapTimerThreshold
}

// planLaneChange 变道决策
// 功能：保持车道状态下，根据前车、侧方车道空闲与转向趋势决定是否发起变道
// 返回：本步的跟车限速（未受约束时为unconstrainedSpeed）
// 算法说明：
// 1. 当前车道前车距离<15：目标侧外侧标线有效、空闲锁存置位且转向趋势在范围内时发起变道，左侧优先；都不满足时按跟车模型限速
// 2. 当前车道空闲：按偏好规则回到偏好车道（三车道为中间车道，双车道为右侧车道）
func (s *State) planLaneChange(ind affordance.Indicators, p profile) (limit float64) {
	limit = unconstrainedSpeed
	if s.LaneChange != LaneKeep {
		return
	}
	trend := s.SteerTrend()
	if ind.DistObstacleCenterLane < occupiedDistance {
		switch {
		case ind.IsLLValid() && s.LeftGapClear && p.leftBand.allowsLeft(trend):
			s.beginLeft(p)
		case ind.IsRRValid() && s.RightGapClear && p.rightBand.allowsRight(trend):
			s.beginRight(p)
		default:
			limit = CarFollowLimit(ind.DistObstacleCenterLane)
		}
		return
	}
	// 右侧没有车道（RR超出范围）说明位于最右车道
	if r := p.preferLeft; r != nil && ind.RR() > affordance.MaxRR && s.LeftGapClear && r.band.allowsLeft(trend) {
		s.LaneChange = LaneChangeLeftBegin
		s.SteerGain = laneChangeSteerGain
		s.LeftGapClear = false
		s.LeftGapTimer = r.timer
		return
	}
	// 左侧没有车道（LL超出范围）说明位于最左车道
	if r := p.preferRight; r != nil && ind.LL() < affordance.MaxLL && s.RightGapClear && r.band.allowsRight(trend) {
		s.LaneChange = LaneChangeRightBegin
		s.SteerGain = laneChangeSteerGain
		s.RightGapClear = false
		s.RightGapTimer = r.timer
	}
	return
}
