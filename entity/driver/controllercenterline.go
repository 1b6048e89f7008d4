package driver

import "github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"

const (
	holdSteerGain     = 1.5  // 车道保持的转向增益
	nearMarkingM      = 1.0  // 所压标线距离小于该值时使用更平缓的增益
	nearMarkingGain   = 0.4  // 靠近标线时的转向增益
	fallbackSteerGain = 0.3  // 车道内读数无效时的转向增益
	settleSteerGain   = 20.0 // 越过标线后的一次性对准增益
	alignedMarkingL   = -5.0 // 向左变道时左侧标线距离大于该值才使用压线读数
	alignedMarkingR   = 5.0  // 向右变道时右侧标线距离小于该值才使用压线读数
	alignedMarkingM   = 1.5  // 所压标线距离小于该值才使用压线读数
)

func midpoint(a, b float64) float64 {
	return (a + b) / 2
}

// holdLane 车道保持的目标中心线
// 算法说明：
// 1. 车道内读数有效：以当前车道两侧标线中点为目标，记录两侧标线作为后备，增益1.5，所压标线距离小于1时改为0.4
// 2. 否则按后备标线判断本车偏向哪侧，以压线读数的中点为目标，增益0.3
func (s *State) holdLane(ind affordance.Indicators) {
	if ind.IsLaneWidthValid() {
		s.SteerGain = holdSteerGain
		s.CenterLineOffset = midpoint(ind.ML(), ind.MR())
		s.PrevML = ind.ML()
		s.PrevMR = ind.MR()
		if ind.M() < nearMarkingM {
			s.SteerGain = nearMarkingGain
		}
		return
	}
	if -s.PrevML > s.PrevMR {
		s.CenterLineOffset = midpoint(ind.L(), ind.M())
	} else {
		s.CenterLineOffset = midpoint(ind.R(), ind.M())
	}
	s.SteerGain = fallbackSteerGain
}

// updateCenterLine 根据变道状态计算目标中心线，并推进状态机
// 算法说明：
//   - 保持车道：holdLane
//   - 开始变道：以目标侧车道中点为目标，已接近对准时与压线中点各取一半；
//     车道内读数失效（越过标线）时转入驶入状态并使用一次性强增益
//   - 驶入目标车道：压线读数可用时以其中点为目标，车道内读数有效时各取一半；
//     压线读数不可用时回到保持车道
func (s *State) updateCenterLine(ind affordance.Indicators) {
	switch s.LaneChange {
	case LaneKeep:
		s.holdLane(ind)

	case LaneChangeLeftBegin:
		if ind.IsLaneWidthValid() {
			s.CenterLineOffset = midpoint(ind.LL(), ind.ML())
			if ind.L() > alignedMarkingL && ind.M() < alignedMarkingM {
				s.CenterLineOffset = midpoint(s.CenterLineOffset, midpoint(ind.L(), ind.M()))
			}
		} else {
			s.CenterLineOffset = midpoint(ind.L(), ind.M())
			s.SteerGain = settleSteerGain
			s.LaneChange = LaneChangeLeftSettle
		}

	case LaneChangeLeftSettle:
		if ind.L() > alignedMarkingL && ind.M() < alignedMarkingM {
			s.CenterLineOffset = midpoint(ind.L(), ind.M())
			if ind.IsLaneWidthValid() {
				s.CenterLineOffset = midpoint(s.CenterLineOffset, midpoint(ind.ML(), ind.MR()))
			}
		} else {
			s.CenterLineOffset = midpoint(ind.ML(), ind.MR())
			s.LaneChange = LaneKeep
		}

	case LaneChangeRightBegin:
		if ind.IsLaneWidthValid() {
			s.CenterLineOffset = midpoint(ind.RR(), ind.MR())
			if ind.R() < alignedMarkingR && ind.M() < alignedMarkingM {
				s.CenterLineOffset = midpoint(s.CenterLineOffset, midpoint(ind.R(), ind.M()))
			}
		} else {
			s.CenterLineOffset = midpoint(ind.R(), ind.M())
			s.SteerGain = settleSteerGain
			s.LaneChange = LaneChangeRightSettle
		}

	case LaneChangeRightSettle:
		if ind.R() < alignedMarkingR && ind.M() < alignedMarkingM {
			s.CenterLineOffset = midpoint(ind.R(), ind.M())
			if ind.IsLaneWidthValid() {
				s.CenterLineOffset = midpoint(s.CenterLineOffset, midpoint(ind.ML(), ind.MR()))
			}
		} else {
			s.CenterLineOffset = midpoint(ind.ML(), ind.MR())
			s.LaneChange = LaneKeep
		}
	}
}
