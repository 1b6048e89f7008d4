package affordance

import "math"

// Position 本车在车道系统中的位置
type Position int

const (
	PositionInLane    Position = iota // 位于车道内
	PositionOnMarking                 // 压线行驶
	PositionOffRoad                   // 驶出道路
)

func (p Position) String() string {
	switch p {
	case PositionInLane:
		return "in-lane"
	case PositionOnMarking:
		return "on-marking"
	case PositionOffRoad:
		return "off-road"
	default:
		return "unknown"
	}
}

// Classification 一个仿真步的派生状态
type Classification struct {
	Position  Position
	InLane    bool
	OnMarking bool
	OffRoad   bool
	LeftLane  bool
	RightLane bool
	Lanes     int
}

// Classify 一次性计算全部派生状态
func (ind Indicators) Classify() Classification {
	c := Classification{
		InLane:    ind.IsCarInLane(),
		OnMarking: ind.IsCarOnMarking(),
		OffRoad:   ind.IsCarOffTheRoad(),
		LeftLane:  ind.IsLeftLane(),
		RightLane: ind.IsRightLane(),
		Lanes:     ind.NumberOfLanes(),
	}
	switch {
	case c.OffRoad:
		c.Position = PositionOffRoad
	case c.InLane:
		c.Position = PositionInLane
	default:
		c.Position = PositionOnMarking
	}
	return c
}

// preferInLane 两种读数同时有效时，判断车道内读数是否更可靠
// 算法说明：读数越接近自身的无效阈值越不可靠，比较各自到阈值的余量；
// 余量相等时不偏向车道内（即判为压线）
func (ind Indicators) preferInLane() bool {
	diffToMaxLaneWidth := MaxLaneWidth - ind.LaneWidth()
	diffToMaxM := MaxM - math.Abs(ind.M())
	return diffToMaxLaneWidth > diffToMaxM
}

// laneWidthOverageSmaller 两种读数同时无效时，判断车道宽度读数的超限量是否更小
func (ind Indicators) laneWidthOverageSmaller() bool {
	diffToMaxLaneWidth := ind.LaneWidth() - MaxLaneWidth
	diffToMaxM := math.Abs(ind.M()) - MaxM
	return diffToMaxLaneWidth < diffToMaxM
}

// IsCarInLane 本车是否位于车道内
// 算法说明：
// 1. 仅车道宽度有效：车道内
// 2. 仅压线读数有效：非车道内
// 3. 两者均有效：按余量比较（preferInLane）
// 4. 两者均无效：车道宽度超限更小且未驶出道路时，仍视为车道内
func (ind Indicators) IsCarInLane() bool {
	widthValid, mValid := ind.IsLaneWidthValid(), ind.IsMValid()
	switch {
	case widthValid && !mValid:
		return true
	case !widthValid && mValid:
		return false
	case widthValid && mValid:
		return ind.preferInLane()
	default:
		if ind.laneWidthOverageSmaller() {
			return !ind.IsCarOffTheRoad()
		}
		return false
	}
}

// IsCarOnMarking 本车是否压线行驶，与IsCarInLane互补（驶出道路时两者均为false）
func (ind Indicators) IsCarOnMarking() bool {
	widthValid, mValid := ind.IsLaneWidthValid(), ind.IsMValid()
	switch {
	case widthValid && !mValid:
		return false
	case !widthValid && mValid:
		return true
	case widthValid && mValid:
		return !ind.preferInLane()
	default:
		if ind.laneWidthOverageSmaller() {
			return false
		}
		return !ind.IsCarOffTheRoad()
	}
}

// IsCarOffTheRoad 两种读数均无效，且车道内左右标线与压线读数都不成立时，视为驶出道路
func (ind Indicators) IsCarOffTheRoad() bool {
	if ind.IsLaneWidthValid() || ind.IsMValid() {
		return false
	}
	return !ind.IsMLValid() && !ind.IsMRValid()
}

// IsLeftLane 左侧是否存在车道
func (ind Indicators) IsLeftLane() bool {
	if ind.IsCarOffTheRoad() {
		return false
	}
	if ind.IsCarInLane() {
		return ind.IsLLValid()
	}
	return ind.IsLValid()
}

// IsRightLane 右侧是否存在车道
func (ind Indicators) IsRightLane() bool {
	if ind.IsCarOffTheRoad() {
		return false
	}
	if ind.IsCarInLane() {
		return ind.IsRRValid()
	}
	return ind.IsRValid()
}

// NumberOfLanes 估计道路的车道数
// 算法说明：车道内时计入本车道，压线时本车不占据独立车道，
// 再分别计入左右两侧存在的车道；驶出道路时为0
func (ind Indicators) NumberOfLanes() int {
	if ind.IsCarOffTheRoad() {
		return 0
	}
	n := 0
	if ind.IsCarInLane() {
		n = 1
	}
	if ind.IsLeftLane() {
		n++
	}
	if ind.IsRightLane() {
		n++
	}
	return n
}
