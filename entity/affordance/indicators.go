package affordance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	LaneWidth    = 4.0               // 单条车道的标准宽度
	MaxLaneWidth = LaneWidth * 1.375 // 车道宽度的最大有效值（+37.5%容差）

	MaxRR = 8.0    // 右车道右侧标线的最大有效距离
	MaxMR = 5.0    // 当前车道右侧标线的最大有效距离
	MaxML = -MaxMR // 当前车道左侧标线的最大有效距离
	MaxLL = -MaxRR // 左车道左侧标线的最大有效距离

	MaxR = 6.5   // 压线时右侧标线的最大有效距离
	MaxM = 3.0   // 压线时所压标线的最大有效距离
	MaxL = -MaxR // 压线时左侧标线的最大有效距离

	MaxObstacleDist = 50.0 // 障碍物（前车）距离的最大有效值
)

// ErrNonFinite 指标中存在NaN或Inf
var ErrNonFinite = errors.New("affordance: non-finite indicator")

// Indicators 单个仿真步的可供性指标（affordance indicators）
// 功能：描述本车相对车道标线与周边车辆的几何关系，由上游估计器或真值来源每步整体替换
// 说明：压线（on marking）上下文与车道内（in lane）上下文的原始字段可能同时有值，
// 哪一种解释成立由分类方法决定，调用方只能依赖派生状态的互斥性
type Indicators struct {
	Angle float64 `yaml:"angle"` // 本车航向相对车道方向的偏角
	Fast  float64 `yaml:"fast"`  // 估计器给出的"期望高速"提示（0/1）

	// 仅在本车压线行驶时有效

	DistLeftMarking          float64 `yaml:"l"`      // 到左侧标线的距离
	DistCenterMarking        float64 `yaml:"m"`      // 到所压标线的距离
	DistRightMarking         float64 `yaml:"r"`      // 到右侧标线的距离
	DistObstacleLeftMarking  float64 `yaml:"dist_l"` // 左侧车道前车距离
	DistObstacleRightMarking float64 `yaml:"dist_r"` // 右侧车道前车距离

	// 仅在本车位于车道内时有效

	DistLeftMarkingOfLeftLane    float64 `yaml:"ll"`      // 到左车道左侧标线的距离
	DistLeftMarkingOfCenterLane  float64 `yaml:"ml"`      // 到当前车道左侧标线的距离
	DistRightMarkingOfCenterLane float64 `yaml:"mr"`      // 到当前车道右侧标线的距离
	DistRightMarkingOfRightLane  float64 `yaml:"rr"`      // 到右车道右侧标线的距离
	DistObstacleLeftLane         float64 `yaml:"dist_ll"` // 左车道前车距离
	DistObstacleCenterLane       float64 `yaml:"dist_mm"` // 当前车道前车距离
	DistObstacleRightLane        float64 `yaml:"dist_rr"` // 右车道前车距离
}

// 车道内上下文

func (ind Indicators) LL() float64 { return ind.DistLeftMarkingOfLeftLane }
func (ind Indicators) ML() float64 { return ind.DistLeftMarkingOfCenterLane }
func (ind Indicators) MR() float64 { return ind.DistRightMarkingOfCenterLane }
func (ind Indicators) RR() float64 { return ind.DistRightMarkingOfRightLane }

// LaneWidth 测得的车道宽度（仅在车道内时有意义）
func (ind Indicators) LaneWidth() float64 {
	return -ind.ML() + ind.MR()
}

// IsLaneWidthValid 车道宽度读数是否有效，过大表示未找到一致的车道边界
func (ind Indicators) IsLaneWidthValid() bool {
	return ind.LaneWidth() < MaxLaneWidth
}

// IsLLValid 无效时表示左侧车道不存在
func (ind Indicators) IsLLValid() bool { return ind.LL() > MaxLL }

// IsMLValid 无效时表示本车不在任何车道内
func (ind Indicators) IsMLValid() bool { return ind.ML() > MaxML }

// IsMRValid 无效时表示本车不在任何车道内
func (ind Indicators) IsMRValid() bool { return ind.MR() < MaxMR }

// IsRRValid 无效时表示右侧车道不存在
func (ind Indicators) IsRRValid() bool { return ind.RR() < MaxRR }

func (ind Indicators) IsDistLInLaneValid() bool { return ind.DistObstacleLeftLane < MaxObstacleDist }
func (ind Indicators) IsDistMInLaneValid() bool { return ind.DistObstacleCenterLane < MaxObstacleDist }
func (ind Indicators) IsDistRInLaneValid() bool { return ind.DistObstacleRightLane < MaxObstacleDist }

// 压线上下文

func (ind Indicators) L() float64 { return ind.DistLeftMarking }
func (ind Indicators) M() float64 { return ind.DistCenterMarking }
func (ind Indicators) R() float64 { return ind.DistRightMarking }

// IsLValid 无效时表示本车左侧没有车道
func (ind Indicators) IsLValid() bool { return ind.L() > MaxL }

// IsRValid 无效时表示本车右侧没有车道
func (ind Indicators) IsRValid() bool { return ind.R() < MaxR }

// IsMValid 无效时表示本车没有压在任何标线上
func (ind Indicators) IsMValid() bool {
	return ind.M() > -MaxM && ind.M() < MaxM
}

// IsCenterOffsetValid 同IsMValid
func (ind Indicators) IsCenterOffsetValid() bool { return ind.IsMValid() }

func (ind Indicators) IsDistLOnMarkingValid() bool {
	return ind.DistObstacleLeftMarking < MaxObstacleDist
}

func (ind Indicators) IsDistROnMarkingValid() bool {
	return ind.DistObstacleRightMarking < MaxObstacleDist
}

// fields 按固定顺序返回全部字段，供校验与CSV读写使用
func (ind Indicators) fields() [14]float64 {
	return [14]float64{
		ind.Angle, ind.Fast,
		ind.DistLeftMarking, ind.DistCenterMarking, ind.DistRightMarking,
		ind.DistObstacleLeftMarking, ind.DistObstacleRightMarking,
		ind.DistLeftMarkingOfLeftLane, ind.DistLeftMarkingOfCenterLane,
		ind.DistRightMarkingOfCenterLane, ind.DistRightMarkingOfRightLane,
		ind.DistObstacleLeftLane, ind.DistObstacleCenterLane, ind.DistObstacleRightLane,
	}
}

// FieldNames 与Values顺序一致的字段名
var FieldNames = [14]string{
	"angle", "fast",
	"l", "m", "r", "dist_l", "dist_r",
	"ll", "ml", "mr", "rr", "dist_ll", "dist_mm", "dist_rr",
}

// Values 按FieldNames的顺序返回全部字段值
func (ind Indicators) Values() [14]float64 {
	return ind.fields()
}

// FromValues 按FieldNames的顺序构造指标
func FromValues(v [14]float64) Indicators {
	return Indicators{
		Angle:                        v[0],
		Fast:                         v[1],
		DistLeftMarking:              v[2],
		DistCenterMarking:            v[3],
		DistRightMarking:             v[4],
		DistObstacleLeftMarking:      v[5],
		DistObstacleRightMarking:     v[6],
		DistLeftMarkingOfLeftLane:    v[7],
		DistLeftMarkingOfCenterLane:  v[8],
		DistRightMarkingOfCenterLane: v[9],
		DistRightMarkingOfRightLane:  v[10],
		DistObstacleLeftLane:         v[11],
		DistObstacleCenterLane:       v[12],
		DistObstacleRightLane:        v[13],
	}
}

// Validate 检查全部字段是否为有限值
// 返回：包装ErrNonFinite的错误，指出第一个出错的字段
func (ind Indicators) Validate() error {
	for i, v := range ind.fields() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFinite, FieldNames[i], v)
		}
	}
	return nil
}

// String 输出分类结果与两种上下文的原始读数，用于调试
func (ind Indicators) String() string {
	c := ind.Classify()
	var b strings.Builder
	fmt.Fprintf(&b, "Is in lane:    %v\n", c.InLane)
	fmt.Fprintf(&b, "Is on marking: %v\n", c.OnMarking)
	fmt.Fprintf(&b, "Is off road:   %v\n", c.OffRoad)
	fmt.Fprintf(&b, "Lanes:         %d\n", c.Lanes)
	fmt.Fprintf(&b, "Is left lane:  %v\n", c.LeftLane)
	fmt.Fprintf(&b, "Is right lane: %v\n", c.RightLane)
	fmt.Fprintf(&b, "\nIn Lane Context:\n")
	fmt.Fprintf(&b, "Dist-L %v, Dist-M %v, Dist-R %v, LL %v, ML %v, MR %v, RR %v\n",
		ind.DistObstacleLeftLane, ind.DistObstacleCenterLane, ind.DistObstacleRightLane,
		ind.LL(), ind.ML(), ind.MR(), ind.RR())
	fmt.Fprintf(&b, "\nOn Marking Context:\n")
	fmt.Fprintf(&b, "Dist-L %v, Dist-R %v, L %v, M %v, R %v\n",
		ind.DistObstacleLeftMarking, ind.DistObstacleRightMarking, ind.L(), ind.M(), ind.R())
	fmt.Fprintf(&b, "Angle %v, Fast %v\n", ind.Angle, ind.Fast)
	return b.String()
}
