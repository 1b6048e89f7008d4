package highway

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/randengine"
)

const (
	laneWidth = affordance.LaneWidth // 车道宽度（米）
	steerLock = 0.541052             // 转向为1时的前轮转角（弧度）

	inLaneMargin    = 1.0 // 距最近标线不小于该值时车道内读数有效
	onMarkingMargin = 1.5 // 距最近标线小于该值时压线读数有效
	angleNoiseRatio = 0.02

	// 读数无效时的填充值，均位于对应有效范围之外
	invalidLL       = -9.0
	invalidML       = -7.0
	invalidMR       = 7.0
	invalidRR       = 9.0
	invalidL        = -7.0
	invalidM        = 3.5
	invalidR        = 7.0
	invalidDistance = 60.0
)

// car 匀速行驶的交通车
type car struct {
	lane int
	s    float64
	v    float64
}

// Highway 合成直道
// 功能：按道路几何生成每步的真实指标，并将驾驶指令作用于本车，形成闭环
// 说明：横向坐标y从最左侧标线起算，向右为正，第k条标线位于k*laneWidth；
// 航向角yaw向左为正；非线程安全
type Highway struct {
	lanes  int
	noise  float64
	engine *randengine.Engine

	s   float64 // 本车纵向位置
	y   float64 // 本车横向位置
	yaw float64 // 本车相对道路的航向角
	v   float64 // 本车车速

	cars []car
}

// New 根据配置创建合成道路
// 参数：cfg-合成道路配置（已校验），engine-噪声随机数引擎，noise_std为0时可为nil
func New(cfg config.Highway, engine *randengine.Engine) *Highway {
	h := &Highway{
		lanes:  cfg.Lanes,
		noise:  cfg.NoiseStd,
		engine: engine,
		y:      (float64(cfg.InitLane) + 0.5) * laneWidth,
		v:      cfg.InitSpeed,
		cars: lo.Map(cfg.Cars, func(c config.TrafficCar, _ int) car {
			return car{lane: c.Lane, s: c.Position, v: c.Speed}
		}),
	}
	if h.noise > 0 && h.engine == nil {
		h.engine = randengine.New(cfg.Seed)
	}
	log.Infof("highway: %d lanes, ego in lane %d at %.1f m/s, %d traffic cars",
		h.lanes, cfg.InitLane, h.v, len(h.cars))
	return h
}

// Lane 本车当前所在车道，驶出道路时返回-1
func (h *Highway) Lane() int {
	if h.y < 0 || h.y >= float64(h.lanes)*laneWidth {
		return -1
	}
	return int(h.y / laneWidth)
}

// Lateral 本车横向位置
func (h *Highway) Lateral() float64 {
	return h.y
}

// Yaw 本车航向角
func (h *Highway) Yaw() float64 {
	return h.yaw
}

// Speed 本车车速
func (h *Highway) Speed() float64 {
	return h.v
}

// gap 指定车道内本车前方最近交通车的车距，没有车道或没有前车时返回invalidDistance
func (h *Highway) gap(lane int) float64 {
	if lane < 0 || lane >= h.lanes {
		return invalidDistance
	}
	gaps := lo.FilterMap(h.cars, func(c car, _ int) (float64, bool) {
		return math.Max(c.s-h.s-entity.VehicleLength, 0), c.lane == lane && c.s > h.s
	})
	if len(gaps) == 0 {
		return invalidDistance
	}
	return math.Min(lo.Min(gaps), invalidDistance)
}

func (h *Highway) jitter(v float64) float64 {
	if h.noise <= 0 {
		return v
	}
	return h.engine.Normal(v, h.noise)
}

// Indicators 按当前几何生成指标
// 算法说明：
// 1. 车道内上下文：本车距所在车道两侧标线均不小于inLaneMargin时有效，两侧相邻车道存在时给出外侧标线与前车距离
// 2. 压线上下文：本车距最近标线小于onMarkingMargin时有效，左右标线存在时给出标线距离与标线两侧车道的前车距离
// 3. 高速提示：车道内上下文有效且本车道前方无车
// 4. 有效读数叠加噪声，填充值不叠加
func (h *Highway) Indicators() affordance.Indicators {
	ind := affordance.Indicators{
		Angle:                        -h.yaw,
		DistLeftMarking:              invalidL,
		DistCenterMarking:            invalidM,
		DistRightMarking:             invalidR,
		DistObstacleLeftMarking:      invalidDistance,
		DistObstacleRightMarking:     invalidDistance,
		DistLeftMarkingOfLeftLane:    invalidLL,
		DistLeftMarkingOfCenterLane:  invalidML,
		DistRightMarkingOfCenterLane: invalidMR,
		DistRightMarkingOfRightLane:  invalidRR,
		DistObstacleLeftLane:         invalidDistance,
		DistObstacleCenterLane:       invalidDistance,
		DistObstacleRightLane:        invalidDistance,
	}
	if h.noise > 0 {
		ind.Angle = h.engine.Normal(ind.Angle, h.noise*angleNoiseRatio)
	}

	if k := h.Lane(); k >= 0 {
		left, right := float64(k)*laneWidth, float64(k+1)*laneWidth
		if h.y-left >= inLaneMargin && right-h.y >= inLaneMargin {
			ind.DistLeftMarkingOfCenterLane = h.jitter(left - h.y)
			ind.DistRightMarkingOfCenterLane = h.jitter(right - h.y)
			ind.DistObstacleCenterLane = h.gap(k)
			if k > 0 {
				ind.DistLeftMarkingOfLeftLane = h.jitter(left - laneWidth - h.y)
				ind.DistObstacleLeftLane = h.gap(k - 1)
			}
			if k < h.lanes-1 {
				ind.DistRightMarkingOfRightLane = h.jitter(right + laneWidth - h.y)
				ind.DistObstacleRightLane = h.gap(k + 1)
			}
			if ind.DistObstacleCenterLane >= invalidDistance {
				ind.Fast = 1
			}
		}
	}

	if j := int(math.Round(h.y / laneWidth)); j >= 0 && j <= h.lanes {
		p := float64(j) * laneWidth
		if math.Abs(p-h.y) < onMarkingMargin {
			ind.DistCenterMarking = h.jitter(p - h.y)
			if j > 0 {
				ind.DistLeftMarking = h.jitter(p - laneWidth - h.y)
				ind.DistObstacleLeftMarking = h.gap(j - 1)
			}
			if j < h.lanes {
				ind.DistRightMarking = h.jitter(p + laneWidth - h.y)
				ind.DistObstacleRightMarking = h.gap(j)
			}
		}
	}
	return ind
}

// Next 返回本步输入，本车完全驶出道路后返回false
func (h *Highway) Next() (entity.Frame, bool) {
	if h.y < -laneWidth || h.y > float64(h.lanes+1)*laneWidth {
		log.Warnf("ego left the road at y=%.2f", h.y)
		return entity.Frame{}, false
	}
	return entity.Frame{Indicators: h.Indicators(), Speed: h.v}, true
}

// Apply 将指令作用于本车并推进交通车
// 算法说明：
// 1. 纵向：按指令加速度更新车速与行驶距离
// 2. 横向：阿克曼转向，航向角变化 dYaw = ds/(L/2)*tan(steering*steerLock)，按前后航向均值分解纵向与横向位移
// 3. 交通车匀速前进
func (h *Highway) Apply(cmd driver.Command, dt float64) {
	v, d := entity.ComputeVAndDistance(h.v, entity.Acceleration(cmd), dt)
	steering := lo.Clamp(cmd.Steering, -1, 1)
	oldYaw := h.yaw
	h.yaw += d / (entity.VehicleLength / 2) * math.Tan(steering*steerLock)
	meanYaw := (oldYaw + h.yaw) / 2
	h.s += d * math.Cos(meanYaw)
	h.y -= d * math.Sin(meanYaw)
	h.v = v
	for i := range h.cars {
		h.cars[i].s += h.cars[i].v * dt
	}
}
