package highway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/randengine"
)

func TestIndicatorsCentered(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, InitSpeed: 10}, nil)
	ind := h.Indicators()
	assert.Equal(t, -2.0, ind.ML())
	assert.Equal(t, 2.0, ind.MR())
	assert.Equal(t, -6.0, ind.LL())
	assert.Equal(t, 6.0, ind.RR())
	assert.False(t, ind.IsMValid())
	assert.Equal(t, 1.0, ind.Fast)
	assert.Equal(t, 0.0, ind.Angle)

	c := ind.Classify()
	assert.Equal(t, affordance.PositionInLane, c.Position)
	assert.Equal(t, 3, c.Lanes)

	f, ok := h.Next()
	require.True(t, ok)
	assert.Equal(t, 10.0, f.Speed)
	assert.Equal(t, ind, f.Indicators)
}

func TestIndicatorsEdgeLane(t *testing.T) {
	h := New(config.Highway{Lanes: 2, InitLane: 0}, nil)
	ind := h.Indicators()
	assert.False(t, ind.IsLLValid())
	assert.True(t, ind.IsRRValid())
	assert.Equal(t, 2, ind.NumberOfLanes())

	h = New(config.Highway{Lanes: 1}, nil)
	assert.Equal(t, 1, h.Indicators().NumberOfLanes())
}

func TestIndicatorsObstacles(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, Cars: []config.TrafficCar{
		{Lane: 1, Position: 40, Speed: 5},
		{Lane: 1, Position: 20, Speed: 5},
		{Lane: 0, Position: 10, Speed: 5},
		{Lane: 2, Position: -10, Speed: 5}, // 本车后方
	}}, nil)
	ind := h.Indicators()
	assert.Equal(t, 15.5, ind.DistObstacleCenterLane)
	assert.Equal(t, 5.5, ind.DistObstacleLeftLane)
	assert.Equal(t, 60.0, ind.DistObstacleRightLane)
	assert.Equal(t, 0.0, ind.Fast)

	h.Apply(driver.Command{}, 1)
	assert.Equal(t, 20.5, h.Indicators().DistObstacleCenterLane)
}

func TestIndicatorsOnMarking(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, Cars: []config.TrafficCar{
		{Lane: 0, Position: 30, Speed: 0},
	}}, nil)
	h.y = 4.5
	ind := h.Indicators()
	assert.False(t, ind.IsLaneWidthValid())
	assert.Equal(t, -0.5, ind.M())
	assert.Equal(t, -4.5, ind.L())
	assert.Equal(t, 3.5, ind.R())
	assert.Equal(t, 25.5, ind.DistObstacleLeftMarking)
	assert.Equal(t, 60.0, ind.DistObstacleRightMarking)
	assert.Equal(t, affordance.PositionOnMarking, ind.Classify().Position)

	// 最左侧标线：左侧没有车道
	h.y = 0.5
	ind = h.Indicators()
	assert.False(t, ind.IsLValid())
	assert.True(t, ind.IsRValid())
}

func TestIndicatorsOffRoad(t *testing.T) {
	h := New(config.Highway{Lanes: 2}, nil)
	h.y = -3
	assert.Equal(t, -1, h.Lane())
	ind := h.Indicators()
	assert.True(t, ind.IsCarOffTheRoad())
	assert.Equal(t, 0, ind.NumberOfLanes())
	_, ok := h.Next()
	assert.True(t, ok)

	h.y = -5
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestIndicatorsNoise(t *testing.T) {
	cfg := config.Highway{Lanes: 3, InitLane: 1, NoiseStd: 0.1, Seed: 3}
	a, b := New(cfg, randengine.New(3)), New(cfg, randengine.New(3))
	ia, ib := a.Indicators(), b.Indicators()
	assert.Equal(t, ia, ib)
	assert.NotEqual(t, -2.0, ia.ML())
	assert.InDelta(t, -2.0, ia.ML(), 1)
	// 填充值不叠加噪声
	assert.Equal(t, invalidM, ia.M())
	assert.Equal(t, invalidDistance, ia.DistObstacleCenterLane)

	// 未传入随机数引擎时按种子创建
	assert.NotNil(t, New(cfg, nil).engine)
}

func TestApply(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, InitSpeed: 10}, nil)
	h.Apply(driver.Command{Accelerate: 1}, 0.1)
	assert.InDelta(t, 10.4, h.Speed(), 1e-12)
	assert.InDelta(t, 1.02, h.s, 1e-12)
	assert.Equal(t, 6.0, h.Lateral())
	assert.Equal(t, 0.0, h.Yaw())

	// 正向转向向左
	h.Apply(driver.Command{Steering: 0.5}, 0.1)
	h.Apply(driver.Command{Steering: 0.5}, 0.1)
	assert.Greater(t, h.Yaw(), 0.0)
	assert.Less(t, h.Lateral(), 6.0)
	assert.Greater(t, h.Indicators().Angle, -1.0)
	assert.Less(t, h.Indicators().Angle, 0.0)

	h.Apply(driver.Command{Brake: 1}, 10)
	assert.Equal(t, 0.0, h.Speed())
}

// 闭环：初始偏离车道中心，控制器应回到中心并保持
func TestClosedLoopLaneKeeping(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, InitSpeed: 10}, nil)
	h.y += 0.8
	c := driver.NewController()
	for range 600 {
		f, ok := h.Next()
		require.True(t, ok)
		h.Apply(c.Control(f.Indicators, f.Speed, 3), 0.05)
		require.Equal(t, 1, h.Lane())
	}
	assert.InDelta(t, 6.0, h.Lateral(), 0.3)
	assert.InDelta(t, 20, h.Speed(), 1.5)
	assert.Equal(t, driver.LaneKeep, c.State().LaneChange)
}

// 闭环：前方慢车阻挡，侧方车道空闲后向左变道
func TestClosedLoopOvertake(t *testing.T) {
	h := New(config.Highway{Lanes: 3, InitLane: 1, InitSpeed: 10, Cars: []config.TrafficCar{
		{Lane: 1, Position: 30, Speed: 5},
	}}, nil)
	c := driver.NewController()

	var began, crossed, settled bool
	for range 1200 {
		f, ok := h.Next()
		require.True(t, ok)
		h.Apply(c.Control(f.Indicators, f.Speed, 3), 0.05)
		s := c.State().LaneChange
		switch {
		case s == driver.LaneChangeLeftBegin:
			began = true
		case began && h.Lane() == 0:
			crossed = true
		}
		if crossed && s == driver.LaneKeep {
			settled = true
		}
	}
	assert.True(t, began)
	assert.True(t, crossed)
	assert.True(t, settled)
}
