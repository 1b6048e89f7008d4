package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
)

func TestAcceleration(t *testing.T) {
	assert.Equal(t, 4.0, entity.Acceleration(driver.Command{Accelerate: 1}))
	assert.Equal(t, -5.0, entity.Acceleration(driver.Command{Brake: 0.5}))
	assert.Equal(t, 0.0, entity.Acceleration(driver.Command{}))
}

func TestComputeVAndDistance(t *testing.T) {
	v, ds := entity.ComputeVAndDistance(10, 4, 0.1)
	assert.InDelta(t, 10.4, v, 1e-12)
	assert.InDelta(t, 1.02, ds, 1e-12)

	// 刹车到停止
	v, ds = entity.ComputeVAndDistance(1, -10, 0.5)
	assert.Equal(t, 0.0, v)
	assert.InDelta(t, 0.05, ds, 1e-12)
}
