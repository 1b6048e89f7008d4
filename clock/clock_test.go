package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/clock"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
)

func TestClock(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 10, Total: 3, Interval: 0.5})
	assert.Equal(t, int32(10), c.Step)
	assert.Equal(t, 5.0, c.T)
	assert.Equal(t, int32(13), c.EndStep)

	for range 3 {
		assert.False(t, c.Done())
		c.Tick()
	}
	assert.True(t, c.Done())
	assert.Equal(t, int32(3), c.Elapsed())
	assert.Equal(t, 6.5, c.T)

	c.Init()
	assert.Equal(t, int32(0), c.Elapsed())
}

func TestClockUnbounded(t *testing.T) {
	c := clock.New(config.ControlStep{Interval: 0.1})
	for range 1000 {
		c.Tick()
	}
	assert.False(t, c.Done())
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 36610, Interval: 0.1})
	assert.Equal(t, "01:01:01.000", c.String())
}
