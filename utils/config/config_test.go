package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
)

const highwayYAML = `
input:
  highway:
    lanes: 3
    init_lane: 1
    init_speed: 12
    noise_std: 0.05
    seed: 7
    cars:
      - {lane: 1, position: 40, speed: 8}
control:
  step: {start: 0, total: 600, interval: 0.05}
  lanes: 3
  enabled: false
output:
  file: out.can
  format: can
`

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(highwayYAML))
	require.NoError(t, err)
	require.NotNil(t, c.Input.Highway)
	assert.Equal(t, 3, c.Input.Highway.Lanes)
	assert.Equal(t, []config.TrafficCar{{Lane: 1, Position: 40, Speed: 8}}, c.Input.Highway.Cars)
	assert.Equal(t, uint64(7), c.Input.Highway.Seed)
	assert.Equal(t, int32(600), c.Control.Step.Total)
	assert.False(t, c.Control.IsControlling())
	assert.Equal(t, config.FormatCAN, c.Output.Format)

	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, 0.05, rc.C.Step.Interval)
	assert.Equal(t, 3, rc.Lanes)
	assert.Equal(t, config.FormatCAN, rc.Format)
}

func TestParseStrict(t *testing.T) {
	_, err := config.Parse([]byte("input: {trace: a.csv}\ncontrol: {lanez: 2}\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestDefaults(t *testing.T) {
	c, err := config.Parse([]byte("input: {trace: a.csv}\n"))
	require.NoError(t, err)
	assert.True(t, c.Control.IsControlling())

	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, 0.05, rc.C.Step.Interval)
	assert.Equal(t, 0.05, rc.All.Control.Step.Interval)
	assert.Equal(t, config.FormatCSV, rc.Format)
	assert.Equal(t, 0, rc.Lanes)
}

func TestValidate(t *testing.T) {
	hw := func(mod func(h *config.Highway)) config.Config {
		h := &config.Highway{Lanes: 2}
		mod(h)
		return config.Config{Input: config.Input{Highway: h}}
	}
	cases := []struct {
		name string
		c    config.Config
	}{
		{"no input", config.Config{}},
		{"both inputs", config.Config{Input: config.Input{Trace: "a.csv", Highway: &config.Highway{Lanes: 1}}}},
		{"lanes hint", config.Config{Input: config.Input{Trace: "a.csv"}, Control: config.Control{Lanes: 4}}},
		{"negative interval", config.Config{Input: config.Input{Trace: "a.csv"}, Control: config.Control{Step: config.ControlStep{Interval: -1}}}},
		{"negative total", config.Config{Input: config.Input{Trace: "a.csv"}, Control: config.Control{Step: config.ControlStep{Total: -1}}}},
		{"format", config.Config{Input: config.Input{Trace: "a.csv"}, Output: config.Output{Format: "json"}}},
		{"highway lanes", hw(func(h *config.Highway) { h.Lanes = 0 })},
		{"init lane", hw(func(h *config.Highway) { h.InitLane = 2 })},
		{"noise", hw(func(h *config.Highway) { h.NoiseStd = -0.1 })},
		{"car lane", hw(func(h *config.Highway) { h.Cars = []config.TrafficCar{{Lane: -1}} })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.c.Validate(), config.ErrInvalid)
		})
	}
	assert.NoError(t, hw(func(h *config.Highway) { h.InitLane = 1 }).Validate())
}
