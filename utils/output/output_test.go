package output_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/output"
)

func frame() entity.Frame {
	return entity.Frame{
		Indicators: affordance.Indicators{
			DistLeftMarking:              -7,
			DistCenterMarking:            3.5,
			DistRightMarking:             7,
			DistObstacleLeftMarking:      60,
			DistObstacleRightMarking:     60,
			DistLeftMarkingOfLeftLane:    -6,
			DistLeftMarkingOfCenterLane:  -2,
			DistRightMarkingOfCenterLane: 2,
			DistRightMarkingOfRightLane:  6,
			DistObstacleLeftLane:         60,
			DistObstacleCenterLane:       60,
			DistObstacleRightLane:        60,
		},
		Speed: 12.5,
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	s, err := output.New(config.FormatCSV, &buf)
	require.NoError(t, err)
	require.NoError(t, s.Write(3, frame(), driver.Command{Steering: 0.25, Accelerate: 0.6}))
	require.NoError(t, s.Write(4, frame(), driver.Command{Brake: 0.1}))
	require.NoError(t, s.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, output.Header(), rows[0])
	assert.Len(t, rows[1], len(output.Header()))
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "-2", rows[1][9])
	assert.Equal(t, []string{"12.5", "in-lane", "3", "0.25", "0.6", "0"}, rows[1][15:])
	assert.Equal(t, "0.1", rows[2][20])
}

func TestCAN(t *testing.T) {
	var buf bytes.Buffer
	s, err := output.New(config.FormatCAN, &buf)
	require.NoError(t, err)
	require.NoError(t, s.Write(7, frame(), driver.Command{Steering: -0.5, Accelerate: 0.25, Speed: 12.34}))
	assert.Empty(t, buf.String())
	require.NoError(t, s.Flush())

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "7 101#"), line)
	assert.Equal(t, "78EC C409 0000 D204", strings.ToUpper(spaced(strings.TrimPrefix(line, "7 101#"))))
}

// spaced 每4个字符插入一个空格
func spaced(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestUnknownFormat(t *testing.T) {
	_, err := output.New("json", &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}
