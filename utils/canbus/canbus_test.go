package canbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/canbus"
	"go.einride.tech/can"
)

func TestEncodeCommand(t *testing.T) {
	f := canbus.EncodeCommand(driver.Command{Steering: -0.5, Accelerate: 0.25, Speed: 12.34})
	assert.Equal(t, uint32(canbus.CommandFrameID), f.ID)
	assert.Equal(t, uint8(8), f.Length)
	// -5000 = 0xEC78
	assert.Equal(t, can.Data{0x78, 0xEC, 0xC4, 0x09, 0x00, 0x00, 0xD2, 0x04}, f.Data)
}

func TestDecodeCommand(t *testing.T) {
	cmds := []driver.Command{
		{Steering: 0.154, Accelerate: 0.6, Speed: 18},
		{Steering: -1, Brake: 1, Speed: 0},
		{Steering: 1, Accelerate: 1, Speed: 20.5},
	}
	for _, cmd := range cmds {
		got, err := canbus.DecodeCommand(canbus.EncodeCommand(cmd))
		require.NoError(t, err)
		assert.InDelta(t, cmd.Steering, got.Steering, 1e-4)
		assert.InDelta(t, cmd.Accelerate, got.Accelerate, 1e-4)
		assert.InDelta(t, cmd.Brake, got.Brake, 1e-4)
		assert.InDelta(t, cmd.Speed, got.Speed, 0.01)
	}
}

func TestEncodeClamps(t *testing.T) {
	got, err := canbus.DecodeCommand(canbus.EncodeCommand(driver.Command{Steering: 3, Brake: 2, Speed: -1}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Steering)
	assert.Equal(t, 1.0, got.Brake)
	assert.Equal(t, 0.0, got.Speed)
}

func TestDecodeUnexpectedFrame(t *testing.T) {
	_, err := canbus.DecodeCommand(can.Frame{ID: 0x200, Length: 8})
	assert.ErrorIs(t, err, canbus.ErrUnexpectedFrame)

	_, err = canbus.DecodeCommand(can.Frame{ID: canbus.CommandFrameID, Length: 4})
	assert.ErrorIs(t, err, canbus.ErrUnexpectedFrame)
}
