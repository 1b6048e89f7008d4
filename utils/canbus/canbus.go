// 驾驶指令与CAN帧之间的编解码
package canbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"go.einride.tech/can"
)

// 帧布局（小端，DLC=8）：
//
//	byte 0-1 steering   int16  x1e-4
//	byte 2-3 accelerate uint16 x1e-4
//	byte 4-5 brake      uint16 x1e-4
//	byte 6-7 speed      uint16 x0.01 m/s
const (
	CommandFrameID = 0x101
	commandDLC     = 8

	pedalScale = 1e-4
	speedScale = 0.01
)

var ErrUnexpectedFrame = errors.New("unexpected frame")

func quantize(v, scale, low, high float64) float64 {
	return math.Round(lo.Clamp(v, low, high) / scale)
}

// EncodeCommand 将驾驶指令编码为CAN帧，超出范围的值被钳制
func EncodeCommand(cmd driver.Command) can.Frame {
	f := can.Frame{ID: CommandFrameID, Length: commandDLC}
	binary.LittleEndian.PutUint16(f.Data[0:2], uint16(int16(quantize(cmd.Steering, pedalScale, -1, 1))))
	binary.LittleEndian.PutUint16(f.Data[2:4], uint16(quantize(cmd.Accelerate, pedalScale, 0, 1)))
	binary.LittleEndian.PutUint16(f.Data[4:6], uint16(quantize(cmd.Brake, pedalScale, 0, 1)))
	binary.LittleEndian.PutUint16(f.Data[6:8], uint16(quantize(cmd.Speed, speedScale, 0, math.MaxUint16*speedScale)))
	return f
}

// DecodeCommand 从CAN帧解码驾驶指令
// 返回：帧ID或长度不符时返回包装了ErrUnexpectedFrame的错误
func DecodeCommand(f can.Frame) (driver.Command, error) {
	if f.ID != CommandFrameID || f.Length != commandDLC || f.IsRemote {
		return driver.Command{}, fmt.Errorf("%w: id=0x%X length=%d", ErrUnexpectedFrame, f.ID, f.Length)
	}
	return driver.Command{
		Steering:   float64(int16(binary.LittleEndian.Uint16(f.Data[0:2]))) * pedalScale,
		Accelerate: float64(binary.LittleEndian.Uint16(f.Data[2:4])) * pedalScale,
		Brake:      float64(binary.LittleEndian.Uint16(f.Data[4:6])) * pedalScale,
		Speed:      float64(binary.LittleEndian.Uint16(f.Data[6:8])) * speedScale,
	}, nil
}
