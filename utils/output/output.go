// 逐步记录驾驶指令输出
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/canbus"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
)

// Sink 输出记录器
// 功能：csv格式每步输出一行（步数、指标、分类结果与指令），
// can格式每步输出一行"步数 ID#DATA"
type Sink struct {
	format string

	csv    *csv.Writer
	header bool

	buf *bufio.Writer
}

// New 创建输出记录器
// 参数：format-输出格式（csv或can），w-输出目标
func New(format string, w io.Writer) (*Sink, error) {
	switch format {
	case config.FormatCSV:
		return &Sink{format: format, csv: csv.NewWriter(w)}, nil
	case config.FormatCAN:
		return &Sink{format: format, buf: bufio.NewWriter(w)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", config.ErrInvalid, format)
	}
}

// Header csv格式的表头
func Header() []string {
	h := []string{"step"}
	h = append(h, affordance.FieldNames[:]...)
	return append(h, "speed", "position", "lanes", "steering", "accelerate", "brake")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Write 记录一步
func (s *Sink) Write(step int32, f entity.Frame, cmd driver.Command) error {
	if s.format == config.FormatCAN {
		_, err := fmt.Fprintf(s.buf, "%d %s\n", step, canbus.EncodeCommand(cmd).String())
		return err
	}
	if !s.header {
		if err := s.csv.Write(Header()); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		s.header = true
	}
	c := f.Indicators.Classify()
	record := []string{strconv.Itoa(int(step))}
	for _, v := range f.Indicators.Values() {
		record = append(record, formatFloat(v))
	}
	record = append(record,
		formatFloat(f.Speed), c.Position.String(), strconv.Itoa(c.Lanes),
		formatFloat(cmd.Steering), formatFloat(cmd.Accelerate), formatFloat(cmd.Brake),
	)
	return s.csv.Write(record)
}

// Flush 将缓冲写入输出目标
func (s *Sink) Flush() error {
	if s.format == config.FormatCAN {
		return s.buf.Flush()
	}
	s.csv.Flush()
	return s.csv.Error()
}
