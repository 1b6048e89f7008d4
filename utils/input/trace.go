package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/affordance"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
)

// SpeedColumn 轨迹中可选的车速列名
const SpeedColumn = "speed"

// ErrMissingColumn 轨迹缺少必需的指标列
var ErrMissingColumn = errors.New("missing column")

// Trace 记录的指标轨迹
type Trace struct {
	Frames   []entity.Frame // 每步一帧
	HasSpeed bool           // 是否记录了车速，未记录时由回放按指令积分
}

// LoadTrace 从CSV文件读取指标轨迹
func LoadTrace(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	t, err := ReadTrace(f)
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}
	log.Infof("loaded %d frames from %s (speed recorded: %v)", len(t.Frames), path, t.HasSpeed)
	return t, nil
}

// ReadTrace 读取CSV格式的指标轨迹
// 功能：首行为表头，按列名匹配指标字段，每行一个仿真步
// 算法说明：
// 1. 表头必须包含affordance.FieldNames中的全部列，speed列可选，其他列忽略
// 2. 逐行解析浮点数，出错时报告行号与列名
func ReadTrace(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var cols [len(affordance.FieldNames)]int
	for i, name := range affordance.FieldNames {
		c, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = c
	}
	speedCol, hasSpeed := index[SpeedColumn]

	t := &Trace{HasSpeed: hasSpeed}
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		var v [len(affordance.FieldNames)]float64
		for i, c := range cols {
			if v[i], err = parseCell(record, c); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row, affordance.FieldNames[i], err)
			}
		}
		f := entity.Frame{Indicators: affordance.FromValues(v)}
		if hasSpeed {
			if f.Speed, err = parseCell(record, speedCol); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row, SpeedColumn, err)
			}
		}
		t.Frames = append(t.Frames, f)
	}
	return t, nil
}

func parseCell(record []string, c int) (float64, error) {
	if c >= len(record) {
		return 0, fmt.Errorf("%w: short row", ErrMissingColumn)
	}
	return strconv.ParseFloat(strings.TrimSpace(record[c]), 64)
}

// TraceSource 按顺序回放指标轨迹（开环）
// 说明：轨迹未记录车速时，车速由施加的指令按纵向运动学积分得到
type TraceSource struct {
	trace *Trace
	next  int
	speed float64
}

// NewTraceSource 创建轨迹回放来源
// 参数：t-指标轨迹，initSpeed-轨迹未记录车速时的初始车速
func NewTraceSource(t *Trace, initSpeed float64) *TraceSource {
	return &TraceSource{trace: t, speed: math.Max(initSpeed, 0)}
}

// Next 返回下一帧，轨迹耗尽时返回false
func (s *TraceSource) Next() (entity.Frame, bool) {
	if s.next >= len(s.trace.Frames) {
		return entity.Frame{}, false
	}
	f := s.trace.Frames[s.next]
	s.next++
	if !s.trace.HasSpeed {
		f.Speed = s.speed
	}
	return f, true
}

// Apply 开环回放不改变指标，仅在未记录车速时积分车速
func (s *TraceSource) Apply(cmd driver.Command, dt float64) {
	if s.trace.HasSpeed {
		return
	}
	s.speed, _ = entity.ComputeVAndDistance(s.speed, entity.Acceleration(cmd), dt)
}

// Remaining 剩余未回放的帧数
func (s *TraceSource) Remaining() int {
	return len(s.trace.Frames) - s.next
}
