package task

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/clock"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/highway"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/input"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/output"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/utils/randengine"
)

var log = logrus.WithField("module", "task")

// Context 驾驶任务上下文
// 功能：包含一次驾驶任务的所有组件与状态
// 说明：管理时钟、指标来源、控制器与输出，驾驶循环只在调用Run的goroutine上运行
type Context struct {
	// 时钟
	clock *clock.Clock
	// 运行时配置
	runtimeConfig *config.RuntimeConfig

	// 指标来源
	source entity.ISource
	// 控制器
	controller *driver.Controller
	// 输出
	sink entity.ISink
	// 输出文件，输出到标准输出时为nil
	file io.Closer

	// 被拒绝（输入存在非有限值）的步数
	rejected int
}

// New 由已构建的指标来源与输出创建任务上下文
func New(rc *config.RuntimeConfig, source entity.ISource, sink entity.ISink) *Context {
	return &Context{
		clock:         clock.New(rc.C.Step),
		runtimeConfig: rc,
		source:        source,
		controller:    driver.NewController(),
		sink:          sink,
	}
}

// NewContext 根据配置创建任务上下文
// 功能：校验配置，创建指标来源（轨迹回放或合成道路）与输出
// 参数：c-配置对象
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 校验配置并填充默认值
// 2. 配置了input.trace时加载轨迹，否则创建合成道路
// 3. 打开输出文件（未配置时输出到标准输出）
func NewContext(c config.Config) (*Context, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rc := config.NewRuntimeConfig(c)

	var source entity.ISource
	if path := rc.All.Input.Trace; path != "" {
		trace, err := input.LoadTrace(path)
		if err != nil {
			return nil, err
		}
		source = input.NewTraceSource(trace, 0)
	} else {
		h := rc.All.Input.Highway
		source = highway.New(*h, randengine.New(h.Seed))
	}

	var w io.Writer = os.Stdout
	var file *os.File
	if path := rc.All.Output.File; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		w, file = f, f
	}
	sink, err := output.New(rc.Format, w)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, err
	}

	ctx := New(rc, source, sink)
	if file != nil {
		ctx.file = file
	}
	return ctx, nil
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Controller() *driver.Controller {
	return ctx.controller
}

// Rejected 因输入存在非有限值而输出中性指令的步数
func (ctx *Context) Rejected() int {
	return ctx.rejected
}

// Close 关闭输出文件
func (ctx *Context) Close() error {
	if ctx.file == nil {
		return nil
	}
	err := ctx.file.Close()
	ctx.file = nil
	return err
}
