package task

import (
	"context"
	"flag"
	"fmt"

	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity"
	"github.com/tsinghua-fib-lab/deepdriving-sim-oss/entity/driver"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// update 更新阶段，每步执行一次
// 功能：控制器接管时计算本步指令，否则输出只透传车速的中性指令
func (ctx *Context) update(f entity.Frame) driver.Command {
	if !ctx.runtimeConfig.C.IsControlling() {
		return driver.Command{Speed: f.Speed}
	}
	if f.Indicators.Validate() != nil {
		ctx.rejected++
	}
	return ctx.controller.Control(f.Indicators, f.Speed, ctx.runtimeConfig.Lanes)
}

// prepare 推进时钟并定期输出心跳日志
func (ctx *Context) prepare(f entity.Frame, cmd driver.Command) {
	ctx.clock.Tick()
	if n := int32(*heartBeatInterval); n > 0 && ctx.clock.Elapsed()%n == 0 {
		s := ctx.controller.State()
		log.Infof("STEP: %d(%v) %v lane=%v desired=%.2f lanes=%d",
			ctx.clock.Step, ctx.clock, cmd, s.LaneChange, s.DesiredSpeed, f.Indicators.NumberOfLanes())
	}
}

// Run 运行驾驶循环
// 功能：逐步读取输入、计算指令、记录输出并将指令作用于车辆
// 参数：runCtx-取消信号
// 返回：runCtx被取消时返回其错误，输出失败时返回包装后的错误
// 说明：到达结束步或输入耗尽时正常结束；无论如何结束都会刷新输出
func (ctx *Context) Run(runCtx context.Context) (err error) {
	ctx.clock.Init()
	defer func() {
		if ferr := ctx.sink.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", ferr)
		}
	}()
	log.Infof("start at step %d, end at step %d (0 means unbounded), dt=%v",
		ctx.clock.StartStep, ctx.clock.EndStep, ctx.clock.DT)

	for !ctx.clock.Done() {
		select {
		case <-runCtx.Done():
			log.Warnf("interrupted at step %d", ctx.clock.Step)
			return runCtx.Err()
		default:
		}
		f, ok := ctx.source.Next()
		if !ok {
			log.Infof("input exhausted at step %d", ctx.clock.Step)
			break
		}
		cmd := ctx.update(f)
		if err := ctx.sink.Write(ctx.clock.Step, f, cmd); err != nil {
			return fmt.Errorf("write step %d: %w", ctx.clock.Step, err)
		}
		ctx.source.Apply(cmd, ctx.clock.DT)
		ctx.prepare(f, cmd)
	}
	log.Infof("finished after %d steps, %d rejected", ctx.clock.Elapsed(), ctx.rejected)
	return nil
}
