package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v2"
)

// ErrInvalid 配置校验失败
var ErrInvalid = errors.New("invalid config")

const defaultInterval = 0.05

// Parse 严格解析YAML配置（未知字段视为错误）并校验
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate 校验配置
// 功能：检查输入来源、车道数、时间步与输出格式是否合法
// 返回：不合法时返回包装了ErrInvalid的错误
func (c Config) Validate() error {
	switch {
	case c.Input.Trace == "" && c.Input.Highway == nil:
		return invalid("one of input.trace and input.highway must be specified")
	case c.Input.Trace != "" && c.Input.Highway != nil:
		return invalid("input.trace and input.highway are mutually exclusive")
	}
	if c.Control.Lanes < 0 || c.Control.Lanes > 3 {
		return invalid("control.lanes must be in [0,3], got %d", c.Control.Lanes)
	}
	s := c.Control.Step
	if s.Interval < 0 {
		return invalid("control.step.interval must not be negative, got %v", s.Interval)
	}
	if s.Start < 0 || s.Total < 0 {
		return invalid("control.step.start and control.step.total must not be negative")
	}
	switch c.Output.Format {
	case "", FormatCSV, FormatCAN:
	default:
		return invalid("output.format must be %q or %q, got %q", FormatCSV, FormatCAN, c.Output.Format)
	}
	if h := c.Input.Highway; h != nil {
		if h.Lanes < 1 || h.Lanes > 3 {
			return invalid("input.highway.lanes must be in [1,3], got %d", h.Lanes)
		}
		if h.InitLane < 0 || h.InitLane >= h.Lanes {
			return invalid("input.highway.init_lane must be in [0,%d), got %d", h.Lanes, h.InitLane)
		}
		if h.NoiseStd < 0 {
			return invalid("input.highway.noise_std must not be negative")
		}
		for i, car := range h.Cars {
			if car.Lane < 0 || car.Lane >= h.Lanes {
				return invalid("input.highway.cars[%d].lane must be in [0,%d), got %d", i, h.Lanes, car.Lane)
			}
		}
	}
	return nil
}

// RuntimeConfig 运行时配置
// 功能：存储填充默认值后的配置
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置

	Lanes  int    // 传给控制器的车道数提示
	Format string // 输出格式
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象并填充默认值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 未指定时间间隔时默认为0.05秒
// 2. 未指定输出格式时默认为csv
func NewRuntimeConfig(config Config) *RuntimeConfig {
	if config.Control.Step.Interval == 0 {
		config.Control.Step.Interval = defaultInterval
	}
	if config.Output.Format == "" {
		config.Output.Format = FormatCSV
	}
	return &RuntimeConfig{
		All:    config,
		C:      config.Control,
		Lanes:  config.Control.Lanes,
		Format: config.Output.Format,
	}
}
