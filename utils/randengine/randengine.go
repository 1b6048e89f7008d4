// 随机数引擎，包装了golang.org/x/exp/rand，为合成道路提供可复现的噪声
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能
// 说明：非线程安全，只能由驾驶循环所在的goroutine使用
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Normal 正态分布随机数
// 参数：mean-均值，std-标准差，std<=0时直接返回均值
func (e *Engine) Normal(mean, std float64) float64 {
	if std <= 0 {
		return mean
	}
	return mean + std*e.NormFloat64()
}

// Uniform [lo, hi)范围内的均匀分布随机数
func (e *Engine) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.Float64()
}

// PTrue 以指定概率返回true
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}
