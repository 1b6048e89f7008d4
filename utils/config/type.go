package config

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义驾驶循环的时间控制参数
// 说明：Total为0时不限制步数，直到输入耗尽或被中断
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 驾驶控制配置
// 功能：定义驾驶循环的核心控制参数
// 说明：控制器的数值参数固定，不在此处配置
type Control struct {
	Step    ControlStep `yaml:"step"`
	Lanes   int         `yaml:"lanes,omitempty"`   // 车道数提示，0表示由指标自动估计
	Enabled *bool       `yaml:"enabled,omitempty"` // 是否由控制器接管，默认接管
}

// IsControlling 控制器是否接管车辆
func (c Control) IsControlling() bool {
	return c.Enabled == nil || *c.Enabled
}

// TrafficCar 合成道路上的一辆匀速行驶的交通车
type TrafficCar struct {
	Lane     int     `yaml:"lane"`     // 所在车道，0为最左侧车道
	Position float64 `yaml:"position"` // 初始纵向位置（米），相对本车
	Speed    float64 `yaml:"speed"`    // 车速（米/秒）
}

// Highway 合成直道的配置
// 功能：定义闭环驾驶使用的合成道路、交通车与估计噪声
type Highway struct {
	Lanes     int          `yaml:"lanes"`                // 车道数，[1,3]
	InitLane  int          `yaml:"init_lane"`            // 本车初始车道，0为最左侧车道
	InitSpeed float64      `yaml:"init_speed,omitempty"` // 本车初始车速（米/秒）
	Cars      []TrafficCar `yaml:"cars,omitempty"`       // 交通车
	NoiseStd  float64      `yaml:"noise_std,omitempty"`  // 指标估计噪声的标准差（米）
	Seed      uint64       `yaml:"seed,omitempty"`       // 噪声随机数种子
}

// Input 指标输入来源的配置项
// 功能：指定回放的指标轨迹文件或闭环使用的合成道路，两者必须且只能选择一个
type Input struct {
	Trace   string   `yaml:"trace,omitempty"`   // 指标轨迹CSV文件路径
	Highway *Highway `yaml:"highway,omitempty"` // 合成道路
}

const (
	FormatCSV = "csv" // 每步一行CSV记录
	FormatCAN = "can" // 每步一行candump格式的CAN帧
)

// Output 输出配置
type Output struct {
	File   string `yaml:"file,omitempty"`   // 输出文件路径，为空时输出到标准输出
	Format string `yaml:"format,omitempty"` // 输出格式：csv或can，默认csv
}

// Config YAML配置文件的根结构
// 功能：定义整个驾驶循环的配置结构
// 说明：包含输入、控制、输出等所有配置项
type Config struct {
	Input   Input   `yaml:"input"`            // 输入
	Control Control `yaml:"control"`          // 驾驶过程控制
	Output  Output  `yaml:"output,omitempty"` // 输出
}
