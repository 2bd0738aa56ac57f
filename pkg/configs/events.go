package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool                `mapstructure:"enabled"` // 总开关
	Vesting VestingEventsConfig `mapstructure:"vesting"`
}

// VestingEventsConfig 针对归属领域的事件开关。
type VestingEventsConfig struct {
	Registered bool `mapstructure:"registered"`
	Removed    bool `mapstructure:"removed"`
	Executed   bool `mapstructure:"executed"`
	Skipped    bool `mapstructure:"skipped"`
	Failed     bool `mapstructure:"failed"`
	Refreshed  bool `mapstructure:"refreshed"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 资金动作与失败必须可追溯，默认开启
	v.SetDefault("events.vesting.executed", true)
	v.SetDefault("events.vesting.failed", true)

	// 可选事件：默认关闭，按需开启
	v.SetDefault("events.vesting.registered", false)
	v.SetDefault("events.vesting.removed", false)
	v.SetDefault("events.vesting.skipped", false)   // 零额度跳过每天都会发生，默认关闭
	v.SetDefault("events.vesting.refreshed", false) // 刷新汇总事件，排查对账问题时再开启
}
