package configs

import (
	"time"

	"github.com/spf13/viper"
)

// RefreshMode 配置刷新触发方式.
type RefreshMode string

const (
	RefreshModeDaily    RefreshMode = "daily"
	RefreshModeInterval RefreshMode = "interval"

	// DefaultSchedulerTick 调度循环的检查间隔，保证不迟于到期后一分钟触发.
	DefaultSchedulerTick = 30 * time.Second
	// DefaultSchedulerTimezone 归属时刻 HH:MM 的参考时区.
	DefaultSchedulerTimezone = "CET"
	// DefaultDispatchLimit 单次 tick 内并发执行到期任务的上限.
	DefaultDispatchLimit = 8

	// DefaultRefreshDailyTime 每日刷新配置的时刻（参考时区）.
	DefaultRefreshDailyTime = "14:00"
	// DefaultRefreshInterval interval 模式下的刷新间隔.
	DefaultRefreshInterval = time.Hour
)

// SchedulerConfig 归属调度循环配置.
type SchedulerConfig struct {
	Tick          time.Duration `mapstructure:"tick"           rule:"min=1s,max=1m"`
	Timezone      string        `mapstructure:"timezone"       rule:"required"`
	DispatchLimit int           `mapstructure:"dispatch_limit" rule:"min=1,max=64"`
}

// GetTickInterval 返回调度检查间隔.
func (c *SchedulerConfig) GetTickInterval() time.Duration {
	return c.Tick
}

// GetLocation 解析配置的参考时区，无法解析时回退 UTC.
func (c *SchedulerConfig) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// setDefaults 设置调度配置的默认值.
func (c *SchedulerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.tick", DefaultSchedulerTick)
	v.SetDefault("scheduler.timezone", DefaultSchedulerTimezone)
	v.SetDefault("scheduler.dispatch_limit", DefaultDispatchLimit)
}

// RefreshConfig 配置刷新策略：daily 模式在参考时区的固定时刻刷新，
// interval 模式按固定间隔刷新.
type RefreshConfig struct {
	Mode        RefreshMode   `mapstructure:"mode"         rule:"oneof=daily interval"`
	DailyTime   string        `mapstructure:"daily_time"`
	Interval    time.Duration `mapstructure:"interval"     rule:"min=1m"`
	RemoveStale bool          `mapstructure:"remove_stale"`
}

// setDefaults 设置刷新配置的默认值.
func (c *RefreshConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("refresh.mode", RefreshModeDaily)
	v.SetDefault("refresh.daily_time", DefaultRefreshDailyTime)
	v.SetDefault("refresh.interval", DefaultRefreshInterval)
	// 下游不再返回的配置默认保留在调度中，避免误删仍在执行的计划
	v.SetDefault("refresh.remove_stale", false)
}
