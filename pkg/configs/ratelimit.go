package configs

import "github.com/spf13/viper"

const (
	// 默认出站速率限制配置.
	DefaultRateLimitEnabled = true
	DefaultRateLimitRPS     = 5.0
	DefaultRateLimitBurst   = 5
)

// RateLimitConfig 出站广播请求的速率限制配置，避免刷新后大量到期任务瞬间打满下游.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // 每秒允许的请求数
	Burst   int     `mapstructure:"burst"` // 突发容量
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
}
