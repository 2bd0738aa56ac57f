package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAPITransactionsPath 交易提交路径，同时参与签名载荷.
	DefaultAPITransactionsPath = "/api/v1/transactions"
	// DefaultAPITimeout 单次广播请求的超时时间.
	DefaultAPITimeout = 30 * time.Second
)

// APIConfig 托管交易广播 API 配置.
type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"          rule:"required,url"`
	TransactionsPath string        `mapstructure:"transactions_path" rule:"required,startswith=/"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// GetTransactionsURL 返回交易提交的完整 URL.
func (c *APIConfig) GetTransactionsURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.TransactionsPath
}

// setDefaults 设置 API 配置的默认值.
func (c *APIConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.fordefi.com")
	v.SetDefault("api.transactions_path", DefaultAPITransactionsPath)
	v.SetDefault("api.timeout", DefaultAPITimeout)
}
