// Package configs 管理应用程序配置，包括归属计划存储、密钥、签名 API 与队列的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）并启用热重载.
//
// Example:
//
//	import "path/to/configs"
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing Store config:
//
//	config := configs.GetConfig()
//	storeConfig := config.Store
//	fmt.Println("Store Type:", storeConfig.GetStoreType())
//
// Example accessing Scheduler config:
//
//	config := configs.GetConfig()
//	schedConfig := config.Scheduler
//	fmt.Println("Tick:", schedConfig.GetTickInterval())
//
// Example accessing MQ config:
//
//	config := configs.GetConfig()
//	mqConfig := config.MQ
//	mqType := mqConfig.GetMQType()
//	fmt.Println("MQ Type:", mqType)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server    ServerConfig         `mapstructure:"server"`          // ServerConfig 运维端口、调试开关等
		Log       LogConfig            `mapstructure:"log"`             // LogConfig 日志相关配置
		Store     StoreConfig          `mapstructure:"store"`           // StoreConfig 归属计划存储后端配置
		Secrets   SecretsConfig        `mapstructure:"secrets"`         // SecretsConfig 密钥提供方配置
		API       APIConfig            `mapstructure:"api"`             // APIConfig 交易广播 API 配置
		Scheduler SchedulerConfig      `mapstructure:"scheduler"`       // SchedulerConfig 调度循环配置
		Refresh   RefreshConfig        `mapstructure:"refresh"`         // RefreshConfig 配置刷新策略
		DB        DBConfig             `mapstructure:"db"`              // DBConfig 数据库配置（db 存储后端使用）
		S3        S3Config             `mapstructure:"s3"`              // S3Config 对象存储配置（s3 存储后端使用）
		MQ        MQConfig             `mapstructure:"mq"`              // MQConfig 消息队列配置
		Events    EventsConfig         `mapstructure:"events"`          // EventsConfig 事件发布开关
		Metrics   MetricsConfig        `mapstructure:"metrics"`         // MetricsConfig 指标配置
		Tracing   TracingConfig        `mapstructure:"tracing"`         // TracingConfig 链路追踪配置
		RateLimit RateLimitConfig      `mapstructure:"rate_limit"`      // RateLimitConfig 出站限流配置
		Breaker   CircuitBreakerConfig `mapstructure:"circuit_breaker"` // CircuitBreakerConfig 出站熔断配置
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并启用热重载.
func InitConfig(path string) error {
	appViper = viper.New()
	// 设置默认值
	setAllDefaults(appViper)

	// 检查path是否是文件
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// 是文件，使用SetConfigFile，Viper会自动检测类型
		appViper.SetConfigFile(path)
	} else {
		// 是目录，设置配置名和路径
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("VESTVAULT")

	// 读取配置，找不到配置文件时退回默认值加环境变量
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 解析到全局配置
	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var serverConfig ServerConfig

	var logConfig LogConfig

	var storeConfig StoreConfig

	var secretsConfig SecretsConfig

	var apiConfig APIConfig

	var schedulerConfig SchedulerConfig

	var refreshConfig RefreshConfig

	var dbConfig DBConfig

	var s3Config S3Config

	var mqConfig MQConfig

	var eventsConfig EventsConfig

	var metricsConfig MetricsConfig

	var tracingConfig TracingConfig

	var rateLimitConfig RateLimitConfig

	var breakerConfig CircuitBreakerConfig

	serverConfig.setDefaults(v)
	logConfig.setDefaults(v)
	storeConfig.setDefaults(v)
	secretsConfig.setDefaults(v)
	apiConfig.setDefaults(v)
	schedulerConfig.setDefaults(v)
	refreshConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	s3Config.setDefaults(v)
	mqConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rateLimitConfig.setDefaults(v)
	breakerConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}
	// 启用配置热重载
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

func GetViper() *viper.Viper {
	return appViper
}
