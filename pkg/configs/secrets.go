package configs

import (
	"time"

	"github.com/spf13/viper"
)

// SecretProvider 密钥提供方类型.
type SecretProvider string

const (
	SecretProviderEnv  SecretProvider = "env"
	SecretProviderFile SecretProvider = "file"
	SecretProviderGCP  SecretProvider = "gcp"

	// DefaultSecretVersion 默认密钥版本.
	DefaultSecretVersion = "latest"
	// DefaultAPITokenName 广播 API 访问令牌的密钥名.
	DefaultAPITokenName = "USER_API_TOKEN"
	// DefaultSigningKeyName 交易签名私钥（PEM）的密钥名.
	DefaultSigningKeyName = "API_SIGNER_PRIVATE_KEY"
	// DefaultSecretCacheTTL 进程内密钥缓存时间.
	DefaultSecretCacheTTL = 5 * time.Minute
)

// SecretsConfig 密钥提供方配置，API 令牌与签名私钥经由同一提供方获取.
type SecretsConfig struct {
	Provider       SecretProvider   `mapstructure:"provider"         rule:"oneof=env file gcp"`
	Version        string           `mapstructure:"version"`
	APITokenName   string           `mapstructure:"api_token_name"   rule:"required"`
	SigningKeyName string           `mapstructure:"signing_key_name" rule:"required"`
	CacheTTL       time.Duration    `mapstructure:"cache_ttl"`
	Env            EnvSecretConfig  `mapstructure:"env"`
	File           FileSecretConfig `mapstructure:"file"`
	GCP            GCPSecretConfig  `mapstructure:"gcp"`
}

// EnvSecretConfig 环境变量提供方配置，密钥名直接映射为环境变量名.
type EnvSecretConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// FileSecretConfig 本地目录提供方配置，每个密钥对应目录下的一个文件.
type FileSecretConfig struct {
	Dir string `mapstructure:"dir" rule:"required"`
}

// GCPSecretConfig Google Secret Manager 提供方配置.
type GCPSecretConfig struct {
	ProjectID       string `mapstructure:"project_id"       rule:"required"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// GetProvider 返回当前配置的密钥提供方.
func (c *SecretsConfig) GetProvider() SecretProvider {
	return c.Provider
}

// setDefaults 设置密钥配置的默认值.
func (c *SecretsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("secrets.provider", SecretProviderEnv)
	v.SetDefault("secrets.version", DefaultSecretVersion)
	v.SetDefault("secrets.api_token_name", DefaultAPITokenName)
	v.SetDefault("secrets.signing_key_name", DefaultSigningKeyName)
	v.SetDefault("secrets.cache_ttl", DefaultSecretCacheTTL)

	// Env 默认值
	v.SetDefault("secrets.env.prefix", "")

	// File 默认值
	v.SetDefault("secrets.file.dir", "secrets")

	// GCP 默认值
	v.SetDefault("secrets.gcp.project_id", "")
	v.SetDefault("secrets.gcp.credentials_file", "")
}
