// Package secret 提供密钥获取的接口和实现.
// 广播 API 令牌与交易签名私钥都经由这里获取，支持环境变量、本地目录与
// Google Secret Manager 三种提供方，并可叠加进程内 TTL 缓存.
package secret

import (
	"context"
	"fmt"

	"github.com/yeisme/vestvault/pkg/configs"
)

type Client struct {
	Provider
}

// Provider 定义密钥提供方接口.
type Provider interface {
	// Get 获取指定名称与版本的密钥值，不支持版本的提供方忽略 version.
	Get(ctx context.Context, name, version string) (string, error)
	// Close 关闭提供方连接.
	Close() error
}

// Factory 定义创建 Provider 的工厂函数类型.
type Factory func(ctx context.Context, cfg *configs.AppConfig) (Provider, error)

// providerFactories 存储提供方类型到工厂的映射.
var providerFactories = make(map[configs.SecretProvider]Factory)

// RegisterFactory 注册密钥提供方工厂函数.
func RegisterFactory(provider configs.SecretProvider, factory Factory) {
	providerFactories[provider] = factory
}

// GetRegisteredProviders 返回已注册的提供方类型列表.
func GetRegisteredProviders() []configs.SecretProvider {
	types := make([]configs.SecretProvider, 0, len(providerFactories))
	for provider := range providerFactories {
		types = append(types, provider)
	}

	return types
}

// NewProvider 根据类型创建 Provider 实例.
func NewProvider(ctx context.Context, provider configs.SecretProvider, cfg *configs.AppConfig) (Provider, error) {
	factory, exists := providerFactories[provider]
	if !exists {
		return nil, fmt.Errorf("unsupported secret provider: %s", provider)
	}

	return factory(ctx, cfg)
}

// New 创建并返回一个新的密钥 Client 实例，提供方由全局配置决定.
// 配置了 cache_ttl 时在提供方外叠加进程内缓存，避免每次执行都访问远端.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig()

	p, err := NewProvider(ctx, cfg.Secrets.Provider, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Secrets.CacheTTL > 0 {
		p = NewCachedProvider(p, cfg.Secrets.CacheTTL)
	}

	return &Client{Provider: p}, nil
}
