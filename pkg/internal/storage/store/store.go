// Package store 提供归属计划文档的存储接口和实现.
// 每个 vault 对应一个文档，文档内的 tokens 数组描述各资产的归属计划，
// 所有后端共享同一文档形态，便于在环境之间迁移.
package store

import (
	"context"
	"fmt"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

type Client struct {
	Store
}

// Store 定义归属计划文档的存储接口.
type Store interface {
	// List 返回集合内的全部 vault 文档.
	List(ctx context.Context) ([]model.VaultDocument, error)
	// Get 获取单个 vault 的文档.
	Get(ctx context.Context, vaultID string) (*model.VaultDocument, error)
	// Put 写入或覆盖单个 vault 的文档.
	Put(ctx context.Context, doc *model.VaultDocument) error
	// Delete 删除单个 vault 的文档.
	Delete(ctx context.Context, vaultID string) error
	// HealthCheck 验证后端连接可用.
	HealthCheck(ctx context.Context) error
	// Close 关闭存储连接.
	Close() error
}

// Factory 定义创建 Store 的工厂函数类型.
type Factory func(ctx context.Context, cfg *configs.AppConfig) (Store, error)

// storeFactories 存储后端类型到工厂的映射.
var storeFactories = make(map[configs.StoreType]Factory)

// RegisterFactory 注册存储工厂函数.
func RegisterFactory(storeType configs.StoreType, factory Factory) {
	storeFactories[storeType] = factory
}

// GetRegisteredStoreTypes 返回已注册的存储后端类型列表.
func GetRegisteredStoreTypes() []configs.StoreType {
	types := make([]configs.StoreType, 0, len(storeFactories))
	for storeType := range storeFactories {
		types = append(types, storeType)
	}

	return types
}

// NewStore 根据类型创建 Store 实例.
func NewStore(ctx context.Context, storeType configs.StoreType, cfg *configs.AppConfig) (Store, error) {
	factory, exists := storeFactories[storeType]
	if !exists {
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}

	return factory(ctx, cfg)
}

// New 创建并返回一个新的存储 Client 实例，后端类型由全局配置决定.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig()

	s, err := NewStore(ctx, cfg.Store.Type, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{Store: s}, nil
}
