package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

// RedisStore 基于 Redis 的存储实现，每个 vault 文档存为一个 JSON 字符串键.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储实例.
func NewRedisStore(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	redisCfg := cfg.Store.Redis

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	// 测试连接
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: rdb,
		prefix: redisCfg.KeyPrefix,
	}, nil
}

// key 拼接 vault 文档的存储键.
func (s *RedisStore) key(vaultID string) string {
	return s.prefix + vaultID
}

// List 返回全部 vault 文档，按 vault_id 排序保证刷新对比稳定.
func (s *RedisStore) List(ctx context.Context) ([]model.VaultDocument, error) {
	keys, err := s.client.Keys(ctx, s.prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	sort.Strings(keys)

	out := make([]model.VaultDocument, 0, len(keys))

	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// List 与 Get 之间被删除，跳过
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get key %s: %w", key, err)
		}

		var doc model.VaultDocument
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", key, err)
		}

		doc.VaultID = strings.TrimPrefix(key, s.prefix)
		out = append(out, doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (s *RedisStore) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	data, err := s.client.Get(ctx, s.key(vaultID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("vault not found: %s", vaultID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get vault %s: %w", vaultID, err)
	}

	var doc model.VaultDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", vaultID, err)
	}

	doc.VaultID = vaultID

	return &doc, nil
}

// Put 写入或覆盖单个 vault 的文档.
func (s *RedisStore) Put(ctx context.Context, doc *model.VaultDocument) error {
	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.VaultID, err)
	}

	if err := s.client.Set(ctx, s.key(doc.VaultID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set vault %s: %w", doc.VaultID, err)
	}

	return nil
}

// Delete 删除单个 vault 的文档.
func (s *RedisStore) Delete(ctx context.Context, vaultID string) error {
	if err := s.client.Del(ctx, s.key(vaultID)).Err(); err != nil {
		return fmt.Errorf("failed to delete vault %s: %w", vaultID, err)
	}

	return nil
}

// HealthCheck 验证 Redis 连接.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 关闭 Redis 连接.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func init() {
	RegisterFactory(configs.StoreTypeRedis, NewRedisStore)
}
