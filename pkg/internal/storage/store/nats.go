package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

// NATSStore 基于 NATS JetStream KV 的存储实现，键为 vault_id，值为 JSON 文档.
type NATSStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSStore 创建 NATS KV 存储实例.
func NewNATSStore(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	natsCfg := cfg.Store.NATS

	// 连接到 NATS
	opts := []nats.Option{}
	if natsCfg.User != "" {
		opts = append(opts, nats.UserInfo(natsCfg.User, natsCfg.Password))
	}

	nc, err := nats.Connect(natsCfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	// 创建 JetStream 上下文
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// 创建或获取 KV bucket
	kv, err := js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket: natsCfg.Bucket,
	})
	if err != nil {
		// 如果 bucket 已存在，获取它
		kv, err = js.KeyValue(natsCfg.Bucket)
		if err != nil {
			nc.Close()

			return nil, fmt.Errorf("failed to create/get KV bucket: %w", err)
		}
	}

	return &NATSStore{conn: nc, kv: kv}, nil
}

// decodeEntry 将 KV 条目还原为文档形态.
func decodeEntry(vaultID string, data []byte) (model.VaultDocument, error) {
	doc := model.VaultDocument{VaultID: vaultID}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode document %s: %w", vaultID, err)
	}

	doc.VaultID = vaultID

	return doc, nil
}

// List 返回 bucket 内的全部 vault 文档.
func (n *NATSStore) List(ctx context.Context) ([]model.VaultDocument, error) {
	keys, err := n.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	sort.Strings(keys)

	out := make([]model.VaultDocument, 0, len(keys))

	for _, key := range keys {
		entry, err := n.kv.Get(key)
		if errors.Is(err, nats.ErrKeyNotFound) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get key %s: %w", key, err)
		}

		doc, err := decodeEntry(key, entry.Value())
		if err != nil {
			return nil, err
		}

		out = append(out, doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (n *NATSStore) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	entry, err := n.kv.Get(vaultID)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, fmt.Errorf("vault not found: %s", vaultID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get vault %s: %w", vaultID, err)
	}

	doc, err := decodeEntry(vaultID, entry.Value())
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Put 写入或覆盖单个 vault 的文档.
func (n *NATSStore) Put(ctx context.Context, doc *model.VaultDocument) error {
	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.VaultID, err)
	}

	if _, err := n.kv.Put(doc.VaultID, data); err != nil {
		return fmt.Errorf("failed to put vault %s: %w", doc.VaultID, err)
	}

	return nil
}

// Delete 删除单个 vault 的文档.
func (n *NATSStore) Delete(ctx context.Context, vaultID string) error {
	if err := n.kv.Delete(vaultID); err != nil {
		return fmt.Errorf("failed to delete vault %s: %w", vaultID, err)
	}

	return nil
}

// HealthCheck 验证 NATS 连接.
func (n *NATSStore) HealthCheck(ctx context.Context) error {
	if !n.conn.IsConnected() {
		return fmt.Errorf("nats connection lost: status %s", n.conn.Status())
	}

	return nil
}

// Close 关闭 NATS 连接.
func (n *NATSStore) Close() error {
	n.conn.Close()

	return nil
}

func init() {
	RegisterFactory(configs.StoreTypeNATS, NewNATSStore)
}
