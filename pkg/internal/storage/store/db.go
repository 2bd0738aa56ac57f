package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
	dbc "github.com/yeisme/vestvault/pkg/internal/storage/db"
)

// DBStore 基于关系数据库的存储实现，一行保存一个 vault 文档，tokens 以 JSON 文本存储.
type DBStore struct {
	client *dbc.Client
	table  string
}

// NewDBStore 创建数据库存储实例并迁移表结构.
func NewDBStore(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	client, err := dbc.New(ctx)
	if err != nil {
		return nil, err
	}

	table := cfg.Store.Collection
	if err := client.WithContext(ctx).Table(table).AutoMigrate(&model.VaultConfigs{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store table %s: %w", table, err)
	}

	return &DBStore{client: client, table: table}, nil
}

// decodeRow 将行记录还原为文档形态.
func decodeRow(row *model.VaultConfigs) (model.VaultDocument, error) {
	doc := model.VaultDocument{VaultID: row.VaultID}

	if row.TokensJSON == "" {
		return doc, nil
	}

	if err := sonic.UnmarshalString(row.TokensJSON, &doc.Tokens); err != nil {
		return doc, fmt.Errorf("failed to decode tokens for vault %s: %w", row.VaultID, err)
	}

	return doc, nil
}

// List 返回全部 vault 文档，按 vault_id 排序保证刷新对比稳定.
func (s *DBStore) List(ctx context.Context) ([]model.VaultDocument, error) {
	var rows []model.VaultConfigs
	if err := s.client.WithContext(ctx).Table(s.table).Order("vault_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list vault configs: %w", err)
	}

	out := make([]model.VaultDocument, 0, len(rows))

	for i := range rows {
		doc, err := decodeRow(&rows[i])
		if err != nil {
			return nil, err
		}

		out = append(out, doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (s *DBStore) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	var row model.VaultConfigs

	err := s.client.WithContext(ctx).Table(s.table).Where("vault_id = ?", vaultID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("vault not found: %s", vaultID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get vault %s: %w", vaultID, err)
	}

	doc, err := decodeRow(&row)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Put 写入或覆盖单个 vault 的文档（vault_id 冲突时更新并清除软删除标记）.
func (s *DBStore) Put(ctx context.Context, doc *model.VaultDocument) error {
	data, err := sonic.MarshalString(doc.Tokens)
	if err != nil {
		return fmt.Errorf("failed to encode tokens for vault %s: %w", doc.VaultID, err)
	}

	row := model.VaultConfigs{VaultID: doc.VaultID, TokensJSON: data}

	err = s.client.WithContext(ctx).Table(s.table).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vault_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"tokens_json": data,
			"deleted_at":  nil,
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert vault %s: %w", doc.VaultID, err)
	}

	return nil
}

// Delete 删除单个 vault 的文档（软删除）.
func (s *DBStore) Delete(ctx context.Context, vaultID string) error {
	err := s.client.WithContext(ctx).Table(s.table).
		Where("vault_id = ?", vaultID).
		Delete(&model.VaultConfigs{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete vault %s: %w", vaultID, err)
	}

	return nil
}

// HealthCheck 验证数据库连接.
func (s *DBStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.client.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close 关闭数据库连接.
func (s *DBStore) Close() error {
	sqlDB, err := s.client.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func init() {
	RegisterFactory(configs.StoreTypeDB, NewDBStore)
}
