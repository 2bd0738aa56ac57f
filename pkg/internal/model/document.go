package model

import (
	"time"

	"gorm.io/gorm"
)

// VaultConfigs 数据库存储后端的行模型，一行保存一个 vault 的 token 计划文档.
type VaultConfigs struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// vault 标识，即文档 ID
	VaultID string `gorm:"size:255;uniqueIndex" json:"vault_id"`
	// Tokens 以 JSON 数组字符串存储，与其它后端的文档形态保持一致
	TokensJSON string `gorm:"type:text" json:"tokens_json"`
	// 软删除与审计
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
