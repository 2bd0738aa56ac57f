package model

// Ecosystem 资产所属生态，目前仅支持 EVM 系.
type Ecosystem string

// AssetKind 资产形态，主网原生币或 ERC20 代币，加载时即收敛为封闭枚举.
type AssetKind string

// JobState 归属任务的调度状态.
type JobState string

const (
	EcosystemEVM Ecosystem = "evm"

	KindNative AssetKind = "native"
	KindToken  AssetKind = "token"

	// StatePendingCliff 等待 cliff 结束后的首次执行.
	StatePendingCliff JobState = "pending_cliff"
	// StateRecurring 首次执行后进入的每日循环状态.
	StateRecurring JobState = "recurring"
)

// VestingConfig 单个 (vault, asset) 的归属计划，对应存储文档 tokens 数组中的一个条目.
// Amount 为每期转账数量（资产单位的十进制字符串），存储键为 value；
// 数量为 0 的条目会被照常调度，但到期时只记录跳过，不触发转账.
// Destination 只要求非空，地址格式不做校验，原样传给托管 API.
type VestingConfig struct {
	VaultID     string    `firestore:"-"            json:"-"            rule:"required"`
	Asset       string    `firestore:"asset"        json:"asset"        rule:"required"`
	Ecosystem   Ecosystem `firestore:"ecosystem"    json:"ecosystem"    rule:"oneof=evm"`
	Kind        AssetKind `firestore:"type"         json:"type"         rule:"oneof=native token"`
	Chain       string    `firestore:"chain"        json:"chain"        rule:"required"`
	Amount      string    `firestore:"value"        json:"value"        rule:"decimal"`
	Note        string    `firestore:"note"         json:"note"`
	CliffDays   int       `firestore:"cliff_days"   json:"cliff_days"   rule:"min=0"`
	VestingTime string    `firestore:"vesting_time" json:"vesting_time" rule:"omitempty,hhmm"`
	Destination string    `firestore:"destination"  json:"destination"  rule:"required"`
}

// Identity 返回调度身份，vault 与 asset 共同唯一确定一个归属任务.
func (c *VestingConfig) Identity() string {
	return c.VaultID + "/" + c.Asset
}

// VaultDocument 存储后端中单个 vault 的文档形态，文档 ID 即 vault_id.
type VaultDocument struct {
	VaultID string          `firestore:"-"      json:"-"`
	Tokens  []VestingConfig `firestore:"tokens" json:"tokens"`
}

// Configs 展开文档为配置列表，并为每个条目补上所属 vault_id.
func (d *VaultDocument) Configs() []VestingConfig {
	out := make([]VestingConfig, 0, len(d.Tokens))

	for _, t := range d.Tokens {
		t.VaultID = d.VaultID
		out = append(out, t)
	}

	return out
}
