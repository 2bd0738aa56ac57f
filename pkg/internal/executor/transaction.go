package executor

import (
	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"github.com/yeisme/vestvault/pkg/internal/model"
)

const (
	signerTypeAPI      = "api_signer"
	txTypeEVM          = "evm_transaction"
	detailTypeTransfer = "evm_transfer"
	gasTypePriority    = "priority"
	gasPriorityMedium  = "medium"
	assetTypeEVM       = "evm"
	assetDetailNative  = "native"
	assetDetailERC20   = "erc20"
	valueTypeValue     = "value"
)

// Transaction 交易创建请求体，字段顺序即序列化顺序.
type Transaction struct {
	SignerType string          `json:"signer_type"`
	VaultID    string          `json:"vault_id"`
	Note       string          `json:"note"`
	Type       string          `json:"type"`
	Details    TransferDetails `json:"details"`
}

// TransferDetails EVM 划转明细.
type TransferDetails struct {
	Type            string          `json:"type"`
	Gas             Gas             `json:"gas"`
	To              string          `json:"to"`
	AssetIdentifier AssetIdentifier `json:"asset_identifier"`
	Value           Value           `json:"value"`
}

// Gas 费用策略，统一使用平台估算的中等优先级.
type Gas struct {
	Type          string `json:"type"`
	PriorityLevel string `json:"priority_level"`
}

// AssetIdentifier 资产标识.
type AssetIdentifier struct {
	Type    string       `json:"type"`
	Details AssetDetails `json:"details"`
}

// AssetDetails 原生资产带 chain，ERC-20 带 token，两者互斥.
type AssetDetails struct {
	Type  string    `json:"type"`
	Chain string    `json:"chain,omitempty"`
	Token *TokenRef `json:"token,omitempty"`
}

// TokenRef ERC-20 合约引用.
type TokenRef struct {
	Chain   string `json:"chain"`
	HexRepr string `json:"hex_repr"`
}

// Value 划转数量，value 为最小单位整数串.
type Value struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// RawValue 将十进制金额换算为最小单位的整数串，多余的小数位向零截断.
func RawValue(amount decimal.Decimal, decimals int32) string {
	return amount.Shift(decimals).Truncate(0).String()
}

// BuildTransaction 按划转方案构造交易请求体 JSON.
func BuildTransaction(plan TransferPlan) ([]byte, error) {
	tx := Transaction{
		SignerType: signerTypeAPI,
		VaultID:    plan.Config.VaultID,
		Note:       plan.Config.Note,
		Type:       txTypeEVM,
		Details: TransferDetails{
			Type: detailTypeTransfer,
			Gas: Gas{
				Type:          gasTypePriority,
				PriorityLevel: gasPriorityMedium,
			},
			To:    plan.Config.Destination,
			Value: Value{Type: valueTypeValue, Value: RawValue(plan.Amount, plan.Decimals)},
		},
	}

	switch plan.Kind {
	case model.KindToken:
		tx.Details.AssetIdentifier = AssetIdentifier{
			Type: assetTypeEVM,
			Details: AssetDetails{
				Type:  assetDetailERC20,
				Token: &TokenRef{Chain: plan.Chain, HexRepr: plan.Token.Address},
			},
		}
	default:
		tx.Details.AssetIdentifier = AssetIdentifier{
			Type: assetTypeEVM,
			Details: AssetDetails{
				Type:  assetDetailNative,
				Chain: plan.Chain,
			},
		}
	}

	return sonic.Marshal(tx)
}
