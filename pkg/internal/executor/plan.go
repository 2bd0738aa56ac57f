package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeisme/vestvault/pkg/internal/model"
)

// ErrUnsupportedConfig 配置无法解析为可执行的划转方案.
var ErrUnsupportedConfig = errors.New("unsupported vesting config")

// TransferPlan 是配置注册时一次性解析出的划转方案.
// Kind 只会是 native 或 token，token 方案必定携带注册表中的合约信息，
// 解析之后执行路径上不再有资产类型分支回退.
type TransferPlan struct {
	Config   model.VestingConfig
	Chain    string // 平台链标识，evm_<chain>_mainnet
	Kind     model.AssetKind
	Token    TokenInfo // Kind == token 时有效
	Decimals int32
	Amount   decimal.Decimal
}

// Identity 返回方案对应计划的标识.
func (p TransferPlan) Identity() string { return p.Config.Identity() }

// IsZero 金额为零的方案不提交划转.
func (p TransferPlan) IsZero() bool { return p.Amount.IsZero() }

// ChainIdentifier 构造平台链标识.
func ChainIdentifier(chain string) string {
	return "evm_" + strings.ToLower(chain) + "_mainnet"
}

// Resolve 将归属配置解析为封闭的划转方案.
// 不支持的生态、未登记的代币与非法金额在这里立即拒绝，
// 保证进入调度的每个计划都能构造出合法交易.
func Resolve(cfg model.VestingConfig) (TransferPlan, error) {
	if cfg.Ecosystem != model.EcosystemEVM {
		return TransferPlan{}, fmt.Errorf("%w: ecosystem %q (%s)", ErrUnsupportedConfig, cfg.Ecosystem, cfg.Identity())
	}

	amount, err := decimal.NewFromString(cfg.Amount)
	if err != nil {
		return TransferPlan{}, fmt.Errorf("%w: amount %q (%s)", ErrUnsupportedConfig, cfg.Amount, cfg.Identity())
	}

	if amount.IsNegative() {
		return TransferPlan{}, fmt.Errorf("%w: negative amount %q (%s)", ErrUnsupportedConfig, cfg.Amount, cfg.Identity())
	}

	plan := TransferPlan{
		Config: cfg,
		Chain:  ChainIdentifier(cfg.Chain),
		Amount: amount,
	}

	switch cfg.Kind {
	case model.KindNative:
		plan.Kind = model.KindNative
		plan.Decimals = DefaultNativeDecimals
	case model.KindToken:
		info, ok := LookupToken(cfg.Chain, cfg.Asset)
		if !ok {
			return TransferPlan{}, fmt.Errorf("%w: no token registered for %s/%s (%s)",
				ErrUnsupportedConfig, cfg.Chain, cfg.Asset, cfg.Identity())
		}

		plan.Kind = model.KindToken
		plan.Token = info
		plan.Decimals = info.Decimals
	default:
		return TransferPlan{}, fmt.Errorf("%w: kind %q (%s)", ErrUnsupportedConfig, cfg.Kind, cfg.Identity())
	}

	return plan, nil
}
