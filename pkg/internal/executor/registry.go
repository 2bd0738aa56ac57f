package executor

import (
	"sort"
	"strings"
)

// DefaultNativeDecimals EVM 原生资产的最小单位精度（wei）.
const DefaultNativeDecimals = 18

// TokenInfo 描述某条链上一种 ERC-20 代币的合约地址与精度.
type TokenInfo struct {
	Address  string `json:"address"`
	Decimals int32  `json:"decimals"`
}

// tokenRegistry 链 -> 资产符号 -> 代币信息，键统一小写.
// 未登记的 (链, 资产) 组合在解析阶段即被拒绝，不会带病进入调度.
var tokenRegistry = map[string]map[string]TokenInfo{
	"bsc": {
		"usdt": {Address: "0x55d398326f99059fF775485246999027B3197955", Decimals: 18},
	},
	"ethereum": {
		"usdt":    {Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
		"pepe":    {Address: "0x6982508145454Ce325dDbE47a25d4ec3d2311933", Decimals: 18},
		"basedai": {Address: "0x44971ABF0251958492FeE97dA3e5C5adA88B9185", Decimals: 18},
	},
}

// LookupToken 查询链上资产的代币信息.
func LookupToken(chain, asset string) (TokenInfo, bool) {
	tokens, ok := tokenRegistry[strings.ToLower(chain)]
	if !ok {
		return TokenInfo{}, false
	}

	info, ok := tokens[strings.ToLower(asset)]

	return info, ok
}

// RegisteredToken 注册表中的一条代币记录，用于运维查询接口.
type RegisteredToken struct {
	Chain string `json:"chain"`
	Asset string `json:"asset"`
	TokenInfo
}

// ListRegisteredTokens 返回注册表快照，按链与资产排序.
func ListRegisteredTokens() []RegisteredToken {
	out := make([]RegisteredToken, 0, 8)

	for chain, tokens := range tokenRegistry {
		for asset, info := range tokens {
			out = append(out, RegisteredToken{Chain: chain, Asset: asset, TokenInfo: info})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Chain != out[j].Chain {
			return out[i].Chain < out[j].Chain
		}

		return out[i].Asset < out[j].Asset
	})

	return out
}
