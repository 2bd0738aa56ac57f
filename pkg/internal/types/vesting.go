// Package types 定义运维 API 的请求与响应结构.
package types

import (
	"encoding/json"
	"time"

	"github.com/yeisme/vestvault/pkg/internal/vesting"
)

// VestingJobsResponse 当前调度中的归属计划列表.
type VestingJobsResponse struct {
	Jobs  []vesting.JobView `json:"jobs"`
	Total int               `json:"total"`
}

// PreviewRequest 归属计划试算请求，形态与存储文档的 token 条目一致.
type PreviewRequest struct {
	VaultID     string `json:"vault_id"     rule:"required"`
	Asset       string `json:"asset"        rule:"required"`
	Ecosystem   string `json:"ecosystem"    rule:"oneof=evm"`
	Kind        string `json:"type"         rule:"oneof=native token"`
	Chain       string `json:"chain"        rule:"required"`
	Amount      string `json:"value"        rule:"decimal"`
	Note        string `json:"note"`
	CliffDays   int    `json:"cliff_days"   rule:"min=0"`
	VestingTime string `json:"vesting_time" rule:"omitempty,hhmm"`
	Destination string `json:"destination"  rule:"required"`
}

// PreviewResponse 试算结果：解析后的计划、首次执行时间与将要广播的交易体.
type PreviewResponse struct {
	Identity    string          `json:"identity"`
	Chain       string          `json:"chain"`
	Kind        string          `json:"kind"`
	Decimals    int32           `json:"decimals"`
	Amount      string          `json:"amount"`
	RawValue    string          `json:"raw_value"`
	FirstRun    time.Time       `json:"first_run"`
	Transaction json.RawMessage `json:"transaction"`
}

// RefreshResponse 手动触发一轮配置刷新的结果.
type RefreshResponse struct {
	Result vesting.RefreshResult `json:"result"`
}

// TokenEntry 已登记代币的描述.
type TokenEntry struct {
	Chain    string `json:"chain"`
	Asset    string `json:"asset"`
	Address  string `json:"address"`
	Decimals int32  `json:"decimals"`
}

// TokensResponse 代币登记表.
type TokensResponse struct {
	Tokens []TokenEntry `json:"tokens"`
	Total  int          `json:"total"`
}

// RemoveResponse 手动移除计划的结果.
type RemoveResponse struct {
	Identity string `json:"identity"`
	Removed  bool   `json:"removed"`
}
