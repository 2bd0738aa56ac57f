package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 归属计划领域 --------------------------

// JobRef 标识一个归属计划，identity 为 vault_id 与资产符号的组合.
type JobRef struct {
	VaultID  string `json:"vault_id"`
	Asset    string `json:"asset"`
	Identity string `json:"identity"`
}

// VestingRegisteredPayload 计划进入调度.
type VestingRegisteredPayload struct {
	Job      JobRef    `json:"job"`
	State    string    `json:"state"` // pending_cliff / recurring
	FirstRun time.Time `json:"first_run"`
	Chain    string    `json:"chain,omitempty"`
	Kind     string    `json:"kind,omitempty"` // native / token
}

// VestingRemovedPayload 计划被移出调度.
type VestingRemovedPayload struct {
	Job    JobRef `json:"job"`
	Reason string `json:"reason,omitempty"` // manual / stale
}

// VestingExecutedPayload 划转已签名并成功广播.
type VestingExecutedPayload struct {
	Job         JobRef    `json:"job"`
	ExecutionID string    `json:"execution_id"`
	Amount      string    `json:"amount"`    // 十进制资产金额
	RawValue    string    `json:"raw_value"` // 换算为最小单位后的整数串
	Destination string    `json:"destination"`
	NextRun     time.Time `json:"next_run"`
}

// VestingSkippedPayload 到期但本次执行被跳过.
type VestingSkippedPayload struct {
	Job     JobRef    `json:"job"`
	Reason  string    `json:"reason"` // zero_amount
	NextRun time.Time `json:"next_run"`
}

// VestingFailedPayload 执行失败，计划保持在调度中等待下一周期.
type VestingFailedPayload struct {
	Job         JobRef    `json:"job"`
	ExecutionID string    `json:"execution_id,omitempty"`
	Error       string    `json:"error"`
	NextRun     time.Time `json:"next_run"`
}

// -------------------------- 配置刷新领域 --------------------------

// ConfigsRefreshedPayload 一轮配置刷新对账的结果汇总.
type ConfigsRefreshedPayload struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Stale     int `json:"stale"` // 下游消失但按策略保留的计划数
	Total     int `json:"total"` // 本轮下游返回的配置总数
}
