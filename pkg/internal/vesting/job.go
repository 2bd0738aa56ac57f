package vesting

import (
	"time"

	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

// Job 是一个已登记归属计划的运行时状态.
// 所有字段由 Engine 持锁读写，外部只能通过 JobView 快照观察.
type Job struct {
	Config model.VestingConfig
	Plan   executor.TransferPlan
	State  model.JobState

	NextRun      time.Time // UTC
	RegisteredAt time.Time

	LastAttempt       time.Time
	LastError         string
	LastTransactionID string
	Executions        int // 含跳过在内的到期处理次数
}

// JobView 监控与接口层使用的只读快照.
type JobView struct {
	VaultID           string    `json:"vault_id"`
	Asset             string    `json:"asset"`
	Identity          string    `json:"identity"`
	Chain             string    `json:"chain"`
	Kind              string    `json:"kind"`
	Amount            string    `json:"amount"`
	Destination       string    `json:"destination"`
	State             string    `json:"state"`
	NextRun           time.Time `json:"next_run"`
	RegisteredAt      time.Time `json:"registered_at"`
	LastAttempt       time.Time `json:"last_attempt,omitempty"`
	LastError         string    `json:"last_error,omitempty"`
	LastTransactionID string    `json:"last_transaction_id,omitempty"`
	Executions        int       `json:"executions"`
}

// view 生成快照，调用方需持有引擎锁.
func (j *Job) view() JobView {
	return JobView{
		VaultID:           j.Config.VaultID,
		Asset:             j.Config.Asset,
		Identity:          j.Config.Identity(),
		Chain:             j.Plan.Chain,
		Kind:              string(j.Plan.Kind),
		Amount:            j.Plan.Amount.String(),
		Destination:       j.Config.Destination,
		State:             string(j.State),
		NextRun:           j.NextRun,
		RegisteredAt:      j.RegisteredAt,
		LastAttempt:       j.LastAttempt,
		LastError:         j.LastError,
		LastTransactionID: j.LastTransactionID,
		Executions:        j.Executions,
	}
}
