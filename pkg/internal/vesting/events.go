package vesting

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/yeisme/vestvault/pkg/configs"
	nlog "github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/queue"
)

// EventPublisher 按配置开关把调度事件发布到消息队列.
// 发布失败只记录日志，绝不影响执行路径；nil 接收者与 nil publisher 都是安全的.
type EventPublisher struct {
	pub    message.Publisher
	cfg    configs.EventsConfig
	logger zerolog.Logger
}

// NewEventPublisher 创建事件发布器，pub 为 nil 时所有发布都是空操作.
func NewEventPublisher(pub message.Publisher, cfg configs.EventsConfig) *EventPublisher {
	return &EventPublisher{
		pub:    pub,
		cfg:    cfg,
		logger: nlog.With("events"),
	}
}

// enabled 对 nil 接收者安全，调用方必须先短路它再读 p.cfg.
func (p *EventPublisher) enabled() bool {
	return p != nil && p.pub != nil && p.cfg.Enabled
}

func (p *EventPublisher) logPublishError(err error, topic, identity string) {
	p.logger.Warn().Err(err).Str("topic", topic).Str("identity", identity).Msg("failed to publish event")
}

func jobRef(v JobView) queue.JobRef {
	return queue.JobRef{VaultID: v.VaultID, Asset: v.Asset, Identity: v.Identity}
}

// Registered 计划进入调度.
func (p *EventPublisher) Registered(v JobView) {
	if !p.enabled() || !p.cfg.Vesting.Registered {
		return
	}

	payload := queue.VestingRegisteredPayload{
		Job:      jobRef(v),
		State:    v.State,
		FirstRun: v.NextRun,
		Chain:    v.Chain,
		Kind:     v.Kind,
	}
	if err := queue.PublishVestingRegistered(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicVestingRegistered, v.Identity)
	}
}

// Removed 计划被移出调度.
func (p *EventPublisher) Removed(v JobView, reason string) {
	if !p.enabled() || !p.cfg.Vesting.Removed {
		return
	}

	payload := queue.VestingRemovedPayload{Job: jobRef(v), Reason: reason}
	if err := queue.PublishVestingRemoved(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicVestingRemoved, v.Identity)
	}
}

// Executed 划转广播成功.
func (p *EventPublisher) Executed(v JobView, executionID, rawValue string) {
	if !p.enabled() || !p.cfg.Vesting.Executed {
		return
	}

	payload := queue.VestingExecutedPayload{
		Job:         jobRef(v),
		ExecutionID: executionID,
		Amount:      v.Amount,
		RawValue:    rawValue,
		Destination: v.Destination,
		NextRun:     v.NextRun,
	}
	if err := queue.PublishVestingExecuted(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicVestingExecuted, v.Identity)
	}
}

// Skipped 到期但本次被跳过.
func (p *EventPublisher) Skipped(v JobView, reason string) {
	if !p.enabled() || !p.cfg.Vesting.Skipped {
		return
	}

	payload := queue.VestingSkippedPayload{Job: jobRef(v), Reason: reason, NextRun: v.NextRun}
	if err := queue.PublishVestingSkipped(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicVestingSkipped, v.Identity)
	}
}

// Failed 执行失败.
func (p *EventPublisher) Failed(v JobView, executionID, errMsg string) {
	if !p.enabled() || !p.cfg.Vesting.Failed {
		return
	}

	payload := queue.VestingFailedPayload{
		Job:         jobRef(v),
		ExecutionID: executionID,
		Error:       errMsg,
		NextRun:     v.NextRun,
	}
	if err := queue.PublishVestingFailed(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicVestingFailed, v.Identity)
	}
}

// Refreshed 一轮配置刷新完成.
func (p *EventPublisher) Refreshed(r RefreshResult) {
	if !p.enabled() || !p.cfg.Vesting.Refreshed {
		return
	}

	payload := queue.ConfigsRefreshedPayload{
		Added:     r.Added,
		Removed:   r.Removed,
		Unchanged: r.Unchanged,
		Stale:     r.Stale,
		Total:     r.Total,
	}
	if err := queue.PublishConfigsRefreshed(p.pub, payload, queue.WithProducer(configs.AppName)); err != nil {
		p.logPublishError(err, queue.TopicConfigsRefreshed, "")
	}
}
