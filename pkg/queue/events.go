package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishVestingRegistered 发布 vv.vesting.registered 事件。
// 计划首次进入调度或刷新后新增时发布，通知下游审计与监控系统。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishVestingRegistered(pub message.Publisher, payload VestingRegisteredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVestingRegistered, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVestingRegistered, msg)
}

// ParseVestingRegistered 将 Watermill 消息解析为强类型 Envelope（VestingRegisteredPayload）。
func ParseVestingRegistered(msg *message.Message) (Message[VestingRegisteredPayload], error) {
	return ParseWatermillMessage[VestingRegisteredPayload](msg)
}

// PublishVestingRemoved 发布 vv.vesting.removed 事件。
func PublishVestingRemoved(pub message.Publisher, payload VestingRemovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVestingRemoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVestingRemoved, msg)
}

// ParseVestingRemoved 将 Watermill 消息解析为强类型 Envelope（VestingRemovedPayload）。
func ParseVestingRemoved(msg *message.Message) (Message[VestingRemovedPayload], error) {
	return ParseWatermillMessage[VestingRemovedPayload](msg)
}

// PublishVestingExecuted 发布 vv.vesting.executed 事件。
// 划转签名并广播成功后发布，execution_id 可作为消费端幂等键。
func PublishVestingExecuted(pub message.Publisher, payload VestingExecutedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVestingExecuted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVestingExecuted, msg)
}

// ParseVestingExecuted 将 Watermill 消息解析为强类型 Envelope（VestingExecutedPayload）。
func ParseVestingExecuted(msg *message.Message) (Message[VestingExecutedPayload], error) {
	return ParseWatermillMessage[VestingExecutedPayload](msg)
}

// PublishVestingSkipped 发布 vv.vesting.skipped 事件。
func PublishVestingSkipped(pub message.Publisher, payload VestingSkippedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVestingSkipped, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVestingSkipped, msg)
}

// ParseVestingSkipped 将 Watermill 消息解析为强类型 Envelope（VestingSkippedPayload）。
func ParseVestingSkipped(msg *message.Message) (Message[VestingSkippedPayload], error) {
	return ParseWatermillMessage[VestingSkippedPayload](msg)
}

// PublishVestingFailed 发布 vv.vesting.failed 事件。
// 执行失败不触发重试，事件保留失败原因与下一次执行时间供告警使用。
func PublishVestingFailed(pub message.Publisher, payload VestingFailedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVestingFailed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVestingFailed, msg)
}

// ParseVestingFailed 将 Watermill 消息解析为强类型 Envelope（VestingFailedPayload）。
func ParseVestingFailed(msg *message.Message) (Message[VestingFailedPayload], error) {
	return ParseWatermillMessage[VestingFailedPayload](msg)
}

// PublishConfigsRefreshed 发布 vv.configs.refreshed 事件。
func PublishConfigsRefreshed(pub message.Publisher, payload ConfigsRefreshedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicConfigsRefreshed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicConfigsRefreshed, msg)
}

// ParseConfigsRefreshed 将 Watermill 消息解析为强类型 Envelope（ConfigsRefreshedPayload）。
func ParseConfigsRefreshed(msg *message.Message) (Message[ConfigsRefreshedPayload], error) {
	return ParseWatermillMessage[ConfigsRefreshedPayload](msg)
}
