// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：vv.<域>.<动作/结果>，尽量稳定且向后兼容.
// 域：vesting(归属计划执行)、configs(配置刷新)
// 结果：registered/removed/executed/skipped/failed/refreshed

const (
	// 计划生命周期.
	TopicVestingRegistered = "vv.vesting.registered" // 计划进入调度（含首轮和刷新新增）
	TopicVestingRemoved    = "vv.vesting.removed"    // 计划被移出调度（手动或刷新摘除）

	// 执行结果.
	TopicVestingExecuted = "vv.vesting.executed" // 划转已签名并广播成功
	TopicVestingSkipped  = "vv.vesting.skipped"  // 到期但被跳过（如金额为零）
	TopicVestingFailed   = "vv.vesting.failed"   // 构造、签名或广播失败

	// 配置刷新.
	TopicConfigsRefreshed = "vv.configs.refreshed" // 一轮配置刷新对账完成
)
