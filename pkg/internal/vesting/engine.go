// Package vesting 实现归属计划的登记、计时与执行调度.
//
// 每个 (vault, asset) 配置对应一个计划：等待悬崖期结束后，每 24 小时
// 提交一笔固定数量的划转. 引擎以单一 ticker 循环驱动，单轮内同一计划
// 至多执行一次；执行失败不重试，下一周期照常尝试，计划之间互不影响.
package vesting

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/model"
	nlog "github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/metrics"
)

// TransferExecutor 执行一笔已解析好的划转.
type TransferExecutor interface {
	Execute(ctx context.Context, plan executor.TransferPlan) (executor.Result, error)
}

// EngineConfig 调度引擎参数.
type EngineConfig struct {
	Tick          time.Duration  // 主循环间隔，上限一分钟
	Location      *time.Location // 计算每日时刻用的参考时区
	DispatchLimit int            // 单轮并发执行上限
	Clock         func() time.Time
}

// Engine 持有全部计划并驱动到期执行.
type Engine struct {
	tick          time.Duration
	loc           *time.Location
	dispatchLimit int
	clock         func() time.Time
	exec          TransferExecutor
	events        *EventPublisher
	logger        zerolog.Logger

	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewEngine 创建引擎，零值参数回落到默认配置.
func NewEngine(cfg EngineConfig, exec TransferExecutor, events *EventPublisher) *Engine {
	if cfg.Tick <= 0 {
		cfg.Tick = configs.DefaultSchedulerTick
	}
	if cfg.Tick > time.Minute {
		cfg.Tick = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DispatchLimit <= 0 {
		cfg.DispatchLimit = configs.DefaultDispatchLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Engine{
		tick:          cfg.Tick,
		loc:           cfg.Location,
		dispatchLimit: cfg.DispatchLimit,
		clock:         cfg.Clock,
		exec:          exec,
		events:        events,
		logger:        nlog.With("vesting"),
		jobs:          make(map[string]*Job),
	}
}

// EngineFromConfig 按全局配置构造引擎.
func EngineFromConfig(cfg *configs.AppConfig, exec TransferExecutor, events *EventPublisher) *Engine {
	return NewEngine(EngineConfig{
		Tick:          cfg.Scheduler.GetTickInterval(),
		Location:      cfg.Scheduler.GetLocation(),
		DispatchLimit: cfg.Scheduler.DispatchLimit,
	}, exec, events)
}

// Register 登记一个归属计划.
//
// 配置在这里解析为封闭的划转方案，解析失败立即拒绝.
// identity 已在调度中时不做任何改动（幂等，绝不重置执行中的计划），
// 返回 added=false.
func (e *Engine) Register(cfg model.VestingConfig) (bool, error) {
	plan, err := executor.Resolve(cfg)
	if err != nil {
		return false, err
	}

	now := e.clock()

	firstRun, err := ComputeFirstRun(now, cfg.CliffDays, cfg.VestingTime, e.loc)
	if err != nil {
		return false, err
	}

	identity := cfg.Identity()

	e.mu.Lock()

	if _, exists := e.jobs[identity]; exists {
		e.mu.Unlock()
		return false, nil
	}

	job := &Job{
		Config:       cfg,
		Plan:         plan,
		State:        model.StatePendingCliff,
		NextRun:      firstRun,
		RegisteredAt: now.UTC(),
	}
	e.jobs[identity] = job
	view := job.view()

	e.updateGaugesLocked()
	e.mu.Unlock()

	e.logger.Info().
		Str("identity", identity).
		Time("first_run", firstRun).
		Int("cliff_days", cfg.CliffDays).
		Str("vesting_time", cfg.VestingTime).
		Msg("vesting job registered")

	e.events.Registered(view)

	return true, nil
}

// Remove 将计划移出调度，返回其是否存在. 已进入执行的那一次不会被打断.
func (e *Engine) Remove(identity, reason string) bool {
	e.mu.Lock()

	job, exists := e.jobs[identity]
	if !exists {
		e.mu.Unlock()
		return false
	}

	delete(e.jobs, identity)
	view := job.view()

	e.updateGaugesLocked()
	e.mu.Unlock()

	e.logger.Info().Str("identity", identity).Str("reason", reason).Msg("vesting job removed")
	e.events.Removed(view, reason)

	return true
}

// Identities 返回当前登记的计划标识集合，刷新对账使用.
func (e *Engine) Identities() map[string]struct{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]struct{}, len(e.jobs))
	for identity := range e.jobs {
		out[identity] = struct{}{}
	}

	return out
}

// Jobs 返回按 identity 排序的计划快照.
func (e *Engine) Jobs() []JobView {
	e.mu.RLock()

	out := make([]JobView, 0, len(e.jobs))
	for _, job := range e.jobs {
		out = append(out, job.view())
	}

	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })

	return out
}

// Job 返回单个计划快照.
func (e *Engine) Job(identity string) (JobView, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	job, exists := e.jobs[identity]
	if !exists {
		return JobView{}, false
	}

	return job.view(), true
}

// Run 启动主循环直到 ctx 结束. 返回前会等待当前一轮的执行全部结束，
// 不会留下推进到一半的计划.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	e.logger.Info().
		Dur("tick", e.tick).
		Str("timezone", e.loc.String()).
		Int("dispatch_limit", e.dispatchLimit).
		Msg("vesting engine started")

	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("vesting engine stopped")
			return ctx.Err()
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// dueJob 一次到期执行的快照，推进 next_run 后在锁外执行.
type dueJob struct {
	job  *Job
	plan executor.TransferPlan
	view JobView
}

// Tick 处理一轮到期计划.
//
// 到期判定与 next_run 推进在持锁状态下一次完成：错过多个周期时逐周期
// 追赶到未来，但执行仍只发生一次. 随后在锁外并发执行本轮批次，
// 全部结束后才返回，保证两轮 tick 不会交叠同一计划.
func (e *Engine) Tick(ctx context.Context) {
	now := e.clock()

	metrics.SchedulerTicks.Inc()

	e.mu.Lock()

	batch := make([]dueJob, 0)

	for _, job := range e.jobs {
		if job.NextRun.After(now) {
			continue
		}

		next := NextAfter(job.NextRun)
		for !next.After(now) {
			// 追赶：停机或长时间阻塞后跳过整段错过的周期
			next = NextAfter(next)
		}

		job.NextRun = next
		batch = append(batch, dueJob{job: job, plan: job.Plan, view: job.view()})
	}

	e.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(e.dispatchLimit)

	for _, d := range batch {
		g.Go(func() error {
			// 单个计划的失败在 runJob 内部消化，不影响同轮其它计划
			e.runJob(ctx, d)
			return nil
		})
	}

	_ = g.Wait()
}

// runJob 处理单个到期计划：零额只记录跳过，否则执行划转.
// 失败不重试，原因保留在计划状态里，等待下一周期.
func (e *Engine) runJob(ctx context.Context, d dueJob) {
	executionID := newExecutionID(e.clock())

	logger := e.logger.With().
		Str("identity", d.view.Identity).
		Str("execution_id", executionID).
		Logger()

	if d.plan.IsZero() {
		logger.Info().Msg("zero amount, skipping transfer")

		metrics.TransferCounter.WithLabelValues(d.plan.Config.VaultID, d.plan.Config.Asset, "skipped").Inc()

		view := e.completeRun(d.job, "", "")
		e.events.Skipped(view, "zero_amount")

		return
	}

	res, err := e.exec.Execute(ctx, d.plan)
	if err != nil {
		logger.Error().Err(err).Msg("transfer execution failed")

		view := e.completeRun(d.job, "", err.Error())
		e.events.Failed(view, executionID, err.Error())

		return
	}

	logger.Info().
		Str("transaction_id", res.TransactionID).
		Str("raw_value", res.RawValue).
		Msg("transfer executed")

	view := e.completeRun(d.job, res.TransactionID, "")
	e.events.Executed(view, executionID, res.RawValue)
}

// completeRun 记录一次到期处理的结果并完成状态迁移：
// 首次处理后计划进入 recurring，无论成功、失败还是跳过.
func (e *Engine) completeRun(job *Job, txID, errMsg string) JobView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if job.State == model.StatePendingCliff {
		job.State = model.StateRecurring
		e.updateGaugesLocked()
	}

	job.LastAttempt = e.clock().UTC()
	job.LastError = errMsg
	job.Executions++

	if txID != "" {
		job.LastTransactionID = txID
	}

	return job.view()
}

// updateGaugesLocked 重算状态分布指标，调用方需持有写锁.
func (e *Engine) updateGaugesLocked() {
	var pending, recurring float64

	for _, job := range e.jobs {
		switch job.State {
		case model.StatePendingCliff:
			pending++
		case model.StateRecurring:
			recurring++
		}
	}

	metrics.JobsGauge.WithLabelValues(string(model.StatePendingCliff)).Set(pending)
	metrics.JobsGauge.WithLabelValues(string(model.StateRecurring)).Set(recurring)
}

// newExecutionID 生成单次执行的标识，ULID 按时间有序便于日志检索.
func newExecutionID(t time.Time) string {
	id, err := ulid.New(ulid.Timestamp(t), rand.Reader)
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
