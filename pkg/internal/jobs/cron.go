// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeisme/vestvault/pkg/configs"
	ctxPkg "github.com/yeisme/vestvault/pkg/context"
	"github.com/yeisme/vestvault/pkg/internal/storage"
	"github.com/yeisme/vestvault/pkg/internal/vesting"
	"github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - daily 模式按参考时区的固定时刻刷新归属配置（默认 14:00）
//   - interval 模式按固定间隔刷新
//
// 归属计划本身不在这里调度，由 vesting 引擎的循环驱动.
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, refresher *vesting.Refresher) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	if refresher == nil {
		return fmt.Errorf("refresher is nil")
	}

	cfg := configs.GetConfig().Refresh

	// 将 storage manager 注入到 context，便于任务内部使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	run := func(ctx context.Context) {
		runConfigRefresh(ctx, refresher)
	}

	switch cfg.Mode {
	case configs.RefreshModeDaily:
		hour, minute, err := vesting.ParseVestTime(cfg.DailyTime)
		if err != nil {
			return fmt.Errorf("invalid refresh daily_time: %w", err)
		}

		// 调度器带参考时区，cron 时刻即该时区的挂钟时间
		return sched.AddCron(JobConfigRefresh, fmt.Sprintf("%d %d * * *", minute, hour), run, baseCtx)
	case configs.RefreshModeInterval:
		return sched.AddEvery(JobConfigRefresh, cfg.Interval, run, baseCtx)
	default:
		return fmt.Errorf("unknown refresh mode: %s", cfg.Mode)
	}
}

// runConfigRefresh 执行一轮配置刷新并记录对账结果.
func runConfigRefresh(ctx context.Context, refresher *vesting.Refresher) {
	l := log.Logger().With().Str("job", JobConfigRefresh).Logger()

	result, err := refresher.Refresh(ctx)
	if err != nil {
		if errors.Is(err, vesting.ErrConfigFetch) {
			l.Error().Err(err).Msg("config fetch failed, schedule left intact")
			return
		}

		l.Error().Err(err).Msg("config refresh failed")

		return
	}

	if result.Skipped {
		l.Debug().Int("total", result.Total).Msg("configs unchanged")
		return
	}

	l.Info().
		Int("added", result.Added).
		Int("removed", result.Removed).
		Int("unchanged", result.Unchanged).
		Int("stale", result.Stale).
		Int("invalid", result.Invalid).
		Msg("config refresh done")
}
