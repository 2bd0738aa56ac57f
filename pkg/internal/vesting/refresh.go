package vesting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
	nlog "github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/metrics"
	"github.com/yeisme/vestvault/pkg/rule"
	"github.com/yeisme/vestvault/pkg/tracing"
)

// ErrConfigFetch 表示从存储拉取配置失败，本轮刷新终止，调度保持原样.
var ErrConfigFetch = errors.New("config fetch failed")

// Fetcher 拉取全量归属配置文档，store.Client 即满足该接口.
type Fetcher interface {
	List(ctx context.Context) ([]model.VaultDocument, error)
}

// RefreshResult 一轮刷新的对账汇总.
type RefreshResult struct {
	Added     int  `json:"added"`     // 新登记的计划
	Removed   int  `json:"removed"`   // 按 remove_stale 策略移除的计划
	Unchanged int  `json:"unchanged"` // 已在调度中、保持原样的计划
	Stale     int  `json:"stale"`     // 下游已消失但保留在调度中的计划
	Invalid   int  `json:"invalid"`   // 校验或解析失败被跳过的条目
	Total     int  `json:"total"`     // 本轮下游返回的有效条目数
	Skipped   bool `json:"skipped"`   // 内容与上一轮一致，未做对账
}

// Refresher 周期性地把存储中的配置对账进调度引擎.
//
// 拉取发生在调度 tick 之外，对账只在两次 tick 之间改动计划集合：
// 新配置登记、已有配置保持不动、消失的配置按策略移除或保留.
type Refresher struct {
	engine      *Engine
	fetcher     Fetcher
	removeStale bool
	events      *EventPublisher
	logger      zerolog.Logger

	mu              sync.Mutex
	lastFingerprint uint64
	hasFingerprint  bool
}

// NewRefresher 创建配置刷新器.
func NewRefresher(engine *Engine, fetcher Fetcher, cfg configs.RefreshConfig, events *EventPublisher) *Refresher {
	return &Refresher{
		engine:      engine,
		fetcher:     fetcher,
		removeStale: cfg.RemoveStale,
		events:      events,
		logger:      nlog.With("refresh"),
	}
}

// Refresh 执行一轮拉取与对账. 拉取失败返回 ErrConfigFetch 且不触碰
// 任何已登记计划；内容与上一轮完全一致且全部身份仍在调度中时跳过对账.
func (r *Refresher) Refresh(ctx context.Context) (RefreshResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracing.StartSpan(ctx, "configs.refresh")
	defer span.End()

	docs, err := r.fetcher.List(ctx)
	if err != nil {
		metrics.RefreshCounter.WithLabelValues("error").Inc()
		span.SetStatus(codes.Error, err.Error())

		return RefreshResult{}, fmt.Errorf("%w: %w", ErrConfigFetch, err)
	}

	ordered, incoming, invalid := r.collect(docs)

	result := RefreshResult{Total: len(ordered), Invalid: invalid}

	known := r.engine.Identities()

	// 内容未变化只有在全部身份仍在调度中时才可跳过：
	// 运维删除过计划后，即便下游内容一致也要重新对账登记.
	fp := fingerprint(ordered, incoming)
	if r.hasFingerprint && fp == r.lastFingerprint && covered(ordered, known) {
		metrics.RefreshCounter.WithLabelValues("unchanged").Inc()
		r.logger.Debug().Int("total", result.Total).Msg("configs unchanged, reconcile skipped")

		result.Skipped = true

		return result, nil
	}

	for _, identity := range ordered {
		if _, exists := known[identity]; exists {
			result.Unchanged++
			continue
		}

		added, err := r.engine.Register(incoming[identity])
		if err != nil {
			// 单个条目不可用不阻塞其余条目的登记
			result.Invalid++
			r.logger.Warn().Err(err).Str("identity", identity).Msg("config rejected, skipping entry")

			continue
		}

		if added {
			result.Added++
		}
	}

	for identity := range known {
		if _, exists := incoming[identity]; exists {
			continue
		}

		if r.removeStale {
			if r.engine.Remove(identity, "stale") {
				result.Removed++
			}

			continue
		}

		result.Stale++
	}

	if result.Stale > 0 {
		r.logger.Info().Int("stale", result.Stale).Msg("stale jobs kept running, remove_stale disabled")
	}

	r.lastFingerprint = fp
	r.hasFingerprint = true

	metrics.RefreshCounter.WithLabelValues("ok").Inc()
	span.SetAttributes(
		attribute.Int("refresh.added", result.Added),
		attribute.Int("refresh.removed", result.Removed),
		attribute.Int("refresh.total", result.Total),
	)

	r.logger.Info().
		Int("added", result.Added).
		Int("removed", result.Removed).
		Int("unchanged", result.Unchanged).
		Int("stale", result.Stale).
		Int("invalid", result.Invalid).
		Int("total", result.Total).
		Msg("config refresh completed")

	r.events.Refreshed(result)

	return result, nil
}

// collect 展开文档为配置集合，过滤掉校验失败与重复身份的条目.
// 返回的 ordered 保持文档展开顺序，对账结果因此可预期.
func (r *Refresher) collect(docs []model.VaultDocument) ([]string, map[string]model.VestingConfig, int) {
	ordered := make([]string, 0)
	incoming := make(map[string]model.VestingConfig)
	invalid := 0

	for _, doc := range docs {
		for _, cfg := range doc.Configs() {
			if err := rule.ValidateStruct(cfg); err != nil {
				invalid++
				r.logger.Warn().Err(err).
					Str("vault_id", cfg.VaultID).
					Str("asset", cfg.Asset).
					Msg("invalid config entry, skipping")

				continue
			}

			identity := cfg.Identity()

			if _, dup := incoming[identity]; dup {
				// 同一身份出现多次时保留第一条
				r.logger.Warn().Str("identity", identity).Msg("duplicate config entry, keeping first")
				continue
			}

			ordered = append(ordered, identity)
			incoming[identity] = cfg
		}
	}

	return ordered, incoming, invalid
}

// covered 判断本轮全部身份是否都已登记在调度中.
func covered(ordered []string, known map[string]struct{}) bool {
	for _, identity := range ordered {
		if _, ok := known[identity]; !ok {
			return false
		}
	}

	return true
}

// fingerprint 对本轮配置内容做稳定哈希，身份排序后逐条拼接，
// 用于跳过内容未变化的对账.
func fingerprint(ordered []string, incoming map[string]model.VestingConfig) uint64 {
	ids := make([]string, len(ordered))
	copy(ids, ordered)
	sort.Strings(ids)

	h := xxhash.New()

	for _, id := range ids {
		_, _ = h.WriteString(id)
		_, _ = h.Write([]byte{0})

		if raw, err := sonic.Marshal(incoming[id]); err == nil {
			_, _ = h.Write(raw)
		}

		_, _ = h.Write([]byte{0})
	}

	return h.Sum64()
}
