// Package executor 将归属配置解析为封闭的划转方案，并负责构造与广播链上划转交易.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/vestvault/pkg/internal/fordefi"
	nlog "github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/metrics"
	"github.com/yeisme/vestvault/pkg/tracing"
)

// Result 一次划转执行的结果.
type Result struct {
	TransactionID string
	RawValue      string
}

// Broadcaster 提交已构造的交易体.
type Broadcaster interface {
	BroadcastTransaction(ctx context.Context, body []byte) (*fordefi.BroadcastResult, error)
}

// Executor 按方案构造交易并经广播客户端提交.
type Executor struct {
	client Broadcaster
	logger zerolog.Logger
}

// New 创建 Executor.
func New(client Broadcaster) *Executor {
	return &Executor{
		client: client,
		logger: nlog.With("executor"),
	}
}

// Execute 构造并广播一笔划转.
// 金额为零的方案不应到达这里，由调度器负责跳过.
func (e *Executor) Execute(ctx context.Context, plan TransferPlan) (Result, error) {
	ctx, span := tracing.StartSpan(ctx, "vesting.execute",
		trace.WithAttributes(
			attribute.String("vesting.identity", plan.Identity()),
			attribute.String("vesting.chain", plan.Chain),
			attribute.String("vesting.kind", string(plan.Kind)),
		),
	)
	defer span.End()

	body, err := BuildTransaction(plan)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, fmt.Errorf("failed to build transaction (%s): %w", plan.Identity(), err)
	}

	raw := RawValue(plan.Amount, plan.Decimals)
	start := time.Now()

	res, err := e.client.BroadcastTransaction(ctx, body)

	metrics.TransferDuration.WithLabelValues(plan.Config.Asset).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.TransferCounter.WithLabelValues(plan.Config.VaultID, plan.Config.Asset, "failure").Inc()
		span.SetStatus(codes.Error, err.Error())

		return Result{}, err
	}

	metrics.TransferCounter.WithLabelValues(plan.Config.VaultID, plan.Config.Asset, "success").Inc()
	span.SetAttributes(attribute.String("vesting.transaction_id", res.TransactionID))
	span.SetStatus(codes.Ok, "")

	e.logger.Info().
		Str("identity", plan.Identity()).
		Str("transaction_id", res.TransactionID).
		Str("amount", plan.Amount.String()).
		Str("raw_value", raw).
		Str("to", plan.Config.Destination).
		Msg("transfer broadcast")

	return Result{TransactionID: res.TransactionID, RawValue: raw}, nil
}
