// Package context 拓展上下文功能，将日志、存储等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/vestvault/pkg/internal/storage"
	mqc "github.com/yeisme/vestvault/pkg/internal/storage/mq"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
	"github.com/yeisme/vestvault/pkg/internal/storage/store"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetStoreClient 从 context 中获取归属配置存储客户端.
func GetStoreClient(ctx context.Context) *store.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetStoreClient()
	}

	return nil
}

// GetSecretClient 从 context 中获取密钥客户端.
func GetSecretClient(ctx context.Context) *secret.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetSecretClient()
	}

	return nil
}

// GetMQClient 从 context 中获取 MQ 客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		return logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}
