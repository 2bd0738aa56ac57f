package queue_test

import (
	"testing"
	"time"

	"github.com/yeisme/vestvault/pkg/queue"
)

// TestNewWatermillMessage 测试消息封装的元数据与负载的编解码往返.
func TestNewWatermillMessage(t *testing.T) {
	payload := queue.VestingExecutedPayload{
		Job: queue.JobRef{
			VaultID:  "vault-1",
			Asset:    "usdt",
			Identity: "vault-1/usdt",
		},
		ExecutionID: "01J9ZD8V4N0000000000000000",
		Amount:      "12.5",
		RawValue:    "12500000",
		Destination: "0x1111111111111111111111111111111111111111",
		NextRun:     time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
	}

	msg, err := queue.NewWatermillMessage(
		queue.TopicVestingExecuted, payload,
		queue.WithTraceID("trace-xyz"),
		queue.WithProducer("vestvault"),
	)
	if err != nil {
		t.Fatalf("NewWatermillMessage failed: %v", err)
	}

	if msg.UUID == "" {
		t.Error("Expected message UUID to be set")
	}

	if got := msg.Metadata.Get("topic"); got != queue.TopicVestingExecuted {
		t.Errorf("Expected topic metadata %q, got %q", queue.TopicVestingExecuted, got)
	}

	if got := msg.Metadata.Get("trace_id"); got != "trace-xyz" {
		t.Errorf("Expected trace_id metadata %q, got %q", "trace-xyz", got)
	}

	if got := msg.Metadata.Get("producer"); got != "vestvault" {
		t.Errorf("Expected producer metadata %q, got %q", "vestvault", got)
	}

	if got := msg.Metadata.Get("version"); got != queue.PayloadVersionV1 {
		t.Errorf("Expected version metadata %q, got %q", queue.PayloadVersionV1, got)
	}

	env, err := queue.ParseWatermillMessage[queue.VestingExecutedPayload](msg)
	if err != nil {
		t.Fatalf("ParseWatermillMessage failed: %v", err)
	}

	if env.Header.Topic != queue.TopicVestingExecuted {
		t.Errorf("Expected header topic %q, got %q", queue.TopicVestingExecuted, env.Header.Topic)
	}

	if env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("Expected header version %q, got %q", queue.PayloadVersionV1, env.Header.Version)
	}

	if env.Header.OccurredAt.IsZero() {
		t.Error("Expected occurred_at to be set")
	}

	if env.Payload.Job != payload.Job {
		t.Errorf("Expected job %+v, got %+v", payload.Job, env.Payload.Job)
	}

	if env.Payload.ExecutionID != payload.ExecutionID {
		t.Errorf("Expected execution_id %q, got %q", payload.ExecutionID, env.Payload.ExecutionID)
	}

	if env.Payload.RawValue != payload.RawValue {
		t.Errorf("Expected raw_value %q, got %q", payload.RawValue, env.Payload.RawValue)
	}

	if !env.Payload.NextRun.Equal(payload.NextRun) {
		t.Errorf("Expected next_run %v, got %v", payload.NextRun, env.Payload.NextRun)
	}
}

// TestNewEventHeaderDefaults 测试事件头默认值.
func TestNewEventHeaderDefaults(t *testing.T) {
	hdr := queue.NewEventHeader(queue.TopicConfigsRefreshed)

	if hdr.Topic != queue.TopicConfigsRefreshed {
		t.Errorf("Expected topic %q, got %q", queue.TopicConfigsRefreshed, hdr.Topic)
	}

	if hdr.Version != queue.PayloadVersionV1 {
		t.Errorf("Expected version %q, got %q", queue.PayloadVersionV1, hdr.Version)
	}

	if hdr.OccurredAt.Location() != time.UTC {
		t.Error("Expected occurred_at in UTC")
	}

	if hdr.TraceID != "" || hdr.Producer != "" {
		t.Errorf("Expected empty trace_id and producer, got %q / %q", hdr.TraceID, hdr.Producer)
	}
}
