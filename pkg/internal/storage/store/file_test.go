package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
	"github.com/yeisme/vestvault/pkg/internal/storage/store"
)

// newFileStore 创建指向临时目录的文件存储.
func newFileStore(t *testing.T) store.Store {
	t.Helper()

	cfg := &configs.AppConfig{}
	cfg.Store.File.Path = filepath.Join(t.TempDir(), "vesting_configs.json")

	s, err := store.NewStore(context.Background(), configs.StoreTypeFile, cfg)
	if err != nil {
		t.Fatalf("create file store: %v", err)
	}

	return s
}

// TestRegisteredStoreTypes 测试所有后端工厂均已注册.
func TestRegisteredStoreTypes(t *testing.T) {
	registered := map[configs.StoreType]bool{}
	for _, st := range store.GetRegisteredStoreTypes() {
		registered[st] = true
	}

	for _, want := range []configs.StoreType{
		configs.StoreTypeFile,
		configs.StoreTypeFirestore,
		configs.StoreTypeRedis,
		configs.StoreTypeDB,
		configs.StoreTypeS3,
		configs.StoreTypeNATS,
	} {
		if !registered[want] {
			t.Errorf("store type %s not registered", want)
		}
	}
}

// TestNewStoreUnsupportedType 测试未注册类型返回错误.
func TestNewStoreUnsupportedType(t *testing.T) {
	_, err := store.NewStore(context.Background(), configs.StoreType("carrier-pigeon"), &configs.AppConfig{})
	if err == nil {
		t.Error("Expected error for unsupported store type, got nil")
	}
}

// TestFileStoreEmpty 测试文件不存在时视为空集合.
func TestFileStoreEmpty(t *testing.T) {
	s := newFileStore(t)
	defer func() { _ = s.Close() }()

	docs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}

	if len(docs) != 0 {
		t.Errorf("Expected empty list, got %d docs", len(docs))
	}

	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("Expected healthy empty store, got %v", err)
	}
}

// TestFileStoreRoundTrip 测试写入、读取、列举、删除的完整流程.
func TestFileStoreRoundTrip(t *testing.T) {
	s := newFileStore(t)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	doc := &model.VaultDocument{
		VaultID: "vault-1",
		Tokens: []model.VestingConfig{
			{
				Asset:       "eth",
				Ecosystem:   model.EcosystemEVM,
				Kind:        model.KindNative,
				Chain:       "ethereum",
				Amount:      "1.5",
				Note:        "team vesting",
				CliffDays:   30,
				VestingTime: "09:00",
				Destination: "0x1111111111111111111111111111111111111111",
			},
		},
	}

	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "vault-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.VaultID != "vault-1" {
		t.Errorf("Expected vault_id vault-1, got %s", got.VaultID)
	}

	if len(got.Tokens) != 1 || got.Tokens[0].Asset != "eth" {
		t.Fatalf("Unexpected tokens: %+v", got.Tokens)
	}

	if got.Tokens[0].Amount != "1.5" {
		t.Errorf("Expected amount 1.5, got %s", got.Tokens[0].Amount)
	}

	// 不存在的 vault
	if _, err := s.Get(ctx, "vault-404"); err == nil {
		t.Error("Expected error for missing vault, got nil")
	}

	// 删除后再查
	if err := s.Delete(ctx, "vault-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get(ctx, "vault-1"); err == nil {
		t.Error("Expected error after delete, got nil")
	}
}

// TestFileStoreListOrder 测试 List 按 vault_id 排序，刷新对比需要稳定顺序.
func TestFileStoreListOrder(t *testing.T) {
	s := newFileStore(t)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	for _, id := range []string{"vault-c", "vault-a", "vault-b"} {
		if err := s.Put(ctx, &model.VaultDocument{VaultID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"vault-a", "vault-b", "vault-c"}
	if len(docs) != len(want) {
		t.Fatalf("Expected %d docs, got %d", len(want), len(docs))
	}

	for i, id := range want {
		if docs[i].VaultID != id {
			t.Errorf("Expected docs[%d] = %s, got %s", i, id, docs[i].VaultID)
		}
	}
}

// TestFileStoreConfigsExpand 测试文档展开为配置时补齐 vault_id.
func TestFileStoreConfigsExpand(t *testing.T) {
	s := newFileStore(t)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	doc := &model.VaultDocument{
		VaultID: "vault-9",
		Tokens: []model.VestingConfig{
			{Asset: "usdt", Kind: model.KindToken, Chain: "ethereum"},
			{Asset: "eth", Kind: model.KindNative, Chain: "ethereum"},
		},
	}
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "vault-9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	for _, cfg := range got.Configs() {
		if cfg.VaultID != "vault-9" {
			t.Errorf("Expected vault_id vault-9 on config %s, got %q", cfg.Asset, cfg.VaultID)
		}
	}

	if got.Configs()[0].Identity() != "vault-9/usdt" {
		t.Errorf("Unexpected identity: %s", got.Configs()[0].Identity())
	}
}

// TestFileStoreCorruptFile 测试文件内容损坏时返回错误而非静默清空.
func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vesting_configs.json")

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	cfg := &configs.AppConfig{}
	cfg.Store.File.Path = path

	s, err := store.NewStore(context.Background(), configs.StoreTypeFile, cfg)
	if err != nil {
		t.Fatalf("create file store: %v", err)
	}

	if _, err := s.List(context.Background()); err == nil {
		t.Error("Expected decode error for corrupt file, got nil")
	}

	if err := s.HealthCheck(context.Background()); err == nil {
		t.Error("Expected health check failure for corrupt file, got nil")
	}
}
