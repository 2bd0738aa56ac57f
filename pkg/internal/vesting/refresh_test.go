package vesting_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
	"github.com/yeisme/vestvault/pkg/internal/vesting"
)

// fakeFetcher 返回预设文档集合的配置源.
type fakeFetcher struct {
	mu    sync.Mutex
	docs  []model.VaultDocument
	err   error
	calls int
}

func (f *fakeFetcher) List(_ context.Context) ([]model.VaultDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return f.docs, nil
}

func (f *fakeFetcher) setDocs(docs []model.VaultDocument) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.docs = docs
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

// vaultDoc 构造单个 vault 的存储文档，vault_id 由文档补齐.
func vaultDoc(vaultID string, tokens ...model.VestingConfig) model.VaultDocument {
	return model.VaultDocument{VaultID: vaultID, Tokens: tokens}
}

// docToken 去掉 VaultID 的配置条目，模拟存储中的文档形态.
func docToken(cfg model.VestingConfig) model.VestingConfig {
	cfg.VaultID = ""
	return cfg
}

func newTestRefresher(eng *vesting.Engine, fetcher vesting.Fetcher, removeStale bool) *vesting.Refresher {
	return vesting.NewRefresher(eng, fetcher, configs.RefreshConfig{RemoveStale: removeStale}, nil)
}

// TestRefresherRegistersNewConfigs 测试全量拉取后新配置进入调度.
func TestRefresherRegistersNewConfigs(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.Added != 2 || result.Total != 2 || result.Invalid != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	if jobs := eng.Jobs(); len(jobs) != 2 {
		t.Errorf("expected 2 scheduled jobs, got %d", len(jobs))
	}
}

// TestRefresherLeavesExistingUntouched 测试重复刷新不重置已登记计划.
func TestRefresherLeavesExistingUntouched(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	before, _ := eng.Job("vault-1/eth")

	// 第二轮返回同一批文档但条目数量变化，绕过指纹短路
	fetcher.setDocs([]model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	})

	clk.Advance(time.Hour)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	if result.Unchanged != 1 || result.Added != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	after, _ := eng.Job("vault-1/eth")
	if !after.NextRun.Equal(before.NextRun) {
		t.Errorf("existing job reset by refresh: %v -> %v", before.NextRun, after.NextRun)
	}
}

// TestRefresherUnchangedSkipsReconcile 测试内容未变化时跳过对账.
func TestRefresherUnchangedSkipsReconcile(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	first, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	if first.Skipped {
		t.Fatal("first refresh must reconcile")
	}

	second, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	if !second.Skipped {
		t.Error("identical content should skip reconcile")
	}

	if second.Total != 1 {
		t.Errorf("total = %d, want 1", second.Total)
	}

	if fetcher.callCount() != 2 {
		t.Errorf("fetch calls = %d, want 2", fetcher.callCount())
	}
}

// TestRefresherUnsupportedDoesNotBlockSiblings 测试不支持的条目被跳过，
// 同批其它条目照常登记.
func TestRefresherUnsupportedDoesNotBlockSiblings(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	unsupported := docToken(bscTokenConfig())
	unsupported.Chain = "polygon"

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", unsupported),
	}}

	r := newTestRefresher(eng, fetcher, false)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.Added != 1 || result.Invalid != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-1/eth"); !ok {
		t.Error("supported sibling missing from schedule")
	}

	if _, ok := eng.Job("vault-2/usdt"); ok {
		t.Error("unsupported config must not be scheduled")
	}
}

// TestRefresherValidationRejectsEntry 测试字段校验失败的条目不进入对账.
func TestRefresherValidationRejectsEntry(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	bad := docToken(ethNativeConfig())
	bad.VestingTime = "25:61"

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", bad),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.Added != 1 || result.Invalid != 1 || result.Total != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-1/eth"); ok {
		t.Error("invalid entry must not be scheduled")
	}
}

// TestRefresherDuplicateKeepsFirst 测试同一身份出现多次时保留第一条.
func TestRefresherDuplicateKeepsFirst(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	first := docToken(ethNativeConfig())
	second := docToken(ethNativeConfig())
	second.Amount = "999"

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", first, second),
	}}

	r := newTestRefresher(eng, fetcher, false)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.Total != 1 || result.Added != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	view, _ := eng.Job("vault-1/eth")
	if view.Amount != "12.5" {
		t.Errorf("amount = %s, want first entry's 12.5", view.Amount)
	}
}

// TestRefresherStaleKeptByDefault 测试下游消失的计划默认保留在调度中.
func TestRefresherStaleKeptByDefault(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fetcher.setDocs([]model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
	})

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	if result.Stale != 1 || result.Removed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-2/usdt"); !ok {
		t.Error("stale job removed despite remove_stale disabled")
	}
}

// TestRefresherStaleRemovedWhenEnabled 测试开启 remove_stale 后
// 下游消失的计划被移出调度.
func TestRefresherStaleRemovedWhenEnabled(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	}}

	r := newTestRefresher(eng, fetcher, true)

	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fetcher.setDocs([]model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
	})

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	if result.Removed != 1 || result.Stale != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-2/usdt"); ok {
		t.Error("stale job still scheduled with remove_stale enabled")
	}

	if _, ok := eng.Job("vault-1/eth"); !ok {
		t.Error("surviving job missing from schedule")
	}
}

// TestRefresherFetchErrorLeavesScheduleIntact 测试拉取失败时调度保持原样.
func TestRefresherFetchErrorLeavesScheduleIntact(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
	}}

	r := newTestRefresher(eng, fetcher, true)

	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fetcher.mu.Lock()
	fetcher.err = errors.New("store unavailable")
	fetcher.mu.Unlock()

	if _, err := r.Refresh(context.Background()); !errors.Is(err, vesting.ErrConfigFetch) {
		t.Fatalf("expected ErrConfigFetch, got %v", err)
	}

	if _, ok := eng.Job("vault-1/eth"); !ok {
		t.Error("fetch failure must not touch scheduled jobs")
	}
}

// TestRefresherReregistersAfterRemove 测试运维删除计划后，
// 即便下游内容未变化，下一轮刷新也会重新登记.
func TestRefresherReregistersAfterRemove(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", docToken(ethNativeConfig())),
		vaultDoc("vault-2", docToken(bscTokenConfig())),
	}}

	r := newTestRefresher(eng, fetcher, false)

	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	if !eng.Remove("vault-1/eth", "operator") {
		t.Fatal("remove failed")
	}

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh after remove: %v", err)
	}

	if result.Skipped {
		t.Fatal("removed identity must force a reconcile despite unchanged content")
	}

	if result.Added != 1 || result.Unchanged != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-1/eth"); !ok {
		t.Error("removed job not re-registered from source of truth")
	}

	// 全部身份回到调度中后，内容未变化恢复短路
	third, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("third refresh: %v", err)
	}

	if !third.Skipped {
		t.Error("identical content with full coverage should skip reconcile")
	}
}

// TestRefresherDestinationPassthrough 测试收款地址不做格式校验，
// 非常规地址的条目照常登记.
func TestRefresherDestinationPassthrough(t *testing.T) {
	clk := newFakeClock(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	eng := newTestEngine(clk, newFakeExecutor())

	odd := docToken(ethNativeConfig())
	odd.Destination = "multisig:treasury-cold-7"

	fetcher := &fakeFetcher{docs: []model.VaultDocument{
		vaultDoc("vault-1", odd),
	}}

	r := newTestRefresher(eng, fetcher, false)

	result, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if result.Added != 1 || result.Invalid != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	if _, ok := eng.Job("vault-1/eth"); !ok {
		t.Error("entry with unusual destination must be scheduled")
	}
}
