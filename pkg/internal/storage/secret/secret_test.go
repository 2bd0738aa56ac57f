package secret_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
)

// TestRegisteredProviders 验证内置提供方全部完成注册.
func TestRegisteredProviders(t *testing.T) {
	registered := secret.GetRegisteredProviders()

	want := []configs.SecretProvider{
		configs.SecretProviderEnv,
		configs.SecretProviderFile,
		configs.SecretProviderGCP,
	}
	for _, provider := range want {
		found := false
		for _, got := range registered {
			if got == provider {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("provider %s not registered", provider)
		}
	}
}

// TestNewProviderUnsupported 验证未知提供方类型返回错误.
func TestNewProviderUnsupported(t *testing.T) {
	cfg := &configs.AppConfig{}

	_, err := secret.NewProvider(context.Background(), "vault-of-vaults", cfg)
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

// TestEnvProvider 验证环境变量提供方按前缀读取密钥.
func TestEnvProvider(t *testing.T) {
	t.Setenv("VESTVAULT_SECRET_USER_API_TOKEN", "token-123")

	cfg := &configs.AppConfig{}
	cfg.Secrets.Env.Prefix = "VESTVAULT_SECRET_"

	p, err := secret.NewEnvProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEnvProvider failed: %v", err)
	}

	got, err := p.Get(context.Background(), "USER_API_TOKEN", "latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-123" {
		t.Errorf("expected token-123, got %s", got)
	}

	if _, err := p.Get(context.Background(), "MISSING_SECRET", ""); err == nil {
		t.Error("expected error for missing environment variable")
	}
}

// TestFileProvider 验证文件提供方读取文件内容并去除首尾空白.
func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "API_SIGNER_PRIVATE_KEY"), []byte("pem-data\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	cfg := &configs.AppConfig{}
	cfg.Secrets.File.Dir = dir

	p, err := secret.NewFileProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewFileProvider failed: %v", err)
	}

	got, err := p.Get(context.Background(), "API_SIGNER_PRIVATE_KEY", "latest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "pem-data" {
		t.Errorf("expected trimmed pem-data, got %q", got)
	}

	if _, err := p.Get(context.Background(), "MISSING", ""); err == nil {
		t.Error("expected error for missing secret file")
	}
	if _, err := p.Get(context.Background(), "../escape", ""); err == nil {
		t.Error("expected error for secret name with path separator")
	}
}

// TestFileProviderBadDir 验证目录不存在时创建提供方失败.
func TestFileProviderBadDir(t *testing.T) {
	cfg := &configs.AppConfig{}
	cfg.Secrets.File.Dir = filepath.Join(t.TempDir(), "nope")

	if _, err := secret.NewFileProvider(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing secret directory")
	}
}

// countingProvider 记录回源次数，用于验证缓存行为.
type countingProvider struct {
	calls int
	value string
	err   error
}

func (p *countingProvider) Get(_ context.Context, _, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}

	return p.value, nil
}

func (p *countingProvider) Close() error { return nil }

// TestCachedProviderHit 验证 TTL 内重复读取不回源.
func TestCachedProviderHit(t *testing.T) {
	inner := &countingProvider{value: "cached-value"}
	p := secret.NewCachedProvider(inner, time.Minute)

	for range 3 {
		got, err := p.Get(context.Background(), "USER_API_TOKEN", "latest")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "cached-value" {
			t.Errorf("expected cached-value, got %s", got)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected single upstream call, got %d", inner.calls)
	}
}

// TestCachedProviderExpiry 验证过期后重新回源.
func TestCachedProviderExpiry(t *testing.T) {
	inner := &countingProvider{value: "v"}
	p := secret.NewCachedProvider(inner, 10*time.Millisecond)

	if _, err := p.Get(context.Background(), "k", ""); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := p.Get(context.Background(), "k", ""); err != nil {
		t.Fatalf("Get after expiry failed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls after expiry, got %d", inner.calls)
	}
}

// TestCachedProviderError 验证回源失败不写入缓存.
func TestCachedProviderError(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	p := secret.NewCachedProvider(inner, time.Minute)

	if _, err := p.Get(context.Background(), "k", ""); err == nil {
		t.Fatal("expected upstream error")
	}

	inner.err = nil
	inner.value = "recovered"

	got, err := p.Get(context.Background(), "k", "")
	if err != nil {
		t.Fatalf("Get after recovery failed: %v", err)
	}
	if got != "recovered" {
		t.Errorf("expected recovered, got %s", got)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", inner.calls)
	}
}

// TestCachedProviderVersionKey 验证不同版本各自缓存.
func TestCachedProviderVersionKey(t *testing.T) {
	inner := &countingProvider{value: "v"}
	p := secret.NewCachedProvider(inner, time.Minute)

	if _, err := p.Get(context.Background(), "k", "1"); err != nil {
		t.Fatalf("Get v1 failed: %v", err)
	}
	if _, err := p.Get(context.Background(), "k", "2"); err != nil {
		t.Fatalf("Get v2 failed: %v", err)
	}

	if inner.calls != 2 {
		t.Errorf("expected separate cache entries per version, got %d calls", inner.calls)
	}
}
