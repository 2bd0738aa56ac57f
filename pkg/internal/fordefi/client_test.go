package fordefi_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/fordefi"
	"github.com/yeisme/vestvault/pkg/internal/signer"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
)

// tokenProvider 固定返回 API 令牌.
type tokenProvider struct {
	token string
}

func (p *tokenProvider) Get(_ context.Context, _, _ string) (string, error) { return p.token, nil }
func (p *tokenProvider) Close() error                                      { return nil }

func newTestClient(t *testing.T, baseURL string, key *ecdsa.PrivateKey, breakerEnabled bool) *fordefi.Client {
	t.Helper()

	cfg := &configs.AppConfig{}
	cfg.API.BaseURL = baseURL
	cfg.API.TransactionsPath = configs.DefaultAPITransactionsPath
	cfg.API.Timeout = 5 * time.Second
	cfg.Secrets.APITokenName = configs.DefaultAPITokenName
	cfg.Secrets.Version = configs.DefaultSecretVersion

	if breakerEnabled {
		cfg.Breaker.Enabled = true
		cfg.Breaker.FailureRate = 0.5
		cfg.Breaker.MinRequests = 2
		cfg.Breaker.IntervalSeconds = 60
		cfg.Breaker.TimeoutSeconds = 60
		cfg.Breaker.MaxRequestsInHalf = 1
	}

	secrets := &secret.Client{Provider: &tokenProvider{token: "test-token"}}

	return fordefi.New(cfg, secrets, signer.NewWithKey(key))
}

// TestBroadcastTransaction 验证请求头、签名载荷与请求体的一致性.
func TestBroadcastTransaction(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	body := []byte(`{"signer_type":"api_signer","vault_id":"vault-1"}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != configs.DefaultAPITransactionsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}

		received, _ := io.ReadAll(r.Body)
		if string(received) != string(body) {
			t.Errorf("body mismatch: %s", received)
		}

		timestamp := r.Header.Get("x-timestamp")
		if _, err := strconv.ParseInt(timestamp, 10, 64); err != nil {
			t.Errorf("x-timestamp is not unix seconds: %q", timestamp)
		}

		sig, err := base64.StdEncoding.DecodeString(r.Header.Get("x-signature"))
		if err != nil {
			t.Errorf("x-signature is not base64: %v", err)
		}

		payload := fordefi.SignPayload(configs.DefaultAPITransactionsPath, timestamp, received)
		digest := sha256.Sum256(payload)
		if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig) {
			t.Error("signature does not verify against path|timestamp|body")
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"tx-123","state":"pending"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, key, false)

	res, err := client.BroadcastTransaction(context.Background(), body)
	if err != nil {
		t.Fatalf("BroadcastTransaction failed: %v", err)
	}
	if res.TransactionID != "tx-123" {
		t.Errorf("expected transaction id tx-123, got %s", res.TransactionID)
	}
	if res.StatusCode != http.StatusCreated {
		t.Errorf("expected status 201, got %d", res.StatusCode)
	}
}

// TestBroadcastRejected 验证非 2xx 响应作为硬失败返回，错误包含状态码与响应片段.
func TestBroadcastRejected(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"invalid vault"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, key, false)

	_, err = client.BroadcastTransaction(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for rejected broadcast")
	}
	if got := err.Error(); !strings.Contains(got, "status 422") || !strings.Contains(got, "invalid vault") {
		t.Errorf("error missing status or body snippet: %v", err)
	}
}

// TestBroadcastBreakerOpens 验证连续失败后熔断器打开，后续请求被快速拒绝.
func TestBroadcastBreakerOpens(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	var hits int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, key, true)

	for range 2 {
		if _, err := client.BroadcastTransaction(context.Background(), []byte(`{}`)); err == nil {
			t.Fatal("expected failure from upstream 500")
		}
	}

	_, err = client.BroadcastTransaction(context.Background(), []byte(`{}`))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open circuit breaker, got %v", err)
	}
	if hits != 2 {
		t.Errorf("expected upstream hit twice before breaker opened, got %d", hits)
	}
}
