// Package fordefi 封装托管平台交易 API 的广播客户端.
//
// 每次广播按 "<路径>|<unix秒>|<请求体>" 组装签名载荷，经 ECDSA 签名后
// 将与签名载荷完全一致的请求体 POST 到交易端点：
//
//	Authorization: Bearer <api token>
//	x-signature:   base64(DER 签名)
//	x-timestamp:   unix 秒（字符串）
//
// 非 2xx 响应视为硬失败，客户端不做重试；重试节奏由调度周期决定.
package fordefi

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/signer"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
	nlog "github.com/yeisme/vestvault/pkg/log"
)

const (
	// maxResponseBytes 限制读取响应体的大小，错误消息只保留前若干字节.
	maxResponseBytes = 1 << 20
	maxErrorSnippet  = 512
)

// BroadcastResult 广播被接受后的关键信息.
type BroadcastResult struct {
	TransactionID string
	StatusCode    int
}

// Client 负责对交易创建请求签名并提交.
type Client struct {
	httpClient *http.Client
	url        string // 交易端点完整 URL
	path       string // 参与签名载荷的请求路径
	signer     *signer.Signer
	secrets    *secret.Client
	tokenName  string
	tokenVer   string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	now        func() time.Time
	logger     zerolog.Logger
}

// New 创建广播客户端，限流与熔断按配置叠加在出站请求上.
func New(cfg *configs.AppConfig, secrets *secret.Client, sig *signer.Signer) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		url:        cfg.API.GetTransactionsURL(),
		path:       cfg.API.TransactionsPath,
		signer:     sig,
		secrets:    secrets,
		tokenName:  cfg.Secrets.APITokenName,
		tokenVer:   cfg.Secrets.Version,
		now:        time.Now,
		logger:     nlog.With("fordefi"),
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	if cfg.Breaker.Enabled {
		breakerCfg := cfg.Breaker
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "fordefi-broadcast",
			MaxRequests: breakerCfg.MaxRequestsInHalf,
			Interval:    time.Duration(breakerCfg.IntervalSeconds) * time.Second,
			Timeout:     time.Duration(breakerCfg.TimeoutSeconds) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				total := counts.Requests
				if total < breakerCfg.MinRequests {
					return false
				}
				// 失败比例
				failureRate := float64(counts.TotalFailures) / float64(total)

				return failureRate >= breakerCfg.FailureRate
			},
		})
	}

	return c
}

// SignPayload 组装签名载荷，请求体字节必须与实际发送的完全一致.
func SignPayload(path, timestamp string, body []byte) []byte {
	payload := make([]byte, 0, len(path)+len(timestamp)+len(body)+2)
	payload = append(payload, path...)
	payload = append(payload, '|')
	payload = append(payload, timestamp...)
	payload = append(payload, '|')
	payload = append(payload, body...)

	return payload
}

// BroadcastTransaction 签名并提交一笔交易创建请求.
// body 即交易 JSON，签名与发送使用同一份字节.
func (c *Client) BroadcastTransaction(ctx context.Context, body []byte) (*BroadcastResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	sig, err := c.signer.Sign(ctx, SignPayload(c.path, timestamp, body))
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	token, err := c.secrets.Get(ctx, c.tokenName, c.tokenVer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch api token: %w", err)
	}

	if c.breaker != nil {
		res, err := c.breaker.Execute(func() (any, error) {
			return c.send(ctx, body, token, sig, timestamp)
		})
		if err != nil {
			return nil, err
		}

		return res.(*BroadcastResult), nil
	}

	return c.send(ctx, body, token, sig, timestamp)
}

// send 发送请求并解析响应，非 2xx 返回带状态码与响应片段的错误.
func (c *Client) send(ctx context.Context, body []byte, token string, sig []byte, timestamp string) (*BroadcastResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-signature", base64.StdEncoding.EncodeToString(sig))
	req.Header.Set("x-timestamp", timestamp)

	c.logger.Debug().Str("url", c.url).Int("body_bytes", len(body)).Msg("broadcasting transaction")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("broadcast request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := respBody
		if len(snippet) > maxErrorSnippet {
			snippet = snippet[:maxErrorSnippet]
		}

		return nil, fmt.Errorf("broadcast rejected: status %d: %s", resp.StatusCode, snippet)
	}

	// 响应体结构以平台为准，这里只关心交易 ID
	var out struct {
		ID string `json:"id"`
	}
	_ = sonic.Unmarshal(respBody, &out)

	c.logger.Info().Str("transaction_id", out.ID).Int("status", resp.StatusCode).Msg("transaction broadcast accepted")

	return &BroadcastResult{TransactionID: out.ID, StatusCode: resp.StatusCode}, nil
}
