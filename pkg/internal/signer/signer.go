// Package signer 提供广播请求的 ECDSA 签名能力.
// 私钥以 PEM 文本形式从密钥提供方获取，首次签名时惰性加载并缓存在进程内.
package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"sync"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
)

// Signer 使用 ECDSA（SHA-256 摘要，ASN.1 DER 编码）对请求负载签名.
type Signer struct {
	secrets *secret.Client
	name    string
	version string

	once sync.Once
	key  *ecdsa.PrivateKey
	err  error
}

// New 创建 Signer，密钥名与版本取自全局配置.
func New(secrets *secret.Client) *Signer {
	cfg := configs.GetConfig().Secrets

	return &Signer{
		secrets: secrets,
		name:    cfg.SigningKeyName,
		version: cfg.Version,
	}
}

// NewWithKey 直接使用已解析的私钥创建 Signer，测试与离线工具使用.
func NewWithKey(key *ecdsa.PrivateKey) *Signer {
	s := &Signer{}
	s.once.Do(func() { s.key = key })

	return s
}

// Sign 对负载做 SHA-256 摘要并返回 ASN.1 DER 编码的签名.
func (s *Signer) Sign(ctx context.Context, payload []byte) ([]byte, error) {
	key, err := s.loadKey(ctx)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(payload)

	return ecdsa.SignASN1(rand.Reader, key, digest[:])
}

// PublicKey 返回签名私钥对应的公钥，密钥未加载时返回 nil.
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	if s.key == nil {
		return nil
	}

	return &s.key.PublicKey
}

// loadKey 首次调用时从密钥提供方取回 PEM 并解析，之后复用.
func (s *Signer) loadKey(ctx context.Context) (*ecdsa.PrivateKey, error) {
	s.once.Do(func() {
		if s.secrets == nil {
			s.err = fmt.Errorf("signer has no secret provider")
			return
		}

		pemText, err := s.secrets.Get(ctx, s.name, s.version)
		if err != nil {
			s.err = fmt.Errorf("failed to fetch signing key: %w", err)
			return
		}

		s.key, s.err = ParsePrivateKey([]byte(pemText))
	})

	return s.key, s.err
}

// ParsePrivateKey 解析 PEM 编码的 ECDSA 私钥，支持 SEC1（EC PRIVATE KEY）
// 与 PKCS#8（PRIVATE KEY）两种块格式.
func ParsePrivateKey(pemBytes []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in signing key")
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signing key is not an ECDSA key")
	}

	return key, nil
}
