package signer_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/yeisme/vestvault/pkg/internal/signer"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
)

func generateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	return key
}

func encodePEM(t *testing.T, blockType string, der []byte) []byte {
	t.Helper()

	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

// TestSignAndVerify 验证签名可被对应公钥验证，负载变化则验证失败.
func TestSignAndVerify(t *testing.T) {
	key := generateKey(t)
	s := signer.NewWithKey(key)

	payload := []byte(`/api/v1/transactions|1704103200|{"vault_id":"vault-1"}`)

	sig, err := s.Sign(context.Background(), payload)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	digest := sha256.Sum256(payload)
	if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig) {
		t.Error("signature did not verify against payload")
	}

	tampered := sha256.Sum256([]byte("other payload"))
	if ecdsa.VerifyASN1(&key.PublicKey, tampered[:], sig) {
		t.Error("signature verified against tampered payload")
	}
}

// TestParsePrivateKeySEC1 验证解析 EC PRIVATE KEY 块.
func TestParsePrivateKeySEC1(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}

	parsed, err := signer.ParsePrivateKey(encodePEM(t, "EC PRIVATE KEY", der))
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}
	if parsed.D.Cmp(key.D) != 0 {
		t.Error("parsed key does not match original")
	}
}

// TestParsePrivateKeyPKCS8 验证解析 PKCS#8 块.
func TestParsePrivateKeyPKCS8(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}

	parsed, err := signer.ParsePrivateKey(encodePEM(t, "PRIVATE KEY", der))
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}
	if parsed.D.Cmp(key.D) != 0 {
		t.Error("parsed key does not match original")
	}
}

// TestParsePrivateKeyInvalid 验证非 PEM 输入与非 ECDSA 密钥被拒绝.
func TestParsePrivateKeyInvalid(t *testing.T) {
	if _, err := signer.ParsePrivateKey([]byte("not a pem block")); err == nil {
		t.Error("expected error for non-PEM input")
	}

	if _, err := signer.ParsePrivateKey(encodePEM(t, "EC PRIVATE KEY", []byte{0x01, 0x02})); err == nil {
		t.Error("expected error for malformed DER")
	}
}

// pemProvider 返回固定 PEM 文本的测试密钥提供方.
type pemProvider struct {
	pem string
}

func (p *pemProvider) Get(_ context.Context, _, _ string) (string, error) { return p.pem, nil }
func (p *pemProvider) Close() error                                      { return nil }

// TestSignerLoadsKeyFromProvider 验证惰性加载：首次签名时才从提供方取回私钥.
func TestSignerLoadsKeyFromProvider(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}

	client := &secret.Client{Provider: &pemProvider{pem: string(encodePEM(t, "EC PRIVATE KEY", der))}}
	s := signer.New(client)

	payload := []byte("payload")

	sig, err := s.Sign(context.Background(), payload)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	digest := sha256.Sum256(payload)
	if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig) {
		t.Error("signature did not verify")
	}
}
