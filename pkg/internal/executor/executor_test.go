package executor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/fordefi"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

func nativeConfig() model.VestingConfig {
	return model.VestingConfig{
		VaultID:     "vault-1",
		Asset:       "eth",
		Ecosystem:   model.EcosystemEVM,
		Kind:        model.KindNative,
		Chain:       "ethereum",
		Amount:      "3",
		Note:        "daily vesting",
		Destination: "0x1111111111111111111111111111111111111111",
	}
}

func tokenConfig(chain, asset string) model.VestingConfig {
	cfg := nativeConfig()
	cfg.Asset = asset
	cfg.Kind = model.KindToken
	cfg.Chain = chain
	cfg.Amount = "12.5"

	return cfg
}

// TestResolveNative 验证原生资产方案：链标识与默认精度.
func TestResolveNative(t *testing.T) {
	plan, err := executor.Resolve(nativeConfig())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if plan.Kind != model.KindNative {
		t.Errorf("expected native kind, got %s", plan.Kind)
	}
	if plan.Chain != "evm_ethereum_mainnet" {
		t.Errorf("unexpected chain identifier %s", plan.Chain)
	}
	if plan.Decimals != executor.DefaultNativeDecimals {
		t.Errorf("expected 18 decimals, got %d", plan.Decimals)
	}
	if plan.Identity() != "vault-1/eth" {
		t.Errorf("unexpected identity %s", plan.Identity())
	}
}

// TestResolveToken 验证代币方案从注册表取合约地址与精度.
func TestResolveToken(t *testing.T) {
	plan, err := executor.Resolve(tokenConfig("ethereum", "usdt"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if plan.Kind != model.KindToken {
		t.Errorf("expected token kind, got %s", plan.Kind)
	}
	if plan.Token.Address != "0xdAC17F958D2ee523a2206206994597C13D831ec7" {
		t.Errorf("unexpected token address %s", plan.Token.Address)
	}
	if plan.Decimals != 6 {
		t.Errorf("expected 6 decimals for ethereum usdt, got %d", plan.Decimals)
	}
}

// TestResolveRejections 验证不支持的配置在解析阶段被立即拒绝.
func TestResolveRejections(t *testing.T) {
	unsupportedChain := tokenConfig("polygon", "usdt")

	unsupportedEcosystem := nativeConfig()
	unsupportedEcosystem.Ecosystem = "solana"

	unknownKind := nativeConfig()
	unknownKind.Kind = "spl"

	badAmount := nativeConfig()
	badAmount.Amount = "12,5"

	negativeAmount := nativeConfig()
	negativeAmount.Amount = "-1"

	cases := []struct {
		name string
		cfg  model.VestingConfig
	}{
		{"unregistered token", unsupportedChain},
		{"non-evm ecosystem", unsupportedEcosystem},
		{"unknown kind", unknownKind},
		{"bad amount", badAmount},
		{"negative amount", negativeAmount},
	}

	for _, tc := range cases {
		if _, err := executor.Resolve(tc.cfg); !errors.Is(err, executor.ErrUnsupportedConfig) {
			t.Errorf("%s: expected ErrUnsupportedConfig, got %v", tc.name, err)
		}
	}
}

// TestRawValue 验证十进制金额到最小单位的换算与截断.
func TestRawValue(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int32
		want     string
	}{
		{"12.5", 6, "12500000"},
		{"3", 18, "3000000000000000000"},
		{"0.0000001", 6, "0"},
		{"1.9999999", 6, "1999999"},
		{"0", 18, "0"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad test amount %q: %v", tc.amount, err)
		}

		if got := executor.RawValue(amount, tc.decimals); got != tc.want {
			t.Errorf("RawValue(%s, %d) = %s, want %s", tc.amount, tc.decimals, got, tc.want)
		}
	}
}

// TestBuildTransactionNative 验证原生划转的请求体形状.
func TestBuildTransactionNative(t *testing.T) {
	plan, err := executor.Resolve(nativeConfig())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	body, err := executor.BuildTransaction(plan)
	if err != nil {
		t.Fatalf("BuildTransaction failed: %v", err)
	}

	want := `{"signer_type":"api_signer","vault_id":"vault-1","note":"daily vesting","type":"evm_transaction",` +
		`"details":{"type":"evm_transfer","gas":{"type":"priority","priority_level":"medium"},` +
		`"to":"0x1111111111111111111111111111111111111111",` +
		`"asset_identifier":{"type":"evm","details":{"type":"native","chain":"evm_ethereum_mainnet"}},` +
		`"value":{"type":"value","value":"3000000000000000000"}}}`
	if string(body) != want {
		t.Errorf("unexpected transaction body:\n got %s\nwant %s", body, want)
	}
}

// TestBuildTransactionToken 验证 ERC-20 划转带 token 引用且不带 chain 字段.
func TestBuildTransactionToken(t *testing.T) {
	plan, err := executor.Resolve(tokenConfig("bsc", "usdt"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	body, err := executor.BuildTransaction(plan)
	if err != nil {
		t.Fatalf("BuildTransaction failed: %v", err)
	}

	var decoded map[string]any
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}

	details := decoded["details"].(map[string]any)
	assetDetails := details["asset_identifier"].(map[string]any)["details"].(map[string]any)

	if assetDetails["type"] != "erc20" {
		t.Errorf("expected erc20 asset type, got %v", assetDetails["type"])
	}
	if _, hasChain := assetDetails["chain"]; hasChain {
		t.Error("erc20 details must not carry a chain field")
	}

	token := assetDetails["token"].(map[string]any)
	if token["chain"] != "evm_bsc_mainnet" {
		t.Errorf("unexpected token chain %v", token["chain"])
	}
	if token["hex_repr"] != "0x55d398326f99059fF775485246999027B3197955" {
		t.Errorf("unexpected token contract %v", token["hex_repr"])
	}

	value := details["value"].(map[string]any)
	if value["value"] != "12500000000000000000" {
		t.Errorf("bsc usdt uses 18 decimals, got raw value %v", value["value"])
	}
}

// captureBroadcaster 记录提交的请求体.
type captureBroadcaster struct {
	body []byte
	err  error
}

func (b *captureBroadcaster) BroadcastTransaction(_ context.Context, body []byte) (*fordefi.BroadcastResult, error) {
	b.body = body
	if b.err != nil {
		return nil, b.err
	}

	return &fordefi.BroadcastResult{TransactionID: "tx-9", StatusCode: 201}, nil
}

// TestExecutorExecute 验证执行结果带交易 ID 与换算后的数量.
func TestExecutorExecute(t *testing.T) {
	plan, err := executor.Resolve(tokenConfig("ethereum", "usdt"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	bc := &captureBroadcaster{}
	exec := executor.New(bc)

	res, err := exec.Execute(context.Background(), plan)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.TransactionID != "tx-9" {
		t.Errorf("unexpected transaction id %s", res.TransactionID)
	}
	if res.RawValue != "12500000" {
		t.Errorf("unexpected raw value %s", res.RawValue)
	}
	if len(bc.body) == 0 {
		t.Error("broadcaster did not receive a body")
	}
}

// TestExecutorExecuteFailure 验证广播失败原样上抛，不做重试.
func TestExecutorExecuteFailure(t *testing.T) {
	plan, err := executor.Resolve(nativeConfig())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	wantErr := errors.New("status 500")
	exec := executor.New(&captureBroadcaster{err: wantErr})

	if _, err := exec.Execute(context.Background(), plan); !errors.Is(err, wantErr) {
		t.Fatalf("expected broadcast error, got %v", err)
	}
}

// TestListRegisteredTokens 验证注册表快照排序与条目数.
func TestListRegisteredTokens(t *testing.T) {
	tokens := executor.ListRegisteredTokens()
	if len(tokens) != 4 {
		t.Fatalf("expected 4 registered tokens, got %d", len(tokens))
	}
	if tokens[0].Chain != "bsc" || tokens[0].Asset != "usdt" {
		t.Errorf("unexpected first entry %+v", tokens[0])
	}
	if tokens[1].Chain != "ethereum" || tokens[1].Asset != "basedai" {
		t.Errorf("unexpected second entry %+v", tokens[1])
	}
}
