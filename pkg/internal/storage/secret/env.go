package secret

import (
	"context"
	"fmt"
	"os"

	"github.com/yeisme/vestvault/pkg/configs"
)

// EnvProvider 从环境变量读取密钥，变量名为 prefix + name.
// 环境变量没有版本概念，version 参数被忽略.
type EnvProvider struct {
	prefix string
}

func init() {
	RegisterFactory(configs.SecretProviderEnv, NewEnvProvider)
}

// NewEnvProvider 创建环境变量密钥提供方.
func NewEnvProvider(_ context.Context, cfg *configs.AppConfig) (Provider, error) {
	return &EnvProvider{prefix: cfg.Secrets.Env.Prefix}, nil
}

func (p *EnvProvider) Get(_ context.Context, name, _ string) (string, error) {
	value := os.Getenv(p.prefix + name)
	if value == "" {
		return "", fmt.Errorf("secret not found in environment: %s%s", p.prefix, name)
	}

	return value, nil
}

func (p *EnvProvider) Close() error {
	return nil
}
