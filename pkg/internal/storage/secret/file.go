package secret

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeisme/vestvault/pkg/configs"
)

// FileProvider 从目录中读取密钥文件，文件名即密钥名，内容去除首尾空白.
// 适合挂载 Kubernetes Secret 卷或本地开发，version 参数被忽略.
type FileProvider struct {
	dir string
}

func init() {
	RegisterFactory(configs.SecretProviderFile, NewFileProvider)
}

// NewFileProvider 创建文件密钥提供方.
func NewFileProvider(_ context.Context, cfg *configs.AppConfig) (Provider, error) {
	dir := cfg.Secrets.File.Dir
	if dir == "" {
		return nil, fmt.Errorf("secret file provider requires secrets.file.dir")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access secret directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secret path is not a directory: %s", dir)
	}

	return &FileProvider{dir: dir}, nil
}

func (p *FileProvider) Get(_ context.Context, name, _ string) (string, error) {
	// 密钥名不允许带路径分隔符，防止读取目录外的文件
	if strings.ContainsAny(name, `/\`) || name == "" {
		return "", fmt.Errorf("invalid secret name: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("secret not found: %s", name)
		}

		return "", fmt.Errorf("failed to read secret %s: %w", name, err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (p *FileProvider) Close() error {
	return nil
}
