package secret

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"

	"github.com/yeisme/vestvault/pkg/configs"
)

// GCPProvider 从 Google Secret Manager 读取密钥.
type GCPProvider struct {
	client    *secretmanager.Client
	projectID string
}

func init() {
	RegisterFactory(configs.SecretProviderGCP, NewGCPProvider)
}

// NewGCPProvider 创建 Google Secret Manager 密钥提供方.
func NewGCPProvider(ctx context.Context, cfg *configs.AppConfig) (Provider, error) {
	gcpCfg := cfg.Secrets.GCP
	if gcpCfg.ProjectID == "" {
		return nil, fmt.Errorf("gcp secret provider requires secrets.gcp.project_id")
	}

	var opts []option.ClientOption
	if gcpCfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(gcpCfg.CredentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	return &GCPProvider{client: client, projectID: gcpCfg.ProjectID}, nil
}

func (p *GCPProvider) Get(ctx context.Context, name, version string) (string, error) {
	if version == "" {
		version = configs.DefaultSecretVersion
	}

	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/%s", p.projectID, name, version),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}

	return string(resp.GetPayload().GetData()), nil
}

func (p *GCPProvider) Close() error {
	return p.client.Close()
}
