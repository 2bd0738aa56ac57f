package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
	s3c "github.com/yeisme/vestvault/pkg/internal/storage/s3"
)

// S3Store 基于对象存储的存储实现，每个 vault 文档存为一个 JSON 对象.
type S3Store struct {
	client *s3c.Client
	bucket string
	prefix string
}

// NewS3Store 创建对象存储实例，桶与连接复用顶层 S3 配置.
func NewS3Store(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	client, err := s3c.New(ctx)
	if err != nil {
		return nil, err
	}

	return &S3Store{
		client: client,
		bucket: cfg.S3.BucketName,
		prefix: cfg.Store.S3.ObjectPrefix,
	}, nil
}

// key 拼接 vault 文档的对象键.
func (s *S3Store) key(vaultID string) string {
	return s.prefix + vaultID + ".json"
}

// readObject 读取并解析单个文档对象.
func (s *S3Store) readObject(ctx context.Context, key, vaultID string) (*model.VaultDocument, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("vault not found: %s", vaultID)
		}

		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	var doc model.VaultDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode object %s: %w", key, err)
	}

	doc.VaultID = vaultID

	return &doc, nil
}

// List 返回前缀下的全部 vault 文档.
func (s *S3Store) List(ctx context.Context) ([]model.VaultDocument, error) {
	var out []model.VaultDocument

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}

		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}

		vaultID := strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), ".json")

		doc, err := s.readObject(ctx, obj.Key, vaultID)
		if err != nil {
			return nil, err
		}

		out = append(out, *doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (s *S3Store) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	return s.readObject(ctx, s.key(vaultID), vaultID)
}

// Put 写入或覆盖单个 vault 的文档.
func (s *S3Store) Put(ctx context.Context, doc *model.VaultDocument) error {
	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.VaultID, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key(doc.VaultID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put object for vault %s: %w", doc.VaultID, err)
	}

	return nil
}

// Delete 删除单个 vault 的文档.
func (s *S3Store) Delete(ctx context.Context, vaultID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(vaultID), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object for vault %s: %w", vaultID, err)
	}

	return nil
}

// HealthCheck 验证对象存储连接.
func (s *S3Store) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

// Close 关闭对象存储连接.
func (s *S3Store) Close() error {
	return s.client.Close()
}

func init() {
	RegisterFactory(configs.StoreTypeS3, NewS3Store)
}
