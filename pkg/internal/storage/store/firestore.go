package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

// FirestoreStore 基于 Google Firestore 的存储实现，文档 ID 即 vault_id.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore 创建 Firestore 存储实例.
func NewFirestoreStore(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	fsCfg := cfg.Store.Firestore
	if fsCfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project_id is empty")
	}

	var opts []option.ClientOption
	if fsCfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(fsCfg.CredentialsFile))
	}

	var (
		client *firestore.Client
		err    error
	)

	if fsCfg.Database != "" {
		client, err = firestore.NewClientWithDatabase(ctx, fsCfg.ProjectID, fsCfg.Database, opts...)
	} else {
		client, err = firestore.NewClient(ctx, fsCfg.ProjectID, opts...)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{
		client:     client,
		collection: cfg.Store.Collection,
	}, nil
}

// List 返回集合内的全部 vault 文档.
func (s *FirestoreStore) List(ctx context.Context) ([]model.VaultDocument, error) {
	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	var out []model.VaultDocument

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to iterate documents: %w", err)
		}

		var doc model.VaultDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", snap.Ref.ID, err)
		}

		doc.VaultID = snap.Ref.ID
		out = append(out, doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (s *FirestoreStore) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	snap, err := s.client.Collection(s.collection).Doc(vaultID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", vaultID, err)
	}

	var doc model.VaultDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", vaultID, err)
	}

	doc.VaultID = vaultID

	return &doc, nil
}

// Put 写入或覆盖单个 vault 的文档.
func (s *FirestoreStore) Put(ctx context.Context, doc *model.VaultDocument) error {
	_, err := s.client.Collection(s.collection).Doc(doc.VaultID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to set document %s: %w", doc.VaultID, err)
	}

	return nil
}

// Delete 删除单个 vault 的文档.
func (s *FirestoreStore) Delete(ctx context.Context, vaultID string) error {
	_, err := s.client.Collection(s.collection).Doc(vaultID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", vaultID, err)
	}

	return nil
}

// HealthCheck 通过读取集合首个文档验证连接.
func (s *FirestoreStore) HealthCheck(ctx context.Context) error {
	iter := s.client.Collection(s.collection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore health check failed: %w", err)
	}

	return nil
}

// Close 关闭 Firestore 连接.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func init() {
	RegisterFactory(configs.StoreTypeFirestore, NewFirestoreStore)
}
