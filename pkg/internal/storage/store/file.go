package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/model"
)

// FileStore 基于本地 JSON 文件的存储实现，主要用于开发与测试.
// 文件内容为 vault_id 到文档的映射：
//
//	{
//	  "vault-1": {"tokens": [{"asset": "eth", ...}]},
//	  "vault-2": {"tokens": [...]}
//	}
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore 创建本地文件存储实例.
func NewFileStore(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	path := cfg.Store.File.Path
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}

	return &FileStore{path: path}, nil
}

// load 读取并解析整个文件，文件不存在视为空集合.
func (f *FileStore) load() (map[string]model.VaultDocument, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]model.VaultDocument{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	docs := make(map[string]model.VaultDocument)
	if err := sonic.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}

	return docs, nil
}

// save 原子写回整个文件（写临时文件后 rename）.
func (f *FileStore) save(docs map[string]model.VaultDocument) error {
	data, err := sonic.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store dir: %w", err)
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// List 返回全部 vault 文档，按 vault_id 排序保证刷新对比稳定.
func (f *FileStore) List(ctx context.Context) ([]model.VaultDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	out := make([]model.VaultDocument, 0, len(docs))

	for _, id := range ids {
		doc := docs[id]
		doc.VaultID = id
		out = append(out, doc)
	}

	return out, nil
}

// Get 获取单个 vault 的文档.
func (f *FileStore) Get(ctx context.Context, vaultID string) (*model.VaultDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return nil, err
	}

	doc, ok := docs[vaultID]
	if !ok {
		return nil, fmt.Errorf("vault not found: %s", vaultID)
	}

	doc.VaultID = vaultID

	return &doc, nil
}

// Put 写入或覆盖单个 vault 的文档.
func (f *FileStore) Put(ctx context.Context, doc *model.VaultDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return err
	}

	docs[doc.VaultID] = *doc

	return f.save(docs)
}

// Delete 删除单个 vault 的文档.
func (f *FileStore) Delete(ctx context.Context, vaultID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs, err := f.load()
	if err != nil {
		return err
	}

	delete(docs, vaultID)

	return f.save(docs)
}

// HealthCheck 验证文件可读（不存在视为空集合，同样健康）.
func (f *FileStore) HealthCheck(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, err := f.load()

	return err
}

// Close 关闭存储（文件后端无需操作）.
func (f *FileStore) Close() error {
	return nil
}

func init() {
	RegisterFactory(configs.StoreTypeFile, NewFileStore)
}
