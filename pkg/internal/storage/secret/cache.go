package secret

import (
	"context"
	"sync"
	"time"
)

// cachedProvider 在真实提供方外叠加进程内 TTL 缓存.
// 密钥只保存在内存中，过期后懒惰失效，下次 Get 时回源刷新.
type cachedProvider struct {
	inner Provider
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewCachedProvider 在 inner 外叠加 TTL 缓存.
func NewCachedProvider(inner Provider, ttl time.Duration) Provider {
	return &cachedProvider{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (p *cachedProvider) Get(ctx context.Context, name, version string) (string, error) {
	key := name + "@" + version

	p.mu.Lock()
	entry, ok := p.entries[key]
	p.mu.Unlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := p.inner.Get(ctx, name, version)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(p.ttl)}
	p.mu.Unlock()

	return value, nil
}

func (p *cachedProvider) Close() error {
	p.mu.Lock()
	p.entries = make(map[string]cacheEntry)
	p.mu.Unlock()

	return p.inner.Close()
}
