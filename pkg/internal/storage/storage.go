// Package storage 聚合归属计划运行所需的外部资源：配置存储、密钥提供方与消息队列.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取客户端
//
//	storeClient := mgr.GetStoreClient()
//	secretClient := mgr.GetSecretClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/vestvault/pkg/configs"
	mqc "github.com/yeisme/vestvault/pkg/internal/storage/mq"
	"github.com/yeisme/vestvault/pkg/internal/storage/secret"
	"github.com/yeisme/vestvault/pkg/internal/storage/store"
	nlog "github.com/yeisme/vestvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	Store  *store.Client
	Secret *secret.Client
	MQ     *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// 归属配置存储
		storeClient, e := store.New(ctx)
		if e != nil {
			err = e
			return
		}
		m.Store = storeClient

		// 密钥提供方
		secretClient, e := secret.New(ctx)
		if e != nil {
			err = e
			return
		}
		m.Secret = secretClient

		// 消息队列，事件关闭时不建立连接
		if cfg.Events.Enabled {
			mqClient, e := mqc.New(ctx)
			if e != nil {
				err = e
				return
			}
			m.MQ = mqClient
		} else {
			nlog.Logger().Info().Msg("events disabled, mq not initialized")
		}

		mgr = m

		nlog.Logger().Info().
			Str("store", string(cfg.Store.Type)).
			Str("secrets", string(cfg.Secrets.Provider)).
			Msg("storage manager initialized")
	})

	return mgr, err
}

// GetStoreClient 获取归属配置存储客户端.
func (m *Manager) GetStoreClient() *store.Client {
	return m.Store
}

// GetSecretClient 获取密钥客户端.
func (m *Manager) GetSecretClient() *secret.Client {
	return m.Secret
}

// GetMQClient 获取 MQ 客户端，事件关闭时返回 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 释放所有存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.Secret != nil {
		if e := m.Secret.Close(); e != nil {
			err = e
		}
	}

	if m.Store != nil {
		if e := m.Store.Close(); e != nil {
			err = e
		}
	}

	return err
}
