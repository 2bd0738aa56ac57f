package mq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/vestvault/pkg/configs"
)

// init 注册 GoChannel 工厂.
func init() {
	RegisterFactory(configs.MQTypeGoChannel, gochannelFactory)
}

// gochannelFactory 创建进程内 Publisher & Subscriber.
// 消息不出进程，适合本地开发与单机部署时关闭外部 MQ 依赖.
func gochannelFactory(
	_ context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.Common.BufferSize),
	}, logger)

	// 同一实例同时充当 Publisher 与 Subscriber
	return ps, ps, nil
}
