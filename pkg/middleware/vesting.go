package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/internal/vesting"
)

type (
	engineKey    struct{}
	refresherKey struct{}
)

// VestingMiddleware 将归属引擎与配置刷新器注入到context中.
func VestingMiddleware(engine *vesting.Engine, refresher *vesting.Refresher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), engineKey{}, engine)
		ctx = context.WithValue(ctx, refresherKey{}, refresher)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetEngine 从context中获取归属引擎.
func GetEngine(c *gin.Context) *vesting.Engine {
	if engine, ok := c.Request.Context().Value(engineKey{}).(*vesting.Engine); ok {
		return engine
	}

	return nil
}

// GetRefresher 从context中获取配置刷新器.
func GetRefresher(c *gin.Context) *vesting.Refresher {
	if refresher, ok := c.Request.Context().Value(refresherKey{}).(*vesting.Refresher); ok {
		return refresher
	}

	return nil
}
