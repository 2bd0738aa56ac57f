// Package handle 提供运维 API 请求处理器的实现.
package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/internal/vesting"
	"github.com/yeisme/vestvault/pkg/middleware"
)

// requireEngine 获取归属引擎，未注入时回 503 并中断请求.
func requireEngine(c *gin.Context) *vesting.Engine {
	engine := middleware.GetEngine(c)
	if engine == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "vesting engine not initialized"})
		return nil
	}

	return engine
}

// requireRefresher 获取配置刷新器，未注入时回 503 并中断请求.
func requireRefresher(c *gin.Context) *vesting.Refresher {
	refresher := middleware.GetRefresher(c)
	if refresher == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "refresher not initialized"})
		return nil
	}

	return refresher
}
