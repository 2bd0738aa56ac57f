package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/configs"
	ctxPkg "github.com/yeisme/vestvault/pkg/context"
	"github.com/yeisme/vestvault/pkg/internal/types"
	"github.com/yeisme/vestvault/pkg/middleware"
)

const timeout = 2 * time.Second

// Health 服务级健康信息.
//
//	@Summary	服务健康
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	types.HealthResponse
//	@Router		/health [get]
func Health(c *gin.Context) {
	cfg := configs.GetConfig()

	resp := types.HealthResponse{
		Status:  "ok",
		Service: configs.AppName,
		Version: configs.AppVersion,
		Store:   string(cfg.Store.Type),
		Secrets: string(cfg.Secrets.Provider),
	}

	if engine := middleware.GetEngine(c); engine != nil {
		resp.Jobs = len(engine.Jobs())
	}

	c.JSON(http.StatusOK, resp)
}

// HealthStore 配置存储健康检查.
//
//	@Summary	存储健康
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	types.ComponentHealth
//	@Failure	503	{object}	types.ComponentHealth
//	@Router		/health/store [get]
func HealthStore(c *gin.Context) {
	sc := ctxPkg.GetStoreClient(c.Request.Context())
	if sc == nil {
		c.JSON(http.StatusServiceUnavailable, types.ComponentHealth{
			Component: "store", Status: "unhealthy", Error: "store client not initialized",
		})

		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if err := sc.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, types.ComponentHealth{
			Component: "store", Status: "unhealthy", Error: err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, types.ComponentHealth{Component: "store", Status: "ok"})
}

// HealthMQ 消息队列健康检查.
//
//	@Summary	消息队列健康
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	types.ComponentHealth
//	@Failure	503	{object}	types.ComponentHealth
//	@Router		/health/mq [get]
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil {
		// 事件未启用时 MQ 不初始化，这里如实报告而不视为故障
		if !configs.GetConfig().Events.Enabled {
			c.JSON(http.StatusOK, types.ComponentHealth{Component: "mq", Status: "disabled"})
			return
		}

		c.JSON(http.StatusServiceUnavailable, types.ComponentHealth{
			Component: "mq", Status: "unhealthy", Error: "mq client not initialized",
		})

		return
	}

	c.JSON(http.StatusOK, types.ComponentHealth{Component: "mq", Status: "ok"})
}
