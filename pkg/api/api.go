// Package api 对外暴露 HTTP 运维接口的注册入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/internal/router"
)

// RegisterGroup 注册运维 API 路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	apiRoutes := e.Group("/api/v1")

	router.RegisterHealthCheckRoute(apiRoutes)
	router.RegisterVestingRoutes(apiRoutes)
	router.RegisterSchedulerRoutes(apiRoutes)

	return e
}
