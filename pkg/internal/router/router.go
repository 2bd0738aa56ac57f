// Package router 管理路由配置，将路径绑定到 pkg/internal/handle 提供的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/internal/handle"
)

// RegisterVestingRoutes 注册归属计划相关路由.
//
//	GET    /vesting/jobs                  -> 计划列表
//	GET    /vesting/jobs/:vault/:asset    -> 单个计划
//	DELETE /vesting/jobs/:vault/:asset    -> 手动移除
//	POST   /vesting/preview               -> 配置试算
//	GET    /vesting/tokens                -> 代币登记表
//	POST   /vesting/refresh               -> 手动触发刷新
func RegisterVestingRoutes(g *gin.RouterGroup) {
	vestingRoutes := g.Group("/vesting")
	{
		vestingRoutes.GET("/jobs", handle.VestingJobs)
		vestingRoutes.GET("/jobs/:vault/:asset", handle.VestingJob)
		vestingRoutes.DELETE("/jobs/:vault/:asset", handle.VestingRemove)
		vestingRoutes.POST("/preview", handle.VestingPreview)
		vestingRoutes.GET("/tokens", handle.VestingTokens)
		vestingRoutes.POST("/refresh", handle.VestingRefresh)
	}
}
