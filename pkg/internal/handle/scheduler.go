package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/middleware"
)

// SchedulerJobs 返回所有周期任务的信息（配置刷新等）.
//
//	@Summary	周期任务列表
//	@Tags		调度
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not initialized"})
		return
	}

	jobs := sched.GetJobInfos()
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}
