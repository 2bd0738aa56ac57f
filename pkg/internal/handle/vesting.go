package handle

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/model"
	"github.com/yeisme/vestvault/pkg/internal/types"
	"github.com/yeisme/vestvault/pkg/internal/vesting"
	"github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/rule"
)

// VestingJobs 返回当前调度中的全部归属计划.
//
//	@Summary	归属计划列表
//	@Tags		归属
//	@Produce	json
//	@Success	200	{object}	types.VestingJobsResponse
//	@Router		/vesting/jobs [get]
func VestingJobs(c *gin.Context) {
	engine := requireEngine(c)
	if engine == nil {
		return
	}

	jobs := engine.Jobs()
	c.JSON(http.StatusOK, types.VestingJobsResponse{Jobs: jobs, Total: len(jobs)})
}

// VestingJob 返回单个归属计划的状态快照.
//
//	@Summary	查询归属计划
//	@Tags		归属
//	@Produce	json
//	@Param		vault	path		string	true	"vault 标识"
//	@Param		asset	path		string	true	"资产标识"
//	@Success	200		{object}	vesting.JobView
//	@Failure	404		{object}	map[string]string
//	@Router		/vesting/jobs/{vault}/{asset} [get]
func VestingJob(c *gin.Context) {
	engine := requireEngine(c)
	if engine == nil {
		return
	}

	identity := c.Param("vault") + "/" + c.Param("asset")

	view, ok := engine.Job(identity)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// VestingRemove 手动将计划移出调度，存储中的配置不受影响.
//
//	@Summary	移除归属计划
//	@Tags		归属
//	@Produce	json
//	@Param		vault	path		string	true	"vault 标识"
//	@Param		asset	path		string	true	"资产标识"
//	@Success	200		{object}	types.RemoveResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/vesting/jobs/{vault}/{asset} [delete]
func VestingRemove(c *gin.Context) {
	engine := requireEngine(c)
	if engine == nil {
		return
	}

	identity := c.Param("vault") + "/" + c.Param("asset")

	if !engine.Remove(identity, "manual") {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, types.RemoveResponse{Identity: identity, Removed: true})
}

// VestingPreview 试算一个配置：解析、换算首次执行时间并构造将要
// 广播的交易体，但不登记也不发送.
//
//	@Summary	归属计划试算
//	@Tags		归属
//	@Accept		json
//	@Produce	json
//	@Param		req	body		types.PreviewRequest	true	"计划配置"
//	@Success	200	{object}	types.PreviewResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	422	{object}	map[string]string
//	@Router		/vesting/preview [post]
func VestingPreview(c *gin.Context) {
	l := log.Logger()

	var req types.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	if err := rule.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": rule.Errors(err)})
		return
	}

	cfg := model.VestingConfig{
		VaultID:     req.VaultID,
		Asset:       req.Asset,
		Ecosystem:   model.Ecosystem(req.Ecosystem),
		Kind:        model.AssetKind(req.Kind),
		Chain:       req.Chain,
		Amount:      req.Amount,
		Note:        req.Note,
		CliffDays:   req.CliffDays,
		VestingTime: req.VestingTime,
		Destination: req.Destination,
	}

	plan, err := executor.Resolve(cfg)
	if err != nil {
		if errors.Is(err, executor.ErrUnsupportedConfig) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	loc := configs.GetConfig().Scheduler.GetLocation()

	firstRun, err := vesting.ComputeFirstRun(time.Now(), cfg.CliffDays, cfg.VestingTime, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := executor.BuildTransaction(plan)
	if err != nil {
		l.Error().Err(err).Str("identity", plan.Identity()).Msg("build transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, types.PreviewResponse{
		Identity:    plan.Identity(),
		Chain:       plan.Chain,
		Kind:        string(plan.Kind),
		Decimals:    plan.Decimals,
		Amount:      plan.Amount.String(),
		RawValue:    executor.RawValue(plan.Amount, plan.Decimals),
		FirstRun:    firstRun,
		Transaction: body,
	})
}

// VestingTokens 返回代币登记表.
//
//	@Summary	已登记代币
//	@Tags		归属
//	@Produce	json
//	@Success	200	{object}	types.TokensResponse
//	@Router		/vesting/tokens [get]
func VestingTokens(c *gin.Context) {
	registered := executor.ListRegisteredTokens()

	tokens := make([]types.TokenEntry, 0, len(registered))
	for _, t := range registered {
		tokens = append(tokens, types.TokenEntry{
			Chain:    t.Chain,
			Asset:    t.Asset,
			Address:  t.Address,
			Decimals: t.Decimals,
		})
	}

	c.JSON(http.StatusOK, types.TokensResponse{Tokens: tokens, Total: len(tokens)})
}

// VestingRefresh 手动触发一轮配置刷新.
//
//	@Summary	触发配置刷新
//	@Tags		归属
//	@Produce	json
//	@Success	200	{object}	types.RefreshResponse
//	@Failure	502	{object}	map[string]string
//	@Router		/vesting/refresh [post]
func VestingRefresh(c *gin.Context) {
	l := log.Logger()

	refresher := requireRefresher(c)
	if refresher == nil {
		return
	}

	result, err := refresher.Refresh(c.Request.Context())
	if err != nil {
		l.Error().Err(err).Msg("manual refresh failed")

		if errors.Is(err, vesting.ErrConfigFetch) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, types.RefreshResponse{Result: result})
}
