// Package app 提供应用程序的初始化和启动.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/yeisme/vestvault/pkg/api"
	"github.com/yeisme/vestvault/pkg/configs"
	"github.com/yeisme/vestvault/pkg/internal/executor"
	"github.com/yeisme/vestvault/pkg/internal/fordefi"
	"github.com/yeisme/vestvault/pkg/internal/jobs"
	"github.com/yeisme/vestvault/pkg/internal/router"
	"github.com/yeisme/vestvault/pkg/internal/signer"
	"github.com/yeisme/vestvault/pkg/internal/storage"
	"github.com/yeisme/vestvault/pkg/internal/vesting"
	"github.com/yeisme/vestvault/pkg/log"
	"github.com/yeisme/vestvault/pkg/metrics"
	"github.com/yeisme/vestvault/pkg/middleware"
	"github.com/yeisme/vestvault/pkg/scheduler"
	"github.com/yeisme/vestvault/pkg/tracing"
)

type App struct {
	Engine *gin.Engine

	config    *configs.AppConfig
	manager   *storage.Manager
	vest      *vesting.Engine
	refresher *vesting.Refresher
	sched     *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 归属执行链路：密钥 -> 签名器 -> 托管平台客户端 -> 执行器 -> 调度引擎
	sig := signer.New(manager.GetSecretClient())
	client := fordefi.New(config, manager.GetSecretClient(), sig)
	exec := executor.New(client)
	events := vesting.NewEventPublisher(manager.GetMQClient().Publisher(), config.Events)
	vest := vesting.EngineFromConfig(config, exec, events)
	refresher := vesting.NewRefresher(vest, manager.GetStoreClient(), config.Refresh, events)

	// 周期任务调度器与归属引擎共用参考时区
	sched, err := scheduler.NewScheduler(gocron.WithLocation(config.Scheduler.GetLocation()))
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager, refresher); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		middleware.GinLoggerMiddleware(),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.VestingMiddleware(vest, refresher),
	)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	api.RegisterGroup(engine)
	router.RegisterSwaggerRoute(engine)

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		vest:      vest,
		refresher: refresher,
		sched:     sched,
	}
}

// Run 启动归属引擎、周期任务与 HTTP 服务器，收到 SIGINT/SIGTERM 后优雅退出.
func (a *App) Run() error {
	l := log.Logger()

	ctx, stop := signal.NotifyContext(contextPkg.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动时先做一轮配置拉取，失败不阻塞启动，由周期刷新补齐
	if _, err := a.refresher.Refresh(ctx); err != nil {
		l.Error().Err(err).Msg("initial config refresh failed")
	}

	go func() {
		if err := a.vest.Run(ctx); err != nil && !errors.Is(err, contextPkg.Canceled) {
			l.Error().Err(err).Msg("vesting engine exited")
		}
	}()

	a.sched.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), a.config.Server.GetTimeoutDuration())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Warn().Err(err).Msg("http server shutdown error")
		}
	}()

	l.Info().Str("addr", srv.Addr).Msg("http server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := a.sched.Stop(); err != nil {
		l.Warn().Err(err).Msg("scheduler stop error")
	}

	if err := a.manager.Close(); err != nil {
		l.Warn().Err(err).Msg("storage close error")
	}

	l.Info().Msg("shutdown complete")

	return nil
}
