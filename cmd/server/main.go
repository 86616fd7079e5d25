package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/config"
	"github.com/RashmiFernando/study-sphere/internal/api/handler"
	"github.com/RashmiFernando/study-sphere/internal/api/middleware"
	"github.com/RashmiFernando/study-sphere/internal/api/router"
	"github.com/RashmiFernando/study-sphere/internal/job"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/database"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	applogger "github.com/RashmiFernando/study-sphere/pkg/logger"
	"github.com/RashmiFernando/study-sphere/pkg/metrics"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
	"github.com/RashmiFernando/study-sphere/pkg/redis"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
	"github.com/RashmiFernando/study-sphere/pkg/validation"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("STUDY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting study-sphere",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("id_strategy", cfg.Feature.IDStrategy),
		zap.Bool("enforce_auth", cfg.Feature.EnforceAuth),
	)

	// 3. 连接 PostgreSQL（职员账号）并执行迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// 4. 连接 MongoDB（教务集合）并建立索引
	mongoClient, mdb, err := mongodb.Connect(&cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, mdb); err != nil {
		indexCancel()
		logger.Fatal("ensure mongo indexes failed", zap.Error(err))
	}
	indexCancel()

	// 5. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var (
		blacklist service.TokenBlacklist
		checker   middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and login rate limit disabled", zap.Error(err))
		rdb = nil
	} else {
		blacklist, checker, limiter = rdb, rdb, rdb
	}

	// 6. 初始化 JWT 管理器与请求校验
	jwtMgr := jwt.NewManager(&cfg.Auth)
	if err := validation.Register(); err != nil {
		logger.Fatal("register validators failed", zap.Error(err))
	}

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db, mdb)
	ids, err := seqid.New(cfg.Feature.IDStrategy, repo.Sequence)
	if err != nil {
		logger.Fatal("id generator", zap.Error(err))
	}
	svc := service.NewService(repo, ids, jwtMgr, blacklist, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(router.Deps{
		Config:    cfg,
		Handler:   h,
		JWT:       jwtMgr,
		Blacklist: checker,
		Limiter:   limiter,
		Metrics:   metrics.New(),
		Logger:    logger,
	})

	// 9. 定时任务：刷新教室使用率
	scheduler, err := job.NewScheduler(cfg.Feature.UtilizationRefreshCron, svc.LectureRoom, logger)
	if err != nil {
		logger.Fatal("utilization job", zap.Error(err))
	}
	scheduler.Start()

	// 10. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// 11. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		logger.Warn("utilization job still running at shutdown")
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("postgres close", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
