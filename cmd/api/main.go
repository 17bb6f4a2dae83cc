package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-posting-backend/config"
	_ "job-posting-backend/docs" // Important for Swagger
	"job-posting-backend/internal/delivery/http/middleware"
	v1 "job-posting-backend/internal/delivery/http/v1"
	"job-posting-backend/internal/domain"
	"job-posting-backend/internal/repository/cache"
	"job-posting-backend/internal/repository/memory"
	"job-posting-backend/internal/repository/postgres"
	"job-posting-backend/internal/usecase"
	"job-posting-backend/pkg/audit"
	"job-posting-backend/pkg/database"
	"job-posting-backend/pkg/logger"
	"job-posting-backend/pkg/messaging"
	redisclient "job-posting-backend/pkg/redis"
	"job-posting-backend/pkg/storage"
	"job-posting-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title           Job Posting API
// @version         1.0
// @description     Job posting backend: validation, categories, slugs and commissions.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(run())
}

// run wires the application and blocks until the server stops. It returns
// the process exit code so deferred cleanup runs before exiting.
func run() int {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	auditLog := audit.Init("job-posting-backend", cfg.AppEnv)
	defer auditLog.Sync()
	logger.Log.Info("Starting job posting backend", "port", cfg.Port, "env", cfg.AppEnv)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Repositories
	var (
		jobRepo  domain.JobRepository
		areaRepo domain.PostAreaRepository
	)
	if cfg.DBUrl != "" {
		opts := database.DefaultPoolOptions()
		opts.SimpleProtocol = cfg.DBSimpleProtocol
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, opts)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			return 1
		}
		defer dbPool.Close()

		jobRepo = postgres.NewJobRepository(dbPool)
		areaRepo = postgres.NewPostAreaRepository(dbPool)
		checks["database"] = dbPool.Ping
	} else {
		jobRepo = memory.NewJobRepository()
		areaRepo = memory.NewPostAreaRepository()
	}

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisclient.NewClient(ctx, redisclient.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			areaRepo = cache.NewPostAreaRepository(areaRepo, cache.NewRedisStore(redisClient), cfg.CategoryCacheTTL)
			checks["redis"] = func(ctx context.Context) error {
				return redisclient.HealthCheck(ctx, redisClient)
			}
		}
	}

	// 5. Setup Event Publisher (optional)
	var publisher domain.JobEventPublisher
	if cfg.NATSURL != "" {
		natsLogger, err := zap.NewProduction()
		if err != nil {
			natsLogger = zap.NewNop()
		}
		natsPublisher, err := messaging.NewNATSPublisher(cfg.NATSURL, natsLogger)
		if err != nil {
			logger.Log.Warn("NATS unavailable, job events will not be published", "error", err)
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	// 6. Setup Avatar Storage (optional)
	var avatars domain.AvatarStore
	if cfg.S3.Enabled() {
		s3Client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			logger.Log.Warn("Object storage unavailable, avatar uploads disabled", "error", err)
		} else {
			avatars = storage.NewS3AvatarStore(s3Client, cfg.S3)
		}
	}

	// 7. Setup UseCases
	validate := validation.New()
	jobUC := usecase.NewJobUsecase(jobRepo, areaRepo, validate, avatars, auditLog)
	postAreaUC := usecase.NewPostAreaUsecase(areaRepo)
	createJobSvc := usecase.NewCreateJobService(jobRepo, areaRepo, validate, publisher, auditLog)
	healthUC := usecase.NewHealthUsecase(checks)

	limiter := middleware.NewRateLimiter(redisClient, auditLog)
	limiter.StartCleanup(ctx, time.Minute)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:       jobUC,
		PostAreaUC:  postAreaUC,
		JobCreator:  createJobSvc,
		HealthUC:    healthUC,
		Config:      cfg,
		Audit:       auditLog,
		RateLimiter: limiter,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, quit, 5*time.Second); err != nil {
		logger.Log.Error("Server stopped", "error", err)
		return 1
	}

	logger.Log.Info("Server exiting")
	return 0
}
