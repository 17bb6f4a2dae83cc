package v1

import (
	"net/http"
	"time"

	"job-posting-backend/config"
	"job-posting-backend/internal/delivery/http/middleware"
	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"
	"job-posting-backend/internal/usecase"
	"job-posting-backend/pkg/audit"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC       domain.JobUsecase
	PostAreaUC  domain.PostAreaUsecase
	JobCreator  JobCreator
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
	Audit       *audit.Logger
	RateLimiter *middleware.RateLimiter
	// Redis backs the rate limiter when RateLimiter is nil. May be nil.
	Redis *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Redis, deps.Audit)
	}
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.S3.PublicBaseURL))
	globalLimit := middleware.DefaultRateLimitConfig()
	if deps.Config.RateLimitGlobalThreshold > 0 {
		globalLimit.Limit = deps.Config.RateLimitGlobalThreshold
	}
	if window > 0 {
		globalLimit.Window = window
	}
	r.Use(limiter.Middleware(globalLimit))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	if deps.Config.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public routes
	NewActiveJobHandler(v1, deps.JobUC)
	NewPostAreaHandler(v1, deps.PostAreaUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.Audit))
	protected.Use(limiter.Middleware(middleware.WriteRateLimitConfig(deps.Config.RateLimitWriteThreshold, window)))
	{
		NewJobHandler(v1, protected, deps.JobUC, deps.JobCreator)
	}

	return r
}
