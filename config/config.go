package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"job-posting-backend/pkg/storage"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string
	DBUrl    string
	// DBSimpleProtocol disables prepared statements (PgBouncer transaction mode)
	DBSimpleProtocol bool
	JWTSecret        string
	FrontendURL      string
	AllowedOrigins   []string
	// Redis Configuration
	RedisURL         string
	RedisPassword    string
	CategoryCacheTTL time.Duration
	// NATS Configuration
	NATSURL string
	// Avatar storage
	S3 storage.S3Config
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
	// Swagger UI is served unless disabled
	SwaggerEnabled bool
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine outside local development
	_ = godotenv.Load()

	frontendURL := strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		DBSimpleProtocol: getEnvBool("DB_SIMPLE_PROTOCOL", false),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		FrontendURL:      frontendURL,
		AllowedOrigins:   getEnvList("ALLOWED_ORIGINS", []string{frontendURL}),
		// Redis Configuration
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		CategoryCacheTTL: getEnvDuration("CATEGORY_CACHE_TTL", 10*time.Minute),
		// NATS Configuration
		NATSURL: getEnv("NATS_URL", ""),
		S3: storage.S3Config{
			Provider:        storage.S3Provider(getEnv("S3_PROVIDER", string(storage.S3ProviderAWS))),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_AVATAR_BUCKET", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 20),   // 20 writes per window
		SwaggerEnabled:           getEnvBool("SWAGGER_ENABLED", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Jobs will be kept in memory.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("config: JWT_SECRET is required in production")
		}
		log.Println("WARNING: JWT_SECRET not configured. Write endpoints will reject every request.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.TrimRight(item, "/"))
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
