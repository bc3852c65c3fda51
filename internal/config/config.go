package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends the snapshot blob can live in.
const (
	BackendRedis    = "redis"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	StoreBackend   string
	StoreKey       string
	ResetStore     bool
	MySQLDSN       string
	PostgresDSN    string
	SQLitePath     string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	SwaggerHost    string
	LogLevel       string
	LogFormat      string
	LoginRateLimit int
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StoreBackend:   getEnv("STORE_BACKEND", BackendRedis),
		StoreKey:       getEnv("STORE_KEY", "bookswap-db-v1"),
		ResetStore:     getEnvBool("RESET_STORE", false),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/bookswap?charset=utf8mb4&parseTime=True&loc=Local"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "host=localhost user=bookswap password=bookswap dbname=bookswap port=5432 sslmode=disable TimeZone=UTC"),
		SQLitePath:     getEnv("SQLITE_PATH", "bookswap.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LoginRateLimit: getEnvInt("LOGIN_RATE_LIMIT", 5),
	}

	switch cfg.StoreBackend {
	case BackendRedis, BackendMySQL, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND: %q", cfg.StoreBackend)
	}
	if cfg.StoreKey == "" {
		return nil, fmt.Errorf("STORE_KEY must not be empty")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
