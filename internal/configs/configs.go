package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	AppURL                 string
	Location               *time.Location
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	RateLimitStore         string
	RedisAddr              string
	RedisKeyPrefix         string
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogFormat              string
	JWTSecret              string
	AccessTokenTTL         time.Duration
	AdminUsername          string
	AdminPassword          string
	CORSOrigins            []string
}

// Load reads the configuration from the environment once. The returned value
// is validated and is not re-read afterwards.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	var errs []error

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	ttlMinutes, err := getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	errs = append(errs, err)
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	errs = append(errs, err)
	shutdown, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	errs = append(errs, err)

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		Location:               loc,
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RateLimit:              rateLimit,
		RateLimitStore:         strings.ToLower(getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory)),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task_tracker"),
		ShutdownTimeoutSeconds: shutdown,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "console"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		AccessTokenTTL:         time.Duration(ttlMinutes) * time.Minute,
		AdminUsername:          getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:          os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "http://localhost,http://localhost:5173")),
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var errs []error

	if cfg.AppURL == "" {
		errs = append(errs, errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)"))
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres))
	}
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.RateLimitStore != RateLimitStoreMemory && cfg.RateLimitStore != RateLimitStoreRedis {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_STORE must be %q or %q", RateLimitStoreMemory, RateLimitStoreRedis))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if cfg.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0"))
	}
	if cfg.AdminUsername == "" {
		errs = append(errs, errors.New("ADMIN_USERNAME must not be empty"))
	}
	if cfg.Location == nil {
		errs = append(errs, errors.New("APP_TIMEZONE must name a valid location"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
