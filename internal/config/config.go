package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	DbMaxConns   int32
	StoreTimeout time.Duration

	JWTSecret string

	Log      string
	LogLevel string
	Env      string // dev|prod

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisAuthorTTL time.Duration

	ListingPerPage    int
	ListingMaxPerPage int
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	maxConns, err := strconv.Atoi(def(os.Getenv("DB_MAX_CONNS"), "20"))
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_CONNS: %w", err)
	}
	storeTimeout, err := time.ParseDuration(def(os.Getenv("STORE_TIMEOUT"), "5s"))
	if err != nil {
		return nil, fmt.Errorf("STORE_TIMEOUT: %w", err)
	}
	redisDB, err := strconv.Atoi(def(os.Getenv("REDIS_DB"), "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	authorTTL, err := time.ParseDuration(def(os.Getenv("REDIS_AUTHOR_TTL"), "10m"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_AUTHOR_TTL: %w", err)
	}
	perPage, err := strconv.Atoi(def(os.Getenv("LISTING_PER_PAGE"), "20"))
	if err != nil {
		return nil, fmt.Errorf("LISTING_PER_PAGE: %w", err)
	}
	maxPerPage, err := strconv.Atoi(def(os.Getenv("LISTING_MAX_PER_PAGE"), "100"))
	if err != nil {
		return nil, fmt.Errorf("LISTING_MAX_PER_PAGE: %w", err)
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		DbMaxConns:   int32(maxConns),
		StoreTimeout: storeTimeout,

		JWTSecret: os.Getenv("JWT_SECRET"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		RedisAuthorTTL: authorTTL,

		ListingPerPage:    perPage,
		ListingMaxPerPage: maxPerPage,
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty, author routes will reject every token")
	}

	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is not set, author names are not cached")
	}

	if c.StoreTimeout <= 0 {
		warnings = append(warnings, "STORE_TIMEOUT is not positive, store calls are unbounded")
	}

	if c.ListingPerPage <= 0 {
		warnings = append(warnings, "LISTING_PER_PAGE is not positive, using default 20")
		c.ListingPerPage = 20
	}

	return warnings, nil
}

// GetDSN: полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe: DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
