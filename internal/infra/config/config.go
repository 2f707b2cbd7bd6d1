package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env       string
	Server    ServerConfig
	DB        DBConfig
	Reddit    RedditConfig
	Moonshot  MoonshotConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MaxConns int32
	MinConns int32
}

// DSN builds the connection string for the pool.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedditConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type MoonshotConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig throttles report generation: Requests per Window per
// client IP, with at most MaxClients tracked at once.
type RateLimitConfig struct {
	Requests   int
	Window     time.Duration
	MaxClients int
}

// CacheConfig sizes the upstream response cache.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

func Load() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Port: getEnv("PORT", "9020"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "miner-db"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "miner_user"),
			Password: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "miner_password"),
			Name:     getEnv("DB_NAME", "miner_db"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Reddit: RedditConfig{
			BaseURL:   getEnv("REDDIT_BASE_URL", "https://old.reddit.com"),
			UserAgent: getEnv("REDDIT_USER_AGENT", "Mozilla/5.0 (compatible; idea-miner/1.0)"),
			Timeout:   time.Duration(getEnvInt("REDDIT_TIMEOUT_SECONDS", 20)) * time.Second,
		},
		Moonshot: MoonshotConfig{
			BaseURL: getEnvWithAlt("MOONSHOT_BASE_URL", "KIMI_BASE_URL", "https://api.moonshot.ai/v1"),
			APIKey:  getSecret("MOONSHOT_API_KEY", "MOONSHOT_API_KEY_FILE", ""),
			Model:   getEnv("MOONSHOT_MODEL", "kimi-k2.5"),
			Timeout: time.Duration(getEnvInt("MOONSHOT_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests:   getEnvInt("RATE_LIMIT_REQUESTS", 30),
			Window:     time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 5)) * time.Minute,
			MaxClients: getEnvInt("RATE_LIMIT_MAX_CLIENTS", 1024),
		},
		Cache: CacheConfig{
			Size: getEnvInt("REDDIT_CACHE_SIZE", 500),
			TTL:  time.Duration(getEnvInt("REDDIT_CACHE_TTL_MINUTES", 10)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	// Docker-style secret mount: env var points at a file.
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvWithAlt(key, altKey, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if value, ok := os.LookupEnv(altKey); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
