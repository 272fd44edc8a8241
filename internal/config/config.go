package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"livestock-invest-go/pkg/logger"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort       string
	Env            string
	Storage        string
	SeedDemoData   bool
	MetricsEnabled bool
	CORSOrigins    []string
	DB             DBConfig
	Auth           AuthConfig
	Risk           RiskConfig
	Redis          RedisConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

type RiskConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	env := getEnv("ENV", "development")
	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            env,
		Storage:        strings.ToLower(getEnv("STORAGE", StorageMemory)),
		SeedDemoData:   getEnvBool("SEED_DEMO_DATA", env == "development"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "livestock_invest"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("AUTH_TOKEN_SECRET", ""),
			TokenTTL:    getEnvDuration("AUTH_TOKEN_TTL", 12*time.Hour),
		},
		Risk: RiskConfig{
			APIKey:   getEnv("RISK_API_KEY", ""),
			Model:    getEnv("RISK_MODEL", "gpt-4o-mini"),
			BaseURL:  getEnv("RISK_BASE_URL", "https://api.openai.com/v1"),
			Timeout:  getEnvDuration("RISK_TIMEOUT", 8*time.Second),
			CacheTTL: getEnvDuration("RISK_CACHE_TTL", 6*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getEnv("REDIS_ADDR", "")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if c.Auth.TokenSecret == "" && c.Env != "development" {
		return fmt.Errorf("AUTH_TOKEN_SECRET is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
