package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Dispatch Config
	AcceptWindow        time.Duration `env:"ACCEPT_WINDOW" envDefault:"30s"`
	MaxEscalationRounds int           `env:"MAX_ESCALATION_ROUNDS" envDefault:"2"`
	SearchRadiusMeters  float64       `env:"SEARCH_RADIUS_METERS" envDefault:"10000"`
	RadiusGrowthFactor  float64       `env:"RADIUS_GROWTH_FACTOR" envDefault:"2.0"`
	NotifyRetryDelay    time.Duration `env:"NOTIFY_RETRY_DELAY" envDefault:"2s"`

	// Operator Alert Webhook Config
	AlertWebhookURL     string        `env:"ALERT_WEBHOOK_URL"`
	AlertWebhookSecret  string        `env:"ALERT_WEBHOOK_SECRET"`
	AlertWebhookTimeout time.Duration `env:"ALERT_WEBHOOK_TIMEOUT" envDefault:"5s"`
	AlertMaxRetries     int           `env:"ALERT_MAX_RETRIES" envDefault:"3"`
	AlertBaseDelay      time.Duration `env:"ALERT_BASE_DELAY" envDefault:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		AcceptWindow:           getEnvAsDuration("ACCEPT_WINDOW", 30*time.Second),
		MaxEscalationRounds:    getEnvAsInt("MAX_ESCALATION_ROUNDS", 2),
		SearchRadiusMeters:     getEnvAsFloat("SEARCH_RADIUS_METERS", 10000),
		RadiusGrowthFactor:     getEnvAsFloat("RADIUS_GROWTH_FACTOR", 2.0),
		NotifyRetryDelay:       getEnvAsDuration("NOTIFY_RETRY_DELAY", 2*time.Second),
		AlertWebhookURL:        os.Getenv("ALERT_WEBHOOK_URL"),
		AlertWebhookSecret:     os.Getenv("ALERT_WEBHOOK_SECRET"),
		AlertWebhookTimeout:    getEnvAsDuration("ALERT_WEBHOOK_TIMEOUT", 5*time.Second),
		AlertMaxRetries:        getEnvAsInt("ALERT_MAX_RETRIES", 3),
		AlertBaseDelay:         getEnvAsDuration("ALERT_BASE_DELAY", time.Second),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.MaxEscalationRounds < 0 {
		return nil, fmt.Errorf("MAX_ESCALATION_ROUNDS must not be negative")
	}

	if cfg.RadiusGrowthFactor < 1 {
		return nil, fmt.Errorf("RADIUS_GROWTH_FACTOR must be >= 1")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
