package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	OpenAI   OpenAIConfig
	Telegram TelegramConfig
	Database DatabaseConfig
	Report   ReportConfig
	LogJSON  bool
	LogDebug bool
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

type TelegramConfig struct {
	Token       string
	PollTimeout time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type ReportConfig struct {
	OutputDir string
}

// LoadAppConfig загружает конфигурацию приложения из переменных окружения
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_DSN", ""),
		},
		Report: ReportConfig{
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "reports"),
		},
		LogJSON:  getEnvAsBool("LOG_JSON", false),
		LogDebug: getEnvAsBool("LOG_DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
