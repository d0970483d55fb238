package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string

	StoreURL       string
	StoreAuthToken string

	AdminIDs []int64

	LogLevel      string
	UpdateTimeout int
}

// Load reads configuration from the environment, with an optional .env file.
// The bot token is the only required value.
func Load() (*Config, error) {
	godotenv.Load(".env")

	cfg := &Config{
		BotToken:       getEnvString("GATEWARDEN_BOT_TOKEN", ""),
		StoreURL:       getEnvString("GATEWARDEN_STORE_URL", "gatewarden.db"),
		StoreAuthToken: getEnvString("GATEWARDEN_STORE_AUTH_TOKEN", ""),
		AdminIDs:       getEnvInt64Slice("GATEWARDEN_ADMIN_IDS", nil),
		LogLevel:       getEnvString("GATEWARDEN_LOG_LEVEL", "info"),
		UpdateTimeout:  getEnvInt("GATEWARDEN_UPDATE_TIMEOUT", 30),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("GATEWARDEN_BOT_TOKEN is required")
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64Slice(key string, defaultValue []int64) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
