package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	PostgresConnStr string
	SessionLifetime time.Duration
	SessionSecure   bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		SessionLifetime: time.Duration(getEnvAsInt("SESSION_LIFETIME_HOURS", 24*7)) * time.Hour,
		SessionSecure:   getEnv("ENV", "development") == "production",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
