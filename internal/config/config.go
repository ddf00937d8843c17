package config

import (
	"os"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	Port          string
	GinMode       string
	LogLevel      string
	OpenAIAPIKey  string
	PostmarkToken string
	FromEmail     string
	AppBaseURL    string
}

func Load() *Config {
	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "freezer"),
		DBPassword:    getEnv("DB_PASSWORD", "freezer"),
		DBName:        getEnv("DB_NAME", "freezer_app"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		PostmarkToken: getEnv("POSTMARK_SERVER_TOKEN", ""),
		FromEmail:     getEnv("FROM_EMAIL", "noreply@freezer.app"),
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
