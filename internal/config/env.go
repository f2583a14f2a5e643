package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Text generation backend
	OllamaURL   string
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int

	// Google Calendar
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Agent behavior
	HistoryWindow       int
	DeleteLookaheadDays int
	Timezone            string

	// Server
	HTTPPort int
	DBPath   string
}

func LoadFromEnv() *Config {
	return &Config{
		OllamaURL:   getEnvOrDefault("CHATCAL_OLLAMA_URL", "http://127.0.0.1:11434/api/generate"),
		Model:       getEnvOrDefault("CHATCAL_MODEL", "mistral"),
		Temperature: getEnvAsFloatOrDefault("CHATCAL_TEMPERATURE", 0.1),
		TopP:        getEnvAsFloatOrDefault("CHATCAL_TOP_P", 0.9),
		TopK:        getEnvAsIntOrDefault("CHATCAL_TOP_K", 40),
		MaxTokens:   getEnvAsIntOrDefault("CHATCAL_MAX_TOKENS", 1024),

		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),

		HistoryWindow:       getEnvAsIntOrDefault("CHATCAL_HISTORY_WINDOW", 7),
		DeleteLookaheadDays: getEnvAsIntOrDefault("CHATCAL_DELETE_LOOKAHEAD_DAYS", 14),
		Timezone:            os.Getenv("CHATCAL_TIMEZONE"),

		HTTPPort: getEnvAsIntOrDefault("CHATCAL_HTTP_PORT", 8080),
		DBPath:   getEnvOrDefault("CHATCAL_DB_PATH", "./chatcal.db"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
