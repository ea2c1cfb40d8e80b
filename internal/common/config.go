package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/pdf-extract/constants"
)

// Config holds all application configuration
type Config struct {
	PDF   PDFConfig
	LLM   LLMConfig
	Cache CacheConfig
}

// PDFConfig holds text-extraction configuration
type PDFConfig struct {
	Pdftotext string
}

// LLMConfig holds fallback-tier configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// CacheConfig holds result-cache configuration. An empty Path selects the
// in-memory cache; a non-empty Path selects the persistent SQLite cache.
type CacheConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		PDF: PDFConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", constants.DefaultPdftotext),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-5-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Cache: CacheConfig{
			Path: getEnv("CACHE_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
