package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the scam analyze service
type Config struct {
	// Server configuration
	Port           string
	AllowedOrigins string

	// LLM provider configuration
	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Blob store configuration
	BlobBaseURL string
	BlobToken   string

	// Image handling
	MaxImageBytes  int64
	MaxUploadBytes int64

	// Outbound HTTP (image fetch, model call, blob delete)
	RequestTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	config := &Config{
		// Server defaults
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		// LLM defaults
		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		// Blob store defaults
		BlobBaseURL: getEnv("BLOB_BASE_URL", ""),
		BlobToken:   getEnv("BLOB_TOKEN", ""),

		// Inline attachment ceiling (5 MiB) and upload ceiling (3 MiB)
		MaxImageBytes:  getInt64Env("MAX_IMAGE_BYTES", 5*1024*1024),
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 3*1024*1024),

		// Outbound call timeout
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return config
}

// CredentialEnvName returns the environment variable that holds the active
// provider's API key, for error messages.
func (c *Config) CredentialEnvName() string {
	if c.LLMProvider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getInt64Env gets an integer environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
