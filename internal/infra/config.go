package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	StorageBaseURL   string
	StoragePath      string
	TogetherAPIKey   string
	TogetherBaseURL  string
	ImageModel       string
	ChatModel        string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	OCRAPIKey        string
	OCRBaseURL       string
	RedisAddr        string
	NotifyChannel    string
	ProviderTimeout  time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	MaxAttempts      int
	RetryBackoffBase time.Duration
	CORSOrigins      []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Required credentials are checked here so a
// misconfigured process fails at startup, not on the first request.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StoragePath:      getEnv("STORAGE_PATH", "./storage"),
		TogetherAPIKey:   os.Getenv("TOGETHER_API_KEY"),
		TogetherBaseURL:  getEnv("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
		ImageModel:       getEnv("IMAGE_MODEL", "black-forest-labs/FLUX.1-schnell-Free"),
		ChatModel:        getEnv("CHAT_MODEL", "meta-llama/Llama-Vision-Free"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-pro"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OCRAPIKey:        os.Getenv("OCR_API_KEY"),
		OCRBaseURL:       getEnv("OCR_BASE_URL", "https://api.ocr.space"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		NotifyChannel:    getEnv("NOTIFY_CHANNEL", "brandforge:activity"),
		ProviderTimeout:  time.Second * time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 45)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		MaxAttempts:      getEnvInt("GENERATION_MAX_ATTEMPTS", 3),
		RetryBackoffBase: time.Millisecond * time.Duration(getEnvInt("RETRY_BACKOFF_BASE_MS", 400)),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
	cfg.StorageBaseURL = getEnv("STORAGE_BASE_URL", "http://localhost:"+cfg.Port+"/static")

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TogetherAPIKey == "" {
		return nil, fmt.Errorf("TOGETHER_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
