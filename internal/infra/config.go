package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment
// variables. Built once at startup and passed by reference; business logic
// never reads the environment directly.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	FrontendOrigin    string
	PromptProvider    string
	GroqAPIKey        string
	GroqModel         string
	GroqBaseURL       string
	GroqTimeout       time.Duration
	EnablePromptGuard bool
	RunListLimit      int
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		FrontendOrigin:    getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		PromptProvider:    getEnv("PROMPT_PROVIDER", "groq"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqModel:         getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqTimeout:       time.Second * time.Duration(getEnvInt("GROQ_TIMEOUT_SECONDS", 15)),
		EnablePromptGuard: getEnvBool("ENABLE_PROMPT_GUARD", false),
		RunListLimit:      getEnvInt("RUN_LIST_LIMIT", 20),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
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

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
