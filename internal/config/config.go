package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// AI providers
	AIProvider    string
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string
	GeminiAPIKey  string
	GeminiModel   string
	LLMTimeout    time.Duration
	StreamDelay   time.Duration
	ChatRateLimit int

	// Storage
	StorageType      string
	DataPath         string
	StoragePartition string
	DatabaseURL      string
	RedisURL         string
	RedisPoolSize    int

	// Identity
	JWTSecret string

	// Google Fit OAuth client
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "4000"),
		Env:                getEnvOrDefault("ENV", "development"),
		AIProvider:         strings.ToLower(getEnvOrDefault("AI_PROVIDER", "auto")),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqModel:          getEnvOrDefault("GROQ_MODEL", "mixtral-8x7b-32768"),
		GroqBaseURL:        getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMTimeout:         time.Duration(getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 20)) * time.Second,
		StreamDelay:        time.Duration(getEnvAsIntOrDefault("STREAM_DELAY_MS", 30)) * time.Millisecond,
		ChatRateLimit:      getEnvAsIntOrDefault("CHAT_RATE_LIMIT_PER_MIN", 30),
		StorageType:        strings.ToLower(getEnvOrDefault("STORAGE_TYPE", "file")),
		DataPath:           getEnvOrDefault("DATA_PATH", "./data/data.json"),
		StoragePartition:   strings.ToLower(getEnvOrDefault("STORAGE_PARTITION", "user")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisPoolSize:      getEnvAsIntOrDefault("REDIS_POOL_SIZE", 10),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

// ResolveProvider returns the AI provider to use for this process: "groq",
// "gemini" or "none". "auto" prefers Groq, then Gemini.
func (c *Config) ResolveProvider() string {
	switch c.AIProvider {
	case "groq":
		if c.GroqAPIKey != "" {
			return "groq"
		}
	case "gemini":
		if c.GeminiAPIKey != "" {
			return "gemini"
		}
	case "none":
	default:
		if c.GroqAPIKey != "" {
			return "groq"
		}
		if c.GeminiAPIKey != "" {
			return "gemini"
		}
	}
	return "none"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
