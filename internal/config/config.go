package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	LogLevel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	Model           string
	UpstreamTimeout time.Duration
	RelayURL        string
	ClientTimeout   time.Duration
	EvalConcurrency int
	NatsURL         string
	NatsToken       string
	DatabaseURL     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            envInt("PORT", 3001),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:           envStr("SCOUT_MODEL", "gpt-4o"),
		UpstreamTimeout: envSeconds("SCOUT_UPSTREAM_TIMEOUT", 120),
		RelayURL:        envStr("SCOUT_RELAY_URL", "http://localhost:3001"),
		ClientTimeout:   envSeconds("SCOUT_CLIENT_TIMEOUT", 180),
		EvalConcurrency: envInt("SCOUT_EVAL_CONCURRENCY", 0),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		DatabaseURL:     envStr("DATABASE_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envSeconds(key string, fallback int) time.Duration {
	n := envInt(key, fallback)
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
