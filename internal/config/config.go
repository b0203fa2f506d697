package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	JWTSecret      string
	AllowedOrigins []string

	// Prep-time heuristic: estimated_minutes = base + perOrder * active orders.
	// A rough backpressure signal for the front of house, not an SLA.
	EstimateBaseMinutes     int
	EstimatePerOrderMinutes int
}

func Load() *Config {
	// Optional .env for local development; real env vars win.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8081"),
		JWTSecret:               getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AllowedOrigins:          splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		EstimateBaseMinutes:     getEnvInt("ESTIMATE_BASE_MINUTES", 15),
		EstimatePerOrderMinutes: getEnvInt("ESTIMATE_PER_ORDER_MINUTES", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
