package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string // development | production
	Addr    string
	DataDir string
	// DatabaseURL switches the record store to the postgres backend when set.
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// login rate limiting
	LoginRPS   float64
	LoginBurst int

	// upload policy
	AllowedFileTypes []string
	MaxFileSize      int64
}

// Load reads .env (if present) and the environment. JWT_SECRET is the only
// required value.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg := &Config{
		Env:         env("APP_ENV", "development"),
		Addr:        ":" + env("PORT", "8080"),
		DataDir:     env("DATA_DIR", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   secret,
		LogLevel:    env("LOG_LEVEL", "info"),
		LoginRPS:    envFloat("LOGIN_RPS", 5),
		LoginBurst:  envInt("LOGIN_BURST", 10),
		MaxFileSize: int64(envInt("MAX_FILE_SIZE", 5<<20)),
	}
	if raw := os.Getenv("ALLOWED_FILE_TYPES"); raw != "" {
		for _, ext := range strings.Split(raw, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.AllowedFileTypes = append(cfg.AllowedFileTypes, ext)
		}
	}
	return cfg, nil
}

func env(key, fallback string) string {
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
