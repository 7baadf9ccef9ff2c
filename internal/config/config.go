package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is read once at startup.
type Config struct {
	Port    string
	GinMode string

	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool

	AllowedOrigins []string

	LogFile  string
	LogLevel string
}

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	cfg := Config{
		Port:          getEnv("PORT", "3000"),
		GinMode:       getEnv("GIN_MODE", ""),
		DatabaseURL:   getEnv("DATABASE_URL", getEnv("MONGODB_URI", "memory://")),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE", "session"),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		LogFile:       getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	// there is no fallback secret
	if cfg.SessionSecret == "" {
		return cfg, ErrMissingSessionSecret
	}
	return cfg, nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
