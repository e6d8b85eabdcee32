package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	RewriteTimeout time.Duration

	SettingsFile       string
	LinkSigningSecret  []byte
	TokenEncryptionKey string

	FeedCapacity int
	FetchDelay   time.Duration
	PostDelay    time.Duration
	LinkDelay    time.Duration
	ScheduleTZ   string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64

	AutoStart bool
}

// LoadEnvFiles merges .env and .env.dev into the process environment.
// Missing files are skipped; already-set variables win.
func LoadEnvFiles() []string {
	var loaded []string
	for _, file := range []string{".env", ".env.dev"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			continue
		}
		loaded = append(loaded, file)
	}
	return loaded
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		RewriteTimeout: getEnvDuration("REWRITE_TIMEOUT", 20*time.Second),

		SettingsFile:       getEnv("SETTINGS_FILE", ""),
		LinkSigningSecret:  []byte(getEnv("LINK_SIGNING_SECRET", "socialstream-dev-link-secret")),
		TokenEncryptionKey: getEnv("TOKEN_ENCRYPTION_KEY", ""),

		FeedCapacity: getEnvInt("FEED_CAPACITY", 50),
		FetchDelay:   getEnvDuration("FETCH_DELAY", 3*time.Second),
		PostDelay:    getEnvDuration("POST_DELAY", 1500*time.Millisecond),
		LinkDelay:    getEnvDuration("LINK_DELAY", 1200*time.Millisecond),
		ScheduleTZ:   getEnv("SCHEDULE_TZ", "Local"),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		MaxBodyBytes:   1 << 20, // 1 MB

		AutoStart: getEnvBool("AUTO_START", false),
	}
}

// Location resolves ScheduleTZ, falling back to the local zone.
func (c *Config) Location() *time.Location {
	if c.ScheduleTZ == "" || strings.EqualFold(c.ScheduleTZ, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ScheduleTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
