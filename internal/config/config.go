package config

import (
	"os"
	"strings"
	"time"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

type Config struct {
	HTTPAddr    string
	MockAPIAddr string
	APIBaseURL  string
	APITimeout  time.Duration

	PostgresDSN  string
	RedisAddr    string
	AuthTokenKey string
	AuthToken    string
	KafkaBrokers []string
	NotifyTopic  string
	ServiceName  string

	LogMode string
	LogFile string

	RecentlyAddedTTL time.Duration
	FallbackFile     string
}

// Load reads the environment. Empty POSTGRES_DSN, REDIS_ADDR and
// KAFKA_BROKERS switch the matching integration off.
func Load() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8081"),
		MockAPIAddr: getenv("MOCKAPI_ADDR", ":5000"),
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:5000/api"),
		APITimeout:  getduration("API_TIMEOUT", 0),

		PostgresDSN:  getenv("POSTGRES_DSN", ""),
		RedisAddr:    getenv("REDIS_ADDR", ""),
		AuthTokenKey: getenv("AUTH_TOKEN_KEY", "auth:token"),
		AuthToken:    getenv("AUTH_TOKEN", ""),
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "")),
		NotifyTopic:  getenv("NOTIFY_TOPIC", catalog.TopicNotifications),
		ServiceName:  getenv("SERVICE_NAME", "seller-dashboard"),

		LogMode: getenv("LOG_MODE", "development"),
		LogFile: getenv("LOG_FILE", ""),

		RecentlyAddedTTL: getduration("RECENTLY_ADDED_TTL", 2*time.Second),
		FallbackFile:     getenv("FALLBACK_FILE", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getduration falls back to def when the value does not parse.
func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
