package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds guide scanner settings.
// Load from env and/or a .env file; CLI flags override afterwards.
type Config struct {
	// InputPath is the XMLTV document (plain or compressed).
	InputPath string
	// PreferredLanguage drives every language-resolution decision.
	PreferredLanguage string
	// Channel is the default channel id for programme listings.
	Channel string
	// Window is how far past the window start programme listings reach
	// when no explicit end is given.
	Window time.Duration
	// MetricsListen is an optional host:port serving /metrics during a
	// scan. Empty = disabled.
	MetricsListen string
	// Verbose enables debug logging.
	Verbose bool
}

// Load reads config from environment. Call LoadEnvFile(".env") before Load()
// to use a .env file.
func Load() *Config {
	return &Config{
		InputPath:         os.Getenv("GUIDESCAN_INPUT"),
		PreferredLanguage: os.Getenv("GUIDESCAN_LANG"),
		Channel:           os.Getenv("GUIDESCAN_CHANNEL"),
		Window:            getEnvDuration("GUIDESCAN_WINDOW", 72*time.Hour),
		MetricsListen:     os.Getenv("GUIDESCAN_METRICS_LISTEN"),
		Verbose:           getEnvBool("GUIDESCAN_VERBOSE", false),
	}
}

func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
