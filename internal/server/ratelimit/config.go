package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix names the environment variables read by LoadConfig.
const EnvPrefix = "SKILLMATCH_RATE_LIMIT_"

// EndpointConfig is the limit for requests matching Method and Path. A Path
// ending in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	// Limit is requests per Window; 0 means unlimited.
	Limit  int
	Window time.Duration
	// Burst is the bucket capacity, defaulting to Limit.
	Burst int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	Endpoints       []EndpointConfig
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Allowlist:       map[string]bool{},
		Blocklist:       map[string]bool{},
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// LoadConfig reads SKILLMATCH_RATE_LIMIT_* variables over DefaultConfig.
// Unparseable values are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = env("ENABLED", cfg.Enabled, strconv.ParseBool)
	if !cfg.Enabled {
		return cfg
	}
	cfg.DefaultLimit = env("DEFAULT_LIMIT", cfg.DefaultLimit, strconv.Atoi)
	cfg.DefaultWindow = env("DEFAULT_WINDOW", cfg.DefaultWindow, time.ParseDuration)
	cfg.CleanupInterval = env("CLEANUP_INTERVAL", cfg.CleanupInterval, time.ParseDuration)
	cfg.IdleTimeout = env("IDLE_TIMEOUT", cfg.IdleTimeout, time.ParseDuration)
	cfg.Allowlist = parseIPList(os.Getenv(EnvPrefix + "ALLOWLIST"))
	cfg.Blocklist = parseIPList(os.Getenv(EnvPrefix + "BLOCKLIST"))
	return cfg
}

// DefaultEndpointConfigs limits the analysis endpoints more tightly than reads.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Full analyses run two extractions each
		{Path: "/match", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/extract", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/recommend", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/learning-path", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/analyses/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 5},

		// Reads fall through to the default limit; /health is never limited
	}
}

func env[T any](name string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
