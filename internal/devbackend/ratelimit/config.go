package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one path and method.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends with "/"
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit
}

// LoadConfig reads DEV_RATE_LIMIT_* variables.
func LoadConfig() *Config {
	if !getEnvBool("DEV_RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("DEV_RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("DEV_RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("DEV_RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("DEV_RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("DEV_RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the endpoints that parse files or call the model.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/upload/", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/get", Method: "GET", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/mark", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/getTQ", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		{Path: "/user/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/user/add", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return defaultValue
}

// parseIPList parses a comma separated list of client IPs.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
