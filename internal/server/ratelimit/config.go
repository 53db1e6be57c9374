package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/groepsplan/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" matches by prefix)
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns a permissive configuration with the default endpoint limits.
func DefaultConfig() *Config {
	return FromSettings(config.RateLimitConfig{
		Enabled:          true,
		DefaultRequests:  60,
		DefaultWindow:    time.Minute,
		GenerateRequests: 5,
		GenerateWindow:   time.Minute,
		CleanupInterval:  5 * time.Minute,
	})
}

// FromSettings builds the limiter configuration from the loaded application settings.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultRequests,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(s.GenerateRequests, s.GenerateWindow),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Generation calls the model
// and gets the configured strict limit; the other write endpoints get fixed moderate limits.
func DefaultEndpointConfigs(generateLimit int, generateWindow time.Duration) []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model calls
		{Path: "/api/groepsplannen/generate", Method: http.MethodPost, Limit: generateLimit, Window: generateWindow, Burst: 2},
		{Path: "/api/groepsplannen/generate/stream", Method: http.MethodPost, Limit: generateLimit, Window: generateWindow, Burst: 2},

		// Tier 2: CPU-bound writes
		{Path: "/api/uploads/extract", Method: http.MethodPost, Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/groepsplannen/analyze", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/api/groepsplannen/", Method: http.MethodDelete, Limit: 30, Window: time.Minute, Burst: 10},

		// Tier 3: everything else uses the default limit
		// Tier 4: health and metrics are unlimited, see MatchEndpoint
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
