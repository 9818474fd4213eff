package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig shapes the bucket of one route. Limit requests refill over
// Window; Burst defaults to Limit when zero.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// perMinute is an endpoint entry refilling limit tokens each minute.
func perMinute(method, path string, limit, burst int) EndpointConfig {
	return EndpointConfig{Path: path, Method: method, Limit: limit, Window: time.Minute, Burst: burst}
}

// DefaultEndpointConfigs returns the per-route limits of the analysis API.
// Uploads decode documents before analyzing and get the tightest bucket;
// single-document endpoints the loosest.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		perMinute("POST", "/analyze/upload", 10, 2),
		perMinute("POST", "/analyze", 30, 5),
		perMinute("POST", "/analyze/stream", 30, 5),
		perMinute("POST", "/skills/extract", 120, 20),
		perMinute("POST", "/sentiment", 120, 20),
	}
}

// LoadConfig builds the limiter configuration. ratePerSecond and burst shape
// the default bucket for routes without their own entry. The environment may
// override enablement (RATE_LIMIT_ENABLED), the idle bucket sweep
// (RATE_LIMIT_CLEANUP_INTERVAL) and the client lists (RATE_LIMIT_WHITELIST,
// RATE_LIMIT_BLACKLIST, comma separated).
func LoadConfig(ratePerSecond float64, burst int) *Config {
	enabled := ratePerSecond > 0
	if v, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
		enabled = v
	}
	if !enabled {
		return &Config{Enabled: false}
	}

	cleanup := 5 * time.Minute
	if d, err := time.ParseDuration(os.Getenv("RATE_LIMIT_CLEANUP_INTERVAL")); err == nil && d > 0 {
		cleanup = d
	}

	return &Config{
		Enabled:         true,
		DefaultRate:     ratePerSecond,
		DefaultBurst:    burst,
		CleanupInterval: cleanup,
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// clientSet splits a comma separated list of client identifiers.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
