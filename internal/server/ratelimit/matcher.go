package ratelimit

import (
	"net/http"
	"strings"
)

// exemptPaths are never limited for GET requests.
var exemptPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint returns the entry governing method and path: an exact entry
// first, then the longest prefix entry (paths ending in "/"). Exempt paths get
// an entry with a zero Limit, which disables limiting. A nil result means the
// default bucket applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && exemptPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) &&
			(prefix == nil || len(cfg.Path) > len(prefix.Path)) {
			prefix = cfg
		}
	}
	return prefix
}
