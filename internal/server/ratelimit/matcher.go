package ratelimit

import (
	"strings"
)

// unlimited is returned for the health check so probes are never throttled.
var unlimited = EndpointConfig{}

// MatchEndpoint finds the endpoint configuration for a request, or nil when the
// default limit applies. An exact path wins; otherwise the longest configured path
// ending in "/" that prefixes the request path is used, so "/profiles/" covers
// every "/profiles/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		hc := unlimited
		return &hc
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if prefix == nil || len(c.Path) > len(prefix.Path) {
				prefix = c
			}
		}
	}
	return prefix
}
