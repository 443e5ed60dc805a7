package app

import (
	"net/url"
	"strings"
)

// extractOriginHost returns the "host[:port]" portion of an Origin header
// value, or the input unchanged when it does not parse as a URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches one allowed_origins
// pattern. Patterns may be written with or without a scheme
// ("https://gallery.example.com" and "gallery.example.com" are the same
// rule); "*." matches subdomains and a trailing ":*" matches any port.
func matchOriginPattern(pattern, host string) bool {
	pattern = extractOriginHost(pattern)
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return strings.HasSuffix(host, suffix)
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(host, prefix)
	}
	return false
}
