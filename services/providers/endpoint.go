package providers

import (
	"fmt"
	"net/url"
	"strings"
)

// JoinEndpoint appends an API path to a base URL, rejecting bases without an http(s) scheme or host
func JoinEndpoint(baseURL, path string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	return strings.TrimRight(u.String(), "/") + path, nil
}
