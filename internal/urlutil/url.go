package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeMediaURL validates user input and returns a canonical absolute
// URL. Scheme-less input gets https; anything that is not http(s) or has no
// host is rejected before it ever reaches the prober.
func NormalizeMediaURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty URL")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", fmt.Errorf("missing or bad host in %q", raw)
	}

	return u.String(), nil
}

// FormatServerAddress turns a listen address into a browsable URL.
func FormatServerAddress(addr string) string {
	host, port, found := strings.Cut(addr, ":")
	if !found {
		return "http://" + addr
	}
	if host == "" {
		return "http://localhost:" + port
	}
	return "http://" + addr
}
