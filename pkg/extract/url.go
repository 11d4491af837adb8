package extract

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes raw for comparison and display: scheme and
// host are lowercased, default ports dropped, the fragment removed, and a
// bare host gains a trailing slash. A missing scheme defaults to http.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("URL must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	// A bare "host/path" parses as a path, and "host:port" parses as an
	// opaque scheme. Both mean the scheme was left off.
	if u.Scheme == "" || (u.Host == "" && u.Opaque != "") {
		u, err = url.Parse("http://" + raw)
		if err != nil {
			return "", fmt.Errorf("invalid URL %q: %w", raw, err)
		}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	u.Fragment = ""
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}
	return u.String(), nil
}
