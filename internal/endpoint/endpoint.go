// Package endpoint probes a Chromium remote-debugging endpoint over its
// plain HTTP interface. It sits below the driver attach: the doctor flow
// uses it to tell "no browser listening" apart from "attach failed".
package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TargetPage is the target type Chromium reports for ordinary tabs.
const TargetPage = "page"

// VersionInfo mirrors the /json/version document.
type VersionInfo struct {
	Browser              string `json:"Browser"`
	ProtocolVersion      string `json:"Protocol-Version"`
	UserAgent            string `json:"User-Agent"`
	V8Version            string `json:"V8-Version"`
	WebKitVersion        string `json:"WebKit-Version"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// Target mirrors one entry of the /json/list document.
type Target struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	DevtoolsFrontendURL  string `json:"devtoolsFrontendUrl"`
}

// Client queries one debugging endpoint. Safe for concurrent use.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a Client for endpointURL ("http://host:port"). A nil
// logger disables logging.
func NewClient(endpointURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimSuffix(endpointURL, "/"),
		http:   &http.Client{Timeout: 5 * time.Second},
		logger: logger.Named("endpoint"),
	}
}

// BaseURL returns the endpoint base this client probes.
func (c *Client) BaseURL() string { return c.base }

// Version fetches the browser's version document.
func (c *Client) Version(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.getJSON(ctx, "/json/version", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Targets lists every debuggable target the browser exposes.
func (c *Client) Targets(ctx context.Context) ([]Target, error) {
	var targets []Target
	if err := c.getJSON(ctx, "/json/list", &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// Pages filters Targets down to ordinary tabs.
func (c *Client) Pages(ctx context.Context) ([]Target, error) {
	targets, err := c.Targets(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t.Type == TargetPage {
			pages = append(pages, t)
		}
	}
	return pages, nil
}

// WaitReady polls the version document until the endpoint answers or ctx
// expires. Polls are paced at one per interval (250ms when zero).
func (c *Client) WaitReady(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	var lastErr error
	for {
		if err := limiter.Wait(ctx); err != nil {
			if lastErr != nil {
				return fmt.Errorf("endpoint not ready before deadline: %w", lastErr)
			}
			return fmt.Errorf("endpoint not ready: %w", err)
		}
		if _, err := c.Version(ctx); err != nil {
			lastErr = err
			c.logger.Debug("endpoint not ready yet", zap.Error(err))
			continue
		}
		return nil
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("endpoint unreachable at %s: %w", c.base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("endpoint returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
