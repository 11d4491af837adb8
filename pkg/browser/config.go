package browser

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds the connection parameters for attaching to a running
// Chromium's remote-debugging endpoint. Values are copied into the Browser
// at Connect and are not consulted again afterwards; treat them as
// immutable.
type Config struct {
	// Host is the DevTools host address.
	Host string
	// Port is the DevTools port, 1024-65535.
	Port int
	// Timeout is the attach timeout in milliseconds.
	Timeout int
	// Headless is carried for parity with launch-style tooling; attaching
	// to an already-running browser ignores it.
	Headless bool
	// SlowMo delays every driver operation by the given milliseconds.
	SlowMo int
	// Logger receives connection lifecycle logs. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the stock connection settings: localhost:9222 with a
// 30s attach timeout.
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    9222,
		Timeout: 30000,
	}
}

// EndpointURL returns the HTTP debugging endpoint the configuration points
// at.
func (c Config) EndpointURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

// Validate checks the configuration without touching the network.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Port < 1024 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535, got %d", c.Port)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	if c.SlowMo < 0 {
		return fmt.Errorf("slow_mo must not be negative, got %d", c.SlowMo)
	}
	return nil
}

// logger returns the configured logger or a nop one.
func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// PageConfig holds per-surface defaults applied when a Page is first used.
type PageConfig struct {
	// DefaultTimeout is the fallback timeout for non-navigation operations,
	// in milliseconds.
	DefaultTimeout int
	// DefaultNavigationTimeout is the fallback timeout for navigations, in
	// milliseconds.
	DefaultNavigationTimeout int
	// ViewportWidth and ViewportHeight describe the emulated viewport.
	ViewportWidth  int
	ViewportHeight int
	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string
}

// DefaultPageConfig returns the stock page settings: 30s timeouts and a
// 1280x720 viewport.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		DefaultTimeout:           30000,
		DefaultNavigationTimeout: 30000,
		ViewportWidth:            1280,
		ViewportHeight:           720,
	}
}

// Validate checks the page settings.
func (c PageConfig) Validate() error {
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout must not be negative, got %d", c.DefaultTimeout)
	}
	if c.DefaultNavigationTimeout < 0 {
		return fmt.Errorf("default_navigation_timeout must not be negative, got %d", c.DefaultNavigationTimeout)
	}
	if c.ViewportWidth < 1 {
		return fmt.Errorf("viewport_width must be at least 1, got %d", c.ViewportWidth)
	}
	if c.ViewportHeight < 1 {
		return fmt.Errorf("viewport_height must be at least 1, got %d", c.ViewportHeight)
	}
	return nil
}

// Screenshot formats recognized by ScreenshotConfig.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// ScreenshotConfig controls Page.Screenshot output.
type ScreenshotConfig struct {
	// FullPage captures the full scrollable page instead of the viewport.
	FullPage bool
	// OmitBackground hides the default white background, allowing
	// transparent captures.
	OmitBackground bool
	// Quality is the JPEG quality, 0-100. Only honored when Type is
	// "jpeg"; nil leaves the driver default.
	Quality *int
	// Type selects the raster format, "png" or "jpeg".
	Type string
}

// DefaultScreenshotConfig returns the stock capture settings (PNG,
// viewport-sized, opaque background).
func DefaultScreenshotConfig() ScreenshotConfig {
	return ScreenshotConfig{Type: FormatPNG}
}

// Validate checks the capture settings.
func (c ScreenshotConfig) Validate() error {
	if c.Type != FormatPNG && c.Type != FormatJPEG {
		return fmt.Errorf("type must be %q or %q, got %q", FormatPNG, FormatJPEG, c.Type)
	}
	if c.Quality != nil && (*c.Quality < 0 || *c.Quality > 100) {
		return fmt.Errorf("quality must be between 0 and 100, got %d", *c.Quality)
	}
	return nil
}
