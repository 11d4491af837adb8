package browser

import (
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Browser is the root of the hierarchy: one attached debugging session on a
// running Chromium. Windows are derived on every enumeration, never stored.
// All operations except Connect require the Connected state; Disconnect is
// idempotent and never observably fails.
type Browser struct {
	cfg    Config
	id     string
	logger *zap.Logger

	mu     sync.Mutex
	driver Driver
	handle DriverBrowser
}

// Connect validates cfg before any network activity, starts a Playwright
// runtime, and attaches to the configured debugging endpoint. When the
// attach fails the runtime is stopped again before the fault is returned,
// so a failed connect leaks nothing.
func Connect(cfg Config) (*Browser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, faultf(KindConnection, "connect", err, "invalid configuration")
	}
	drv, err := NewPlaywrightDriver()
	if err != nil {
		return nil, faultf(KindConnection, "connect", err, "failed to start automation driver")
	}
	return ConnectWithDriver(cfg, drv)
}

// ConnectWithDriver attaches through an already-constructed driver. The
// driver is stopped on attach failure, mirroring Connect.
func ConnectWithDriver(cfg Config, drv Driver) (*Browser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, faultf(KindConnection, "connect", err, "invalid configuration")
	}

	b := &Browser{cfg: cfg, id: uuid.New().String()}
	b.logger = cfg.logger().Named("browser").With(zap.String("connection_id", b.id))

	opts := ConnectOptions{Timeout: Float(float64(cfg.Timeout))}
	if cfg.SlowMo > 0 {
		opts.SlowMo = Float(float64(cfg.SlowMo))
	}

	handle, err := drv.Connect(cfg.EndpointURL(), opts)
	if err != nil {
		_ = drv.Stop()
		return nil, faultf(KindConnection, "connect", err,
			"failed to connect to browser at %s", cfg.EndpointURL())
	}

	b.driver = drv
	b.handle = handle
	b.logger.Debug("connected", zap.String("endpoint", cfg.EndpointURL()))
	return b, nil
}

// With runs fn against a freshly connected Browser and guarantees
// Disconnect on every exit path, including a panic inside fn.
func With(cfg Config, fn func(*Browser) error) error {
	b, err := Connect(cfg)
	if err != nil {
		return err
	}
	defer b.Disconnect()
	return fn(b)
}

// WithDriver is With over ConnectWithDriver.
func WithDriver(cfg Config, drv Driver, fn func(*Browser) error) error {
	b, err := ConnectWithDriver(cfg, drv)
	if err != nil {
		return err
	}
	defer b.Disconnect()
	return fn(b)
}

// Disconnect closes the attached browser handle, then stops the driver
// runtime. Both steps are best-effort: failures are logged at debug level
// and swallowed. The Browser always ends Disconnected, and calling
// Disconnect again is a no-op.
func (b *Browser) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle != nil {
		if err := b.handle.Close(); err != nil {
			b.logger.Debug("browser close failed during disconnect", zap.Error(err))
		}
		b.handle = nil
	}
	if b.driver != nil {
		if err := b.driver.Stop(); err != nil {
			b.logger.Debug("driver stop failed during disconnect", zap.Error(err))
		}
		b.driver = nil
	}
	b.logger.Debug("disconnected")
}

// IsConnected reports whether the session is attached and the underlying
// link is still up.
func (b *Browser) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle != nil && b.handle.IsConnected()
}

// ID returns the connection id used for log correlation.
func (b *Browser) ID() string { return b.id }

// Config returns the configuration the Browser was connected with.
func (b *Browser) Config() Config { return b.cfg }

// Windows enumerates the browsing contexts on the attached browser. Every
// call rebuilds fresh wrappers; order is driver-defined.
func (b *Browser) Windows() ([]*Window, error) {
	handle, err := b.connectedHandle("windows")
	if err != nil {
		return nil, err
	}
	ctxs := handle.Contexts()
	out := make([]*Window, 0, len(ctxs))
	for _, c := range ctxs {
		out = append(out, newWindow(b, c))
	}
	return out, nil
}

// Window returns a wrapper over the index-th browsing context.
func (b *Browser) Window(index int) (*Window, error) {
	handle, err := b.connectedHandle("window")
	if err != nil {
		return nil, err
	}
	ctxs := handle.Contexts()
	if index < 0 || index >= len(ctxs) {
		return nil, faultf(KindWindow, "window", nil,
			"window index %d out of range (0-%d)", index, len(ctxs)-1)
	}
	return newWindow(b, ctxs[index]), nil
}

// PlaywrightBrowser exposes the underlying driver handle. Nil once
// disconnected.
func (b *Browser) PlaywrightBrowser() playwright.Browser {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == nil {
		return nil
	}
	return b.handle.PlaywrightBrowser()
}

func (b *Browser) connectedHandle(op string) (DriverBrowser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == nil || !b.handle.IsConnected() {
		return nil, faultf(KindConnection, op, nil, "browser not connected")
	}
	return b.handle, nil
}
