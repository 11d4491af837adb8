package browser

import (
	"github.com/playwright-community/playwright-go"
)

// LoadState identifies a document lifecycle milestone.
type LoadState string

const (
	LoadStateLoad             LoadState = "load"
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

// WaitUntil selects the milestone a navigation waits for before returning.
type WaitUntil string

const (
	WaitUntilLoad             WaitUntil = "load"
	WaitUntilDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitUntilNetworkIdle      WaitUntil = "networkidle"
	WaitUntilCommit           WaitUntil = "commit"
)

// SelectorState identifies the element condition a wait resolves on.
type SelectorState string

const (
	SelectorStateAttached SelectorState = "attached"
	SelectorStateDetached SelectorState = "detached"
	SelectorStateVisible  SelectorState = "visible"
	SelectorStateHidden   SelectorState = "hidden"
)

// Pointer helpers for option fields.
func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func String(v string) *string { return &v }

// firstOption collapses an options variadic to its first element or the
// zero value.
func firstOption[T any](opts []T) T {
	if len(opts) > 0 {
		return opts[0]
	}
	var zero T
	return zero
}

// NavigateOptions tunes navigation-flavored operations. A nil Timeout keeps
// the driver's configured default; Timeout is in milliseconds.
type NavigateOptions struct {
	Timeout   *float64
	WaitUntil *WaitUntil
}

// WaitOptions tunes load-state waits.
type WaitOptions struct {
	Timeout *float64
}

// SelectOptions tunes Select's attached-wait.
type SelectOptions struct {
	Timeout *float64
}

// WaitForSelectorOptions tunes selector waits. State defaults to "visible".
type WaitForSelectorOptions struct {
	State   *SelectorState
	Timeout *float64
}

// ActionOptions tunes element interactions and extractions.
type ActionOptions struct {
	Timeout *float64
}

// TypeOptions tunes character-by-character typing. Delay is the pause
// between keystrokes in milliseconds.
type TypeOptions struct {
	Delay   *float64
	Timeout *float64
}

// ScreenshotOptions tunes Page.Screenshot. When Path is non-empty the image
// is also written there; Config nil means DefaultScreenshotConfig.
type ScreenshotOptions struct {
	Path   string
	Config *ScreenshotConfig
}

// PDFOptions tunes Page.PDF. Format defaults to "A4".
type PDFOptions struct {
	Path   string
	Format string
}

// ConnectOptions carries attach parameters down to the driver.
type ConnectOptions struct {
	Timeout *float64
	SlowMo  *float64
}

// Driver is the runtime half of the automation-driver contract: one session
// that can attach to a debugging endpoint and be stopped.
type Driver interface {
	Connect(endpointURL string, opts ConnectOptions) (DriverBrowser, error)
	Stop() error
}

// DriverBrowser is an attached browser handle.
type DriverBrowser interface {
	Contexts() []DriverContext
	IsConnected() bool
	Close() error
	PlaywrightBrowser() playwright.Browser
}

// DriverContext is one isolated browsing context on the attached browser.
type DriverContext interface {
	Pages() []DriverPage
	NewPage() (DriverPage, error)
	Close() error
	PlaywrightContext() playwright.BrowserContext
}

// DriverPage is one content surface.
type DriverPage interface {
	Goto(url string, opts NavigateOptions) error
	Reload(opts NavigateOptions) error
	GoBack(opts NavigateOptions) error
	GoForward(opts NavigateOptions) error
	URL() string
	Title() (string, error)
	Content() (string, error)
	Evaluate(script string, arg ...any) (any, error)
	WaitForLoadState(state LoadState, timeout *float64) error
	Locator(expression string) DriverLocator
	Screenshot(path string, cfg ScreenshotConfig) ([]byte, error)
	PDF(path, format string) ([]byte, error)
	SetDefaultTimeout(ms float64)
	SetDefaultNavigationTimeout(ms float64)
	SetViewportSize(width, height int) error
	BringToFront() error
	Close() error
	IsClosed() bool
	PlaywrightPage() playwright.Page
}

// DriverLocator is a lazily-resolved element query on a surface.
type DriverLocator interface {
	Click(timeout *float64) error
	Type(text string, delay, timeout *float64) error
	Fill(text string, timeout *float64) error
	TextContent(timeout *float64) (string, error)
	InnerText(timeout *float64) (string, error)
	InnerHTML(timeout *float64) (string, error)
	// Attribute returns nil when the attribute is absent, as opposed to a
	// pointer to the empty string for an attribute set to "".
	Attribute(name string, timeout *float64) (*string, error)
	IsVisible(timeout *float64) (bool, error)
	IsHidden(timeout *float64) (bool, error)
	IsEnabled(timeout *float64) (bool, error)
	IsDisabled(timeout *float64) (bool, error)
	Count() (int, error)
	WaitFor(state SelectorState, timeout *float64) error
	Nth(index int) DriverLocator
	Locator(expression string) DriverLocator
	PlaywrightLocator() playwright.Locator
}
