package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Escape hatches. Each wrapper exposes a read-only accessor for the driver
// handle it owns, modeled as a small capability interface, so callers can
// reach driver-native features the façade does not track.

// BrowserAccessor is implemented by wrappers backed by a browser handle.
type BrowserAccessor interface {
	PlaywrightBrowser() playwright.Browser
}

// ContextAccessor is implemented by wrappers backed by a context handle.
type ContextAccessor interface {
	PlaywrightContext() playwright.BrowserContext
}

// PageAccessor is implemented by wrappers backed by a content surface.
type PageAccessor interface {
	PlaywrightPage() playwright.Page
}

// LocatorAccessor is implemented by wrappers backed by a locator.
type LocatorAccessor interface {
	PlaywrightLocator() playwright.Locator
}

var (
	_ BrowserAccessor = (*Browser)(nil)
	_ ContextAccessor = (*Window)(nil)
	_ PageAccessor    = (*Tab)(nil)
	_ PageAccessor    = (*Page)(nil)
	_ LocatorAccessor = (*Selector)(nil)
)
