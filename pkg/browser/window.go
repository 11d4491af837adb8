package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Window wraps one isolated browsing context on the attached browser. It
// holds a non-owning back-reference to its Browser and owns the underlying
// context handle. Tabs are rebuilt fresh on every enumeration: two calls
// yield structurally-equal but distinct Tab instances.
type Window struct {
	browser *Browser
	ctx     DriverContext
}

func newWindow(b *Browser, ctx DriverContext) *Window {
	return &Window{browser: b, ctx: ctx}
}

// Browser returns the owning connection.
func (w *Window) Browser() *Browser { return w.browser }

// Tabs returns fresh wrappers over the context's surfaces, in driver order.
func (w *Window) Tabs() ([]*Tab, error) {
	pages := w.ctx.Pages()
	out := make([]*Tab, 0, len(pages))
	for _, p := range pages {
		out = append(out, newTab(w, p))
	}
	return out, nil
}

// Tab returns a wrapper over the index-th surface.
func (w *Window) Tab(index int) (*Tab, error) {
	pages := w.ctx.Pages()
	if index < 0 || index >= len(pages) {
		return nil, faultf(KindTab, "tab", nil,
			"tab index %d out of range (0-%d)", index, len(pages)-1)
	}
	return newTab(w, pages[index]), nil
}

// ActiveTab returns the first surface in the underlying list. The driver
// does not expose real focus for attached sessions, so "first" is a
// documented approximation of "active", not focus tracking.
func (w *Window) ActiveTab() (*Tab, error) {
	pages := w.ctx.Pages()
	if len(pages) == 0 {
		inner := faultf(KindTab, "active_tab", nil, "no tabs available in window")
		return nil, faultf(KindWindow, "active_tab", inner, "failed to get active tab")
	}
	return newTab(w, pages[0]), nil
}

// NewTab creates a new surface in this context and, when url is non-empty,
// navigates it before returning. The surface exists even when that
// navigation fails: the created Tab is returned together with the
// navigation fault so callers can keep or close it.
func (w *Window) NewTab(url string) (*Tab, error) {
	page, err := w.ctx.NewPage()
	if err != nil {
		return nil, faultf(KindTab, "new_tab", err, "failed to create new tab")
	}
	tab := newTab(w, page)
	if url != "" {
		if err := tab.Navigate(url); err != nil {
			return tab, err
		}
	}
	return tab, nil
}

// Close closes this window and all its tabs.
func (w *Window) Close() error {
	if err := w.ctx.Close(); err != nil {
		return faultf(KindWindow, "close", err, "failed to close window")
	}
	return nil
}

// PlaywrightContext exposes the underlying driver context handle.
func (w *Window) PlaywrightContext() playwright.BrowserContext {
	return w.ctx.PlaywrightContext()
}
