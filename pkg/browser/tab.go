package browser

import (
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Tab wraps a single content surface within a Window. It holds a non-owning
// back-reference to its Window, owns the surface handle, and owns one
// lazily-created Page.
type Tab struct {
	window *Window
	page   DriverPage

	viewOnce sync.Once
	view     *Page
}

func newTab(w *Window, p DriverPage) *Tab {
	return &Tab{window: w, page: p}
}

// Window returns the owning window.
func (t *Tab) Window() *Window { return t.window }

// Page returns this Tab's content view, creating it on first use. Repeat
// calls on one Tab instance return the identical Page; a second Tab wrapper
// around the same surface gets an independent one.
func (t *Tab) Page() *Page {
	t.viewOnce.Do(func() {
		t.view = newPage(t)
	})
	return t.view
}

// URL returns the surface's current URL.
func (t *Tab) URL() string { return t.page.URL() }

// Title returns the surface's current title.
func (t *Tab) Title() (string, error) {
	title, err := t.page.Title()
	if err != nil {
		return "", faultf(KindNavigation, "title", err, "failed to get tab title")
	}
	return title, nil
}

// Navigate drives this tab to url.
func (t *Tab) Navigate(url string, opts ...NavigateOptions) error {
	if err := t.page.Goto(url, firstOption(opts)); err != nil {
		return faultf(KindNavigation, "navigate", err, "failed to navigate tab to %q", url)
	}
	return nil
}

// Activate brings this tab to the foreground.
func (t *Tab) Activate() error {
	if err := t.page.BringToFront(); err != nil {
		return faultf(KindTab, "activate", err, "failed to activate tab")
	}
	return nil
}

// Close closes this tab.
func (t *Tab) Close() error {
	if err := t.page.Close(); err != nil {
		return faultf(KindTab, "close", err, "failed to close tab")
	}
	return nil
}

// IsClosed reflects the live surface state; it is never cached.
func (t *Tab) IsClosed() bool { return t.page.IsClosed() }

// PlaywrightPage exposes the underlying driver page handle.
func (t *Tab) PlaywrightPage() playwright.Page {
	return t.page.PlaywrightPage()
}
