// File: cmd/fakes_test.go
package cmd

import (
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// The command layer is exercised against an in-memory driver chain instead of
// a live browser. Only the methods the commands reach carry behavior; the
// rest return zero values.

type fakeDriver struct {
	browser    *fakeBrowser
	connectErr error
	stops      int
}

func (d *fakeDriver) Connect(endpointURL string, opts browser.ConnectOptions) (browser.DriverBrowser, error) {
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	return d.browser, nil
}

func (d *fakeDriver) Stop() error {
	d.stops++
	return nil
}

type fakeBrowser struct {
	contexts []*fakeContext
}

func (b *fakeBrowser) Contexts() []browser.DriverContext {
	out := make([]browser.DriverContext, len(b.contexts))
	for i, c := range b.contexts {
		out[i] = c
	}
	return out
}

func (b *fakeBrowser) IsConnected() bool                     { return true }
func (b *fakeBrowser) Close() error                          { return nil }
func (b *fakeBrowser) PlaywrightBrowser() playwright.Browser { return nil }

type fakeContext struct {
	pages []*fakePage
	// newPage, when set, is handed out by the next NewPage call so tests can
	// preload behavior into a tab a command creates.
	newPage *fakePage
}

func (c *fakeContext) Pages() []browser.DriverPage {
	out := make([]browser.DriverPage, len(c.pages))
	for i, p := range c.pages {
		out[i] = p
	}
	return out
}

func (c *fakeContext) NewPage() (browser.DriverPage, error) {
	p := c.newPage
	if p == nil {
		p = &fakePage{}
	} else {
		c.newPage = nil
	}
	c.pages = append(c.pages, p)
	return p, nil
}

func (c *fakeContext) Close() error                                 { return nil }
func (c *fakeContext) PlaywrightContext() playwright.BrowserContext { return nil }

// fakePage guards its mutable state with a mutex because snapshot --all
// captures pages concurrently.
type fakePage struct {
	mu        sync.Mutex
	url       string
	title     string
	titleErr  error
	content   string
	gotoErr   error
	gotos     []string
	shots     int
	shotErr   error
	pdfs      int
	viewportW int
	viewportH int
	waited    []browser.LoadState
	closed    bool
}

func (p *fakePage) Goto(url string, opts browser.NavigateOptions) error {
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.gotos = append(p.gotos, url)
	p.url = url
	return nil
}

func (p *fakePage) Reload(opts browser.NavigateOptions) error    { return nil }
func (p *fakePage) GoBack(opts browser.NavigateOptions) error    { return nil }
func (p *fakePage) GoForward(opts browser.NavigateOptions) error { return nil }
func (p *fakePage) URL() string                                  { return p.url }
func (p *fakePage) Title() (string, error)                       { return p.title, p.titleErr }
func (p *fakePage) Content() (string, error)                     { return p.content, nil }

func (p *fakePage) Evaluate(script string, arg ...any) (any, error) { return nil, nil }

func (p *fakePage) WaitForLoadState(state browser.LoadState, timeout *float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waited = append(p.waited, state)
	return nil
}

func (p *fakePage) Locator(expression string) browser.DriverLocator { return &fakeLocator{} }

func (p *fakePage) Screenshot(path string, cfg browser.ScreenshotConfig) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shotErr != nil {
		return nil, p.shotErr
	}
	p.shots++
	return []byte("image-bytes"), nil
}

func (p *fakePage) PDF(path, format string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pdfs++
	return []byte("pdf-bytes-" + format), nil
}

func (p *fakePage) SetDefaultTimeout(ms float64)           {}
func (p *fakePage) SetDefaultNavigationTimeout(ms float64) {}

func (p *fakePage) SetViewportSize(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewportW, p.viewportH = width, height
	return nil
}

func (p *fakePage) BringToFront() error { return nil }

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

func (p *fakePage) IsClosed() bool                  { return p.closed }
func (p *fakePage) PlaywrightPage() playwright.Page { return nil }

type fakeLocator struct{}

func (l *fakeLocator) Click(timeout *float64) error                             { return nil }
func (l *fakeLocator) Type(text string, delay, timeout *float64) error          { return nil }
func (l *fakeLocator) Fill(text string, timeout *float64) error                 { return nil }
func (l *fakeLocator) TextContent(timeout *float64) (string, error)             { return "", nil }
func (l *fakeLocator) InnerText(timeout *float64) (string, error)               { return "", nil }
func (l *fakeLocator) InnerHTML(timeout *float64) (string, error)               { return "", nil }
func (l *fakeLocator) Attribute(name string, timeout *float64) (*string, error) { return nil, nil }
func (l *fakeLocator) IsVisible(timeout *float64) (bool, error)                 { return false, nil }
func (l *fakeLocator) IsHidden(timeout *float64) (bool, error)                  { return false, nil }
func (l *fakeLocator) IsEnabled(timeout *float64) (bool, error)                 { return false, nil }
func (l *fakeLocator) IsDisabled(timeout *float64) (bool, error)                { return false, nil }
func (l *fakeLocator) Count() (int, error)                                      { return 0, nil }
func (l *fakeLocator) WaitFor(state browser.SelectorState, timeout *float64) error {
	return nil
}
func (l *fakeLocator) Nth(index int) browser.DriverLocator             { return l }
func (l *fakeLocator) Locator(expression string) browser.DriverLocator { return l }
func (l *fakeLocator) PlaywrightLocator() playwright.Locator           { return nil }

var (
	_ browser.Driver        = (*fakeDriver)(nil)
	_ browser.DriverBrowser = (*fakeBrowser)(nil)
	_ browser.DriverContext = (*fakeContext)(nil)
	_ browser.DriverPage    = (*fakePage)(nil)
	_ browser.DriverLocator = (*fakeLocator)(nil)
)

// fakeProvider satisfies browserProvider by attaching the façade to the fake
// driver chain.
type fakeProvider struct {
	driver *fakeDriver
	err    error
}

func (p *fakeProvider) Connect(cfg browser.Config) (*browser.Browser, error) {
	if p.err != nil {
		return nil, p.err
	}
	return browser.ConnectWithDriver(cfg, p.driver)
}

// context returns the single browsing context newFakeProvider wires up.
func (p *fakeProvider) context() *fakeContext {
	return p.driver.browser.contexts[0]
}

// newFakeProvider wires the given pages into a single-window fake browser.
func newFakeProvider(pages ...*fakePage) *fakeProvider {
	ctx := &fakeContext{pages: pages}
	return &fakeProvider{
		driver: &fakeDriver{browser: &fakeBrowser{contexts: []*fakeContext{ctx}}},
	}
}
