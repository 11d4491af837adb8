package browser_test

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// Hand-rolled driver fakes. Behavior is controlled per test through error
// fields and function hooks; calls are recorded for assertions.

type fakeDriver struct {
	browser    *fakeBrowser
	connectErr error
	stopErr    error

	connects []string
	lastOpts browser.ConnectOptions
	stops    int
}

func (d *fakeDriver) Connect(endpointURL string, opts browser.ConnectOptions) (browser.DriverBrowser, error) {
	d.connects = append(d.connects, endpointURL)
	d.lastOpts = opts
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	if d.browser == nil {
		d.browser = &fakeBrowser{connected: true}
	}
	return d.browser, nil
}

func (d *fakeDriver) Stop() error {
	d.stops++
	return d.stopErr
}

type fakeBrowser struct {
	contexts  []*fakeContext
	connected bool
	closeErr  error
	closes    int
}

func (b *fakeBrowser) Contexts() []browser.DriverContext {
	out := make([]browser.DriverContext, 0, len(b.contexts))
	for _, c := range b.contexts {
		out = append(out, c)
	}
	return out
}

func (b *fakeBrowser) IsConnected() bool { return b.connected }

func (b *fakeBrowser) Close() error {
	b.closes++
	if b.closeErr != nil {
		return b.closeErr
	}
	b.connected = false
	return nil
}

func (b *fakeBrowser) PlaywrightBrowser() playwright.Browser { return nil }

type fakeContext struct {
	pages      []*fakePage
	newPageErr error
	newPageFn  func() *fakePage
	closeErr   error
	closes     int
}

func (c *fakeContext) Pages() []browser.DriverPage {
	out := make([]browser.DriverPage, 0, len(c.pages))
	for _, p := range c.pages {
		out = append(out, p)
	}
	return out
}

func (c *fakeContext) NewPage() (browser.DriverPage, error) {
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	p := &fakePage{}
	if c.newPageFn != nil {
		p = c.newPageFn()
	}
	c.pages = append(c.pages, p)
	return p, nil
}

func (c *fakeContext) Close() error {
	c.closes++
	return c.closeErr
}

func (c *fakeContext) PlaywrightContext() playwright.BrowserContext { return nil }

type fakePage struct {
	url        string
	title      string
	titleErr   error
	content    string
	contentErr error

	gotoErr    error
	reloadErr  error
	backErr    error
	forwardErr error
	gotos      []string
	lastNav    browser.NavigateOptions

	evalFn func(script string, arg ...any) (any, error)

	waitLoadErr   error
	waitedStates  []browser.LoadState
	waitedTimeout *float64

	locator      *fakeLocator
	locatorExprs []string

	shotErr  error
	shotPath string
	shotCfg  browser.ScreenshotConfig

	pdfErr    error
	pdfPath   string
	pdfFormat string

	defTimeout    float64
	defNavTimeout float64
	viewportW     int
	viewportH     int
	viewportErr   error

	bringErr error
	brings   int

	closeErr error
	closed   bool
}

func (p *fakePage) Goto(url string, opts browser.NavigateOptions) error {
	p.gotos = append(p.gotos, url)
	p.lastNav = opts
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.url = url
	return nil
}

func (p *fakePage) Reload(opts browser.NavigateOptions) error {
	p.lastNav = opts
	return p.reloadErr
}

func (p *fakePage) GoBack(opts browser.NavigateOptions) error {
	p.lastNav = opts
	return p.backErr
}

func (p *fakePage) GoForward(opts browser.NavigateOptions) error {
	p.lastNav = opts
	return p.forwardErr
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Title() (string, error) { return p.title, p.titleErr }

func (p *fakePage) Content() (string, error) { return p.content, p.contentErr }

func (p *fakePage) Evaluate(script string, arg ...any) (any, error) {
	if p.evalFn != nil {
		return p.evalFn(script, arg...)
	}
	return nil, nil
}

func (p *fakePage) WaitForLoadState(state browser.LoadState, timeout *float64) error {
	p.waitedStates = append(p.waitedStates, state)
	p.waitedTimeout = timeout
	return p.waitLoadErr
}

func (p *fakePage) Locator(expression string) browser.DriverLocator {
	p.locatorExprs = append(p.locatorExprs, expression)
	if p.locator == nil {
		p.locator = &fakeLocator{expr: expression}
	}
	return p.locator
}

func (p *fakePage) Screenshot(path string, cfg browser.ScreenshotConfig) ([]byte, error) {
	p.shotPath = path
	p.shotCfg = cfg
	if p.shotErr != nil {
		return nil, p.shotErr
	}
	return []byte("image-bytes"), nil
}

func (p *fakePage) PDF(path, format string) ([]byte, error) {
	p.pdfPath = path
	p.pdfFormat = format
	if p.pdfErr != nil {
		return nil, p.pdfErr
	}
	return []byte("pdf-bytes"), nil
}

func (p *fakePage) SetDefaultTimeout(ms float64) { p.defTimeout = ms }

func (p *fakePage) SetDefaultNavigationTimeout(ms float64) { p.defNavTimeout = ms }

func (p *fakePage) SetViewportSize(width, height int) error {
	p.viewportW = width
	p.viewportH = height
	return p.viewportErr
}

func (p *fakePage) BringToFront() error {
	p.brings++
	return p.bringErr
}

func (p *fakePage) Close() error {
	if p.closeErr != nil {
		return p.closeErr
	}
	p.closed = true
	return nil
}

func (p *fakePage) IsClosed() bool { return p.closed }

func (p *fakePage) PlaywrightPage() playwright.Page { return nil }

type fakeLocator struct {
	expr string

	clickErr  error
	clicks    int
	typeErr   error
	typed     []string
	lastDelay *float64
	fillErr   error
	filled    []string

	lastTimeout *float64

	text         string
	textErr      error
	innerText    string
	innerTextErr error
	innerHTML    string
	innerHTMLErr error

	// attrs maps attribute name to value; a missing key is an absent
	// attribute, a nil-free empty string entry is present-but-empty.
	attrs   map[string]*string
	attrErr error

	visible     bool
	visibleErr  error
	hidden      bool
	hiddenErr   error
	enabled     bool
	enabledErr  error
	disabled    bool
	disabledErr error

	count    int
	countErr error

	waitErr      error
	waitedStates []browser.SelectorState
	waitedNln    []*float64

	nths     []int
	children map[int]*fakeLocator
	subs     map[string]*fakeLocator
}

func (l *fakeLocator) Click(timeout *float64) error {
	l.clicks++
	l.lastTimeout = timeout
	return l.clickErr
}

func (l *fakeLocator) Type(text string, delay, timeout *float64) error {
	l.typed = append(l.typed, text)
	l.lastDelay = delay
	l.lastTimeout = timeout
	return l.typeErr
}

func (l *fakeLocator) Fill(text string, timeout *float64) error {
	l.filled = append(l.filled, text)
	l.lastTimeout = timeout
	return l.fillErr
}

func (l *fakeLocator) TextContent(timeout *float64) (string, error) {
	l.lastTimeout = timeout
	return l.text, l.textErr
}

func (l *fakeLocator) InnerText(timeout *float64) (string, error) {
	l.lastTimeout = timeout
	return l.innerText, l.innerTextErr
}

func (l *fakeLocator) InnerHTML(timeout *float64) (string, error) {
	l.lastTimeout = timeout
	return l.innerHTML, l.innerHTMLErr
}

func (l *fakeLocator) Attribute(name string, timeout *float64) (*string, error) {
	l.lastTimeout = timeout
	if l.attrErr != nil {
		return nil, l.attrErr
	}
	value, ok := l.attrs[name]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (l *fakeLocator) IsVisible(timeout *float64) (bool, error) {
	return l.visible, l.visibleErr
}

func (l *fakeLocator) IsHidden(timeout *float64) (bool, error) {
	return l.hidden, l.hiddenErr
}

func (l *fakeLocator) IsEnabled(timeout *float64) (bool, error) {
	return l.enabled, l.enabledErr
}

func (l *fakeLocator) IsDisabled(timeout *float64) (bool, error) {
	return l.disabled, l.disabledErr
}

func (l *fakeLocator) Count() (int, error) { return l.count, l.countErr }

func (l *fakeLocator) WaitFor(state browser.SelectorState, timeout *float64) error {
	l.waitedStates = append(l.waitedStates, state)
	l.waitedNln = append(l.waitedNln, timeout)
	return l.waitErr
}

func (l *fakeLocator) Nth(index int) browser.DriverLocator {
	l.nths = append(l.nths, index)
	if l.children == nil {
		l.children = make(map[int]*fakeLocator)
	}
	child, ok := l.children[index]
	if !ok {
		child = &fakeLocator{expr: fmt.Sprintf("%s[%d]", l.expr, index)}
		l.children[index] = child
	}
	return child
}

func (l *fakeLocator) Locator(expression string) browser.DriverLocator {
	if l.subs == nil {
		l.subs = make(map[string]*fakeLocator)
	}
	child, ok := l.subs[expression]
	if !ok {
		child = &fakeLocator{expr: l.expr + " " + expression}
		l.subs[expression] = child
	}
	return child
}

func (l *fakeLocator) PlaywrightLocator() playwright.Locator { return nil }

var (
	_ browser.Driver        = (*fakeDriver)(nil)
	_ browser.DriverBrowser = (*fakeBrowser)(nil)
	_ browser.DriverContext = (*fakeContext)(nil)
	_ browser.DriverPage    = (*fakePage)(nil)
	_ browser.DriverLocator = (*fakeLocator)(nil)
)

// connectedFixture returns a Browser attached through fakes, with one
// window holding the given pages.
func connectedFixture(pages ...*fakePage) (*browser.Browser, *fakeDriver, *fakeContext, error) {
	ctx := &fakeContext{pages: pages}
	drv := &fakeDriver{browser: &fakeBrowser{connected: true, contexts: []*fakeContext{ctx}}}
	b, err := browser.ConnectWithDriver(browser.DefaultConfig(), drv)
	return b, drv, ctx, err
}
