package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// NewPlaywrightDriver starts a Playwright runtime and adapts it to the
// Driver contract. The caller owns the runtime: Stop releases it. Connect
// uses this driver unless one is supplied via ConnectWithDriver.
func NewPlaywrightDriver() (Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &playwrightDriver{pw: pw}, nil
}

type playwrightDriver struct {
	pw *playwright.Playwright
}

func (d *playwrightDriver) Connect(endpointURL string, opts ConnectOptions) (DriverBrowser, error) {
	b, err := d.pw.Chromium.ConnectOverCDP(endpointURL, playwright.BrowserTypeConnectOverCDPOptions{
		Timeout: opts.Timeout,
		SlowMo:  opts.SlowMo,
	})
	if err != nil {
		return nil, err
	}
	return &pwBrowser{b: b}, nil
}

func (d *playwrightDriver) Stop() error {
	return d.pw.Stop()
}

type pwBrowser struct {
	b playwright.Browser
}

func (w *pwBrowser) Contexts() []DriverContext {
	ctxs := w.b.Contexts()
	out := make([]DriverContext, 0, len(ctxs))
	for _, c := range ctxs {
		out = append(out, &pwContext{c: c})
	}
	return out
}

func (w *pwBrowser) IsConnected() bool { return w.b.IsConnected() }

func (w *pwBrowser) Close() error { return w.b.Close() }

func (w *pwBrowser) PlaywrightBrowser() playwright.Browser { return w.b }

type pwContext struct {
	c playwright.BrowserContext
}

func (c *pwContext) Pages() []DriverPage {
	pages := c.c.Pages()
	out := make([]DriverPage, 0, len(pages))
	for _, p := range pages {
		out = append(out, &pwPage{p: p})
	}
	return out
}

func (c *pwContext) NewPage() (DriverPage, error) {
	p, err := c.c.NewPage()
	if err != nil {
		return nil, err
	}
	return &pwPage{p: p}, nil
}

func (c *pwContext) Close() error { return c.c.Close() }

func (c *pwContext) PlaywrightContext() playwright.BrowserContext { return c.c }

type pwPage struct {
	p playwright.Page
}

func (pg *pwPage) Goto(url string, opts NavigateOptions) error {
	_, err := pg.p.Goto(url, playwright.PageGotoOptions{
		Timeout:   opts.Timeout,
		WaitUntil: pwWaitUntil(opts.WaitUntil),
	})
	return err
}

func (pg *pwPage) Reload(opts NavigateOptions) error {
	_, err := pg.p.Reload(playwright.PageReloadOptions{
		Timeout:   opts.Timeout,
		WaitUntil: pwWaitUntil(opts.WaitUntil),
	})
	return err
}

func (pg *pwPage) GoBack(opts NavigateOptions) error {
	_, err := pg.p.GoBack(playwright.PageGoBackOptions{
		Timeout:   opts.Timeout,
		WaitUntil: pwWaitUntil(opts.WaitUntil),
	})
	return err
}

func (pg *pwPage) GoForward(opts NavigateOptions) error {
	_, err := pg.p.GoForward(playwright.PageGoForwardOptions{
		Timeout:   opts.Timeout,
		WaitUntil: pwWaitUntil(opts.WaitUntil),
	})
	return err
}

func (pg *pwPage) URL() string { return pg.p.URL() }

func (pg *pwPage) Title() (string, error) { return pg.p.Title() }

func (pg *pwPage) Content() (string, error) { return pg.p.Content() }

func (pg *pwPage) Evaluate(script string, arg ...any) (any, error) {
	return pg.p.Evaluate(script, arg...)
}

func (pg *pwPage) WaitForLoadState(state LoadState, timeout *float64) error {
	s := playwright.LoadState(state)
	return pg.p.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   &s,
		Timeout: timeout,
	})
}

func (pg *pwPage) Locator(expression string) DriverLocator {
	return &pwLocator{l: pg.p.Locator(expression)}
}

func (pg *pwPage) Screenshot(path string, cfg ScreenshotConfig) ([]byte, error) {
	st := playwright.ScreenshotType(cfg.Type)
	opts := playwright.PageScreenshotOptions{
		FullPage:       playwright.Bool(cfg.FullPage),
		OmitBackground: playwright.Bool(cfg.OmitBackground),
		Type:           &st,
	}
	if path != "" {
		opts.Path = playwright.String(path)
	}
	if cfg.Type == FormatJPEG && cfg.Quality != nil {
		opts.Quality = playwright.Int(*cfg.Quality)
	}
	return pg.p.Screenshot(opts)
}

func (pg *pwPage) PDF(path, format string) ([]byte, error) {
	opts := playwright.PagePdfOptions{
		Format: playwright.String(format),
	}
	if path != "" {
		opts.Path = playwright.String(path)
	}
	return pg.p.PDF(opts)
}

func (pg *pwPage) SetDefaultTimeout(ms float64) { pg.p.SetDefaultTimeout(ms) }

func (pg *pwPage) SetDefaultNavigationTimeout(ms float64) { pg.p.SetDefaultNavigationTimeout(ms) }

func (pg *pwPage) SetViewportSize(width, height int) error {
	return pg.p.SetViewportSize(width, height)
}

func (pg *pwPage) BringToFront() error { return pg.p.BringToFront() }

func (pg *pwPage) Close() error { return pg.p.Close() }

func (pg *pwPage) IsClosed() bool { return pg.p.IsClosed() }

func (pg *pwPage) PlaywrightPage() playwright.Page { return pg.p }

type pwLocator struct {
	l playwright.Locator
}

func (lc *pwLocator) Click(timeout *float64) error {
	return lc.l.Click(playwright.LocatorClickOptions{Timeout: timeout})
}

func (lc *pwLocator) Type(text string, delay, timeout *float64) error {
	return lc.l.Type(text, playwright.LocatorTypeOptions{Delay: delay, Timeout: timeout})
}

func (lc *pwLocator) Fill(text string, timeout *float64) error {
	return lc.l.Fill(text, playwright.LocatorFillOptions{Timeout: timeout})
}

func (lc *pwLocator) TextContent(timeout *float64) (string, error) {
	return lc.l.TextContent(playwright.LocatorTextContentOptions{Timeout: timeout})
}

func (lc *pwLocator) InnerText(timeout *float64) (string, error) {
	return lc.l.InnerText(playwright.LocatorInnerTextOptions{Timeout: timeout})
}

func (lc *pwLocator) InnerHTML(timeout *float64) (string, error) {
	return lc.l.InnerHTML(playwright.LocatorInnerHTMLOptions{Timeout: timeout})
}

// Attribute goes through the page's script engine instead of the driver's
// GetAttribute, which folds an absent attribute and an empty one into the
// same return value. A JS null comes back as a nil any and stays nil here.
func (lc *pwLocator) Attribute(name string, timeout *float64) (*string, error) {
	res, err := lc.l.Evaluate("(el, name) => el.getAttribute(name)", name,
		playwright.LocatorEvaluateOptions{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	s, ok := res.(string)
	if !ok {
		s = fmt.Sprint(res)
	}
	return &s, nil
}

func (lc *pwLocator) IsVisible(timeout *float64) (bool, error) {
	return lc.l.IsVisible(playwright.LocatorIsVisibleOptions{Timeout: timeout})
}

func (lc *pwLocator) IsHidden(timeout *float64) (bool, error) {
	return lc.l.IsHidden(playwright.LocatorIsHiddenOptions{Timeout: timeout})
}

func (lc *pwLocator) IsEnabled(timeout *float64) (bool, error) {
	return lc.l.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: timeout})
}

func (lc *pwLocator) IsDisabled(timeout *float64) (bool, error) {
	return lc.l.IsDisabled(playwright.LocatorIsDisabledOptions{Timeout: timeout})
}

func (lc *pwLocator) Count() (int, error) { return lc.l.Count() }

func (lc *pwLocator) WaitFor(state SelectorState, timeout *float64) error {
	s := playwright.WaitForSelectorState(state)
	return lc.l.WaitFor(playwright.LocatorWaitForOptions{
		State:   &s,
		Timeout: timeout,
	})
}

func (lc *pwLocator) Nth(index int) DriverLocator {
	return &pwLocator{l: lc.l.Nth(index)}
}

func (lc *pwLocator) Locator(expression string) DriverLocator {
	return &pwLocator{l: lc.l.Locator(expression)}
}

func (lc *pwLocator) PlaywrightLocator() playwright.Locator { return lc.l }

func pwWaitUntil(w *WaitUntil) *playwright.WaitUntilState {
	if w == nil {
		return nil
	}
	s := playwright.WaitUntilState(*w)
	return &s
}

var (
	_ Driver        = (*playwrightDriver)(nil)
	_ DriverBrowser = (*pwBrowser)(nil)
	_ DriverContext = (*pwContext)(nil)
	_ DriverPage    = (*pwPage)(nil)
	_ DriverLocator = (*pwLocator)(nil)
)
