package browser

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/playwright-community/playwright-go"
)

// Page is the interaction façade over a Tab's surface: navigation,
// selection, script evaluation, and capture. It is stateless; url, title,
// and content always read through to the live surface.
type Page struct {
	tab  *Tab
	page DriverPage
}

func newPage(t *Tab) *Page {
	return &Page{tab: t, page: t.page}
}

// Tab returns the owning tab.
func (p *Page) Tab() *Tab { return p.tab }

// URL returns the current URL.
func (p *Page) URL() string { return p.page.URL() }

// Goto navigates to url.
func (p *Page) Goto(url string, opts ...NavigateOptions) error {
	if err := p.page.Goto(url, firstOption(opts)); err != nil {
		return faultf(KindNavigation, "goto", err, "failed to navigate to %q", url)
	}
	return nil
}

// Reload reloads the current document.
func (p *Page) Reload(opts ...NavigateOptions) error {
	if err := p.page.Reload(firstOption(opts)); err != nil {
		return faultf(KindNavigation, "reload", err, "failed to reload page")
	}
	return nil
}

// GoBack navigates back in history.
func (p *Page) GoBack(opts ...NavigateOptions) error {
	if err := p.page.GoBack(firstOption(opts)); err != nil {
		return faultf(KindNavigation, "go_back", err, "failed to go back")
	}
	return nil
}

// GoForward navigates forward in history.
func (p *Page) GoForward(opts ...NavigateOptions) error {
	if err := p.page.GoForward(firstOption(opts)); err != nil {
		return faultf(KindNavigation, "go_forward", err, "failed to go forward")
	}
	return nil
}

// Select resolves expression and waits until at least one match is attached,
// so existence is verified at creation rather than on first use.
func (p *Page) Select(expression string, opts ...SelectOptions) (*Selector, error) {
	o := firstOption(opts)
	loc := p.page.Locator(expression)
	if err := loc.WaitFor(SelectorStateAttached, o.Timeout); err != nil {
		return nil, faultf(KindSelection, "select", err, "failed to select element %q", expression)
	}
	return newSelector(p, expression, loc), nil
}

// SelectAll counts the current matches for expression and returns one
// Selector per index. Each is bound to its nth match, fixed at creation,
// with the expression rewritten to name that single element.
func (p *Page) SelectAll(expression string) ([]*Selector, error) {
	loc := p.page.Locator(expression)
	count, err := loc.Count()
	if err != nil {
		return nil, faultf(KindSelection, "select_all", err, "failed to select elements %q", expression)
	}
	out := make([]*Selector, 0, count)
	for i := 0; i < count; i++ {
		expr := fmt.Sprintf("%s:nth-match(%d)", expression, i+1)
		out = append(out, newSelector(p, expr, loc.Nth(i)))
	}
	return out, nil
}

// WaitForSelector waits for expression to reach state (default "visible")
// and returns a Selector over it.
func (p *Page) WaitForSelector(expression string, opts ...WaitForSelectorOptions) (*Selector, error) {
	o := firstOption(opts)
	state := SelectorStateVisible
	if o.State != nil {
		state = *o.State
	}
	loc := p.page.Locator(expression)
	if err := loc.WaitFor(state, o.Timeout); err != nil {
		return nil, faultf(KindTimeout, "wait_for_selector", err,
			"timeout waiting for selector %q", expression)
	}
	return newSelector(p, expression, loc), nil
}

// WaitForLoadState waits for the document to reach state (default "load").
func (p *Page) WaitForLoadState(state LoadState, opts ...WaitOptions) error {
	if state == "" {
		state = LoadStateLoad
	}
	o := firstOption(opts)
	if err := p.page.WaitForLoadState(state, o.Timeout); err != nil {
		return faultf(KindTimeout, "wait_for_load_state", err,
			"timeout waiting for load state %q", state)
	}
	return nil
}

// WaitForNavigation waits for the document to settle at the requested
// milestone, "load" when unset.
func (p *Page) WaitForNavigation(opts ...NavigateOptions) error {
	o := firstOption(opts)
	state := LoadStateLoad
	if o.WaitUntil != nil {
		state = LoadState(*o.WaitUntil)
	}
	if err := p.page.WaitForLoadState(state, o.Timeout); err != nil {
		return faultf(KindTimeout, "wait_for_navigation", err, "timeout waiting for navigation")
	}
	return nil
}

// Evaluate runs script in the page and returns its result. Script failures
// surface as navigation faults; no dedicated evaluation kind exists.
func (p *Page) Evaluate(script string, arg ...any) (any, error) {
	res, err := p.page.Evaluate(script, arg...)
	if err != nil {
		return nil, faultf(KindNavigation, "evaluate", err, "failed to evaluate script")
	}
	return res, nil
}

// EvaluateInto runs script and decodes its result into out.
func (p *Page) EvaluateInto(script string, out any, arg ...any) error {
	res, err := p.Evaluate(script, arg...)
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return faultf(KindNavigation, "evaluate", err, "failed to encode script result")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return faultf(KindNavigation, "evaluate", err, "failed to decode script result")
	}
	return nil
}

// Title returns the current document title.
func (p *Page) Title() (string, error) {
	title, err := p.page.Title()
	if err != nil {
		return "", faultf(KindNavigation, "title", err, "failed to get page title")
	}
	return title, nil
}

// Content returns the current document HTML.
func (p *Page) Content() (string, error) {
	content, err := p.page.Content()
	if err != nil {
		return "", faultf(KindNavigation, "content", err, "failed to get page content")
	}
	return content, nil
}

// Screenshot captures the surface and returns the image bytes. When
// opts.Path is set the image is also written there by the driver.
func (p *Page) Screenshot(opts ...ScreenshotOptions) ([]byte, error) {
	o := firstOption(opts)
	cfg := DefaultScreenshotConfig()
	if o.Config != nil {
		cfg = *o.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, faultf(KindNavigation, "screenshot", err, "invalid screenshot configuration")
	}
	data, err := p.page.Screenshot(o.Path, cfg)
	if err != nil {
		return nil, faultf(KindNavigation, "screenshot", err, "failed to take screenshot")
	}
	return data, nil
}

// PDF renders the surface to PDF bytes. Format defaults to "A4"; opts.Path
// additionally persists the document.
func (p *Page) PDF(opts ...PDFOptions) ([]byte, error) {
	o := firstOption(opts)
	format := o.Format
	if format == "" {
		format = "A4"
	}
	data, err := p.page.PDF(o.Path, format)
	if err != nil {
		return nil, faultf(KindNavigation, "pdf", err, "failed to generate PDF")
	}
	return data, nil
}

// Configure applies per-surface defaults: operation and navigation
// timeouts plus the emulated viewport. The UserAgent field only applies to
// contexts the driver creates itself, so attached surfaces ignore it.
func (p *Page) Configure(cfg PageConfig) error {
	if err := cfg.Validate(); err != nil {
		return faultf(KindNavigation, "configure", err, "invalid page configuration")
	}
	p.page.SetDefaultTimeout(float64(cfg.DefaultTimeout))
	p.page.SetDefaultNavigationTimeout(float64(cfg.DefaultNavigationTimeout))
	if err := p.page.SetViewportSize(cfg.ViewportWidth, cfg.ViewportHeight); err != nil {
		return faultf(KindNavigation, "configure", err, "failed to apply viewport size")
	}
	return nil
}

// Close closes the underlying surface.
func (p *Page) Close() error {
	if err := p.page.Close(); err != nil {
		return faultf(KindNavigation, "close", err, "failed to close page")
	}
	return nil
}

// PlaywrightPage exposes the underlying driver page handle.
func (p *Page) PlaywrightPage() playwright.Page {
	return p.page.PlaywrightPage()
}
