package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Selector is a live query bound to one or more elements on a Page. It
// stores the selection expression for diagnostics and owns a locator
// handle; the back-reference to its Page is non-owning.
type Selector struct {
	page       *Page
	expression string
	locator    DriverLocator
}

func newSelector(p *Page, expression string, loc DriverLocator) *Selector {
	return &Selector{page: p, expression: expression, locator: loc}
}

// Page returns the owning content view.
func (s *Selector) Page() *Page { return s.page }

// Expression returns the selection expression this Selector was built from.
func (s *Selector) Expression() string { return s.expression }

// Click clicks the element.
func (s *Selector) Click(opts ...ActionOptions) error {
	o := firstOption(opts)
	if err := s.locator.Click(o.Timeout); err != nil {
		return faultf(KindSelection, "click", err, "failed to click element %q", s.expression)
	}
	return nil
}

// Type types text into the element character by character.
func (s *Selector) Type(text string, opts ...TypeOptions) error {
	o := firstOption(opts)
	if err := s.locator.Type(text, o.Delay, o.Timeout); err != nil {
		return faultf(KindSelection, "type", err, "failed to type into element %q", s.expression)
	}
	return nil
}

// Fill clears the element and sets its value to text.
func (s *Selector) Fill(text string, opts ...ActionOptions) error {
	o := firstOption(opts)
	if err := s.locator.Fill(text, o.Timeout); err != nil {
		return faultf(KindSelection, "fill", err, "failed to fill element %q", s.expression)
	}
	return nil
}

// Text returns the element's text content, mapping "no content" to the
// empty string.
func (s *Selector) Text(opts ...ActionOptions) (string, error) {
	o := firstOption(opts)
	content, err := s.locator.TextContent(o.Timeout)
	if err != nil {
		return "", faultf(KindSelection, "text", err, "failed to get text from element %q", s.expression)
	}
	return content, nil
}

// InnerText returns the element's rendered text.
func (s *Selector) InnerText(opts ...ActionOptions) (string, error) {
	o := firstOption(opts)
	text, err := s.locator.InnerText(o.Timeout)
	if err != nil {
		return "", faultf(KindSelection, "inner_text", err,
			"failed to get inner text from element %q", s.expression)
	}
	return text, nil
}

// InnerHTML returns the element's inner HTML.
func (s *Selector) InnerHTML(opts ...ActionOptions) (string, error) {
	o := firstOption(opts)
	html, err := s.locator.InnerHTML(o.Timeout)
	if err != nil {
		return "", faultf(KindSelection, "inner_html", err,
			"failed to get inner HTML from element %q", s.expression)
	}
	return html, nil
}

// Attribute returns the element's attribute value. A nil result means the
// attribute is absent; an attribute present with an empty value yields a
// non-nil pointer to "".
func (s *Selector) Attribute(name string, opts ...ActionOptions) (*string, error) {
	o := firstOption(opts)
	value, err := s.locator.Attribute(name, o.Timeout)
	if err != nil {
		return nil, faultf(KindSelection, "attribute", err,
			"failed to get attribute %q from element %q", name, s.expression)
	}
	return value, nil
}

// IsVisible reports whether the element is visible. Underlying failures
// surface as faults, never as a silent false.
func (s *Selector) IsVisible(opts ...ActionOptions) (bool, error) {
	o := firstOption(opts)
	visible, err := s.locator.IsVisible(o.Timeout)
	if err != nil {
		return false, faultf(KindSelection, "is_visible", err,
			"failed to check visibility of element %q", s.expression)
	}
	return visible, nil
}

// IsHidden reports whether the element is hidden.
func (s *Selector) IsHidden(opts ...ActionOptions) (bool, error) {
	o := firstOption(opts)
	hidden, err := s.locator.IsHidden(o.Timeout)
	if err != nil {
		return false, faultf(KindSelection, "is_hidden", err,
			"failed to check hidden state of element %q", s.expression)
	}
	return hidden, nil
}

// IsEnabled reports whether the element is enabled.
func (s *Selector) IsEnabled(opts ...ActionOptions) (bool, error) {
	o := firstOption(opts)
	enabled, err := s.locator.IsEnabled(o.Timeout)
	if err != nil {
		return false, faultf(KindSelection, "is_enabled", err,
			"failed to check enabled state of element %q", s.expression)
	}
	return enabled, nil
}

// IsDisabled reports whether the element is disabled.
func (s *Selector) IsDisabled(opts ...ActionOptions) (bool, error) {
	o := firstOption(opts)
	disabled, err := s.locator.IsDisabled(o.Timeout)
	if err != nil {
		return false, faultf(KindSelection, "is_disabled", err,
			"failed to check disabled state of element %q", s.expression)
	}
	return disabled, nil
}

// Count returns the current number of elements matching the stored
// expression.
func (s *Selector) Count() (int, error) {
	count, err := s.locator.Count()
	if err != nil {
		return 0, faultf(KindSelection, "count", err,
			"failed to count elements for selector %q", s.expression)
	}
	return count, nil
}

// WaitFor waits for the element to reach the requested state, "visible"
// when unset.
func (s *Selector) WaitFor(opts ...WaitForSelectorOptions) error {
	o := firstOption(opts)
	state := SelectorStateVisible
	if o.State != nil {
		state = *o.State
	}
	if err := s.locator.WaitFor(state, o.Timeout); err != nil {
		return faultf(KindTimeout, "wait_for", err,
			"timeout waiting for element %q", s.expression)
	}
	return nil
}

// PlaywrightLocator exposes the underlying driver locator handle.
func (s *Selector) PlaywrightLocator() playwright.Locator {
	return s.locator.PlaywrightLocator()
}
