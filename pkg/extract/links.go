package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// Link is one anchor found in a document, with its href resolved against
// the document's base URL.
type Link struct {
	// Text is the anchor's visible text, whitespace-collapsed. Falls back
	// to the resolved URL for image-only anchors.
	Text string `json:"text"`
	// URL is the resolved absolute target.
	URL string `json:"url"`
}

// Links collects the anchors in src. Hrefs are resolved against baseURL
// when it is non-empty; fragment-only, javascript: and mailto: targets are
// skipped, and duplicates are dropped keeping first occurrence order.
func Links(src, baseURL string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	var base *url.URL
	if baseURL != "" {
		base, err = url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
		}
	}

	seen := make(map[string]struct{})
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
			return
		}
		resolved := href
		if base != nil {
			u, err := base.Parse(href)
			if err != nil {
				return
			}
			resolved = u.String()
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			text = resolved
		}
		links = append(links, Link{Text: text, URL: resolved})
	})
	return links, nil
}

// LinksFromPage snapshots p's document and collects its anchors, resolved
// against the page's current URL.
func LinksFromPage(p *browser.Page) ([]Link, error) {
	content, err := p.Content()
	if err != nil {
		return nil, err
	}
	return Links(content, p.URL())
}
