package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// Heading is one h1-h6 element in document order.
type Heading struct {
	// Level is 1 for h1 through 6 for h6.
	Level int
	Text  string
}

// Headings collects the document's heading outline in source order.
func Headings(src string) ([]Heading, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	var out []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if level := headingLevel(n); level > 0 {
			out = append(out, Heading{Level: level, Text: nodeText(n)})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

// HeadingsFromPage snapshots p's document and collects its outline.
func HeadingsFromPage(p *browser.Page) ([]Heading, error) {
	content, err := p.Content()
	if err != nil {
		return nil, err
	}
	return Headings(content)
}

func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}
