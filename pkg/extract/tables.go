package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// Table is one table element flattened to text. The first all-header row
// becomes Headers; every other row lands in Rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Tables collects every table in src, outermost first. A table nested
// inside another is returned as its own entry and excluded from the
// enclosing table's rows.
func Tables(src string) ([]Table, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	var tables []Table
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, parseTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

// TablesFromPage snapshots p's document and collects its tables.
func TablesFromPage(p *browser.Page) ([]Table, error) {
	content, err := p.Content()
	if err != nil {
		return nil, err
	}
	return Tables(content)
}

func parseTable(table *html.Node) Table {
	var t Table
	for _, tr := range tableRows(table) {
		cells, header := rowCells(tr)
		if len(cells) == 0 {
			continue
		}
		if header && t.Headers == nil {
			t.Headers = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// tableRows gathers the tr descendants belonging to this table, stopping
// at nested tables so their rows are not double-counted.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch c.Data {
				case "table":
					continue
				case "tr":
					rows = append(rows, c)
					continue
				}
			}
			walk(c)
		}
	}
	walk(table)
	return rows
}

// rowCells flattens a tr's th/td children to text. header is true when the
// row holds th cells only.
func rowCells(tr *html.Node) (cells []string, header bool) {
	th, td := 0, 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			th++
			cells = append(cells, nodeText(c))
		case "td":
			td++
			cells = append(cells, nodeText(c))
		}
	}
	return cells, th > 0 && td == 0
}

// nodeText concatenates the text below n with whitespace collapsed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
