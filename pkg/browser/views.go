package browser

import (
	"fmt"
)

// Element views: higher-level wrappers for common DOM shapes, built on
// Selectors. A view never caches element content, only the discovered
// row/item Selectors; call Load again to re-discover.

// TableViewOptions overrides the selectors a TableView scans with.
type TableViewOptions struct {
	// RowSelector locates data rows relative to the table root. Default
	// "tbody tr".
	RowSelector string
	// CellSelector locates cells relative to a row. Default "th, td".
	CellSelector string
}

// TableView is a high-level representation of a table element: a root
// Selector plus row/cell selectors, yielding TableRows that in turn yield
// cell Selectors or texts.
type TableView struct {
	page         *Page
	root         *Selector
	rowSelector  string
	cellSelector string
	rows         []*TableRow
}

// NewTableView builds a view over an already-selected table root.
func NewTableView(root *Selector, opts ...TableViewOptions) *TableView {
	o := firstOption(opts)
	if o.RowSelector == "" {
		o.RowSelector = "tbody tr"
	}
	if o.CellSelector == "" {
		o.CellSelector = "th, td"
	}
	return &TableView{
		page:         root.Page(),
		root:         root,
		rowSelector:  o.RowSelector,
		cellSelector: o.CellSelector,
	}
}

// TableFromPage selects the table root on p, waiting for it to attach, and
// builds a view over it.
func TableFromPage(p *Page, expression string, opts ...TableViewOptions) (*TableView, error) {
	root, err := p.Select(expression)
	if err != nil {
		return nil, err
	}
	return NewTableView(root, opts...), nil
}

// Page returns the content view that owns this table.
func (v *TableView) Page() *Page { return v.page }

// Root returns the table's root Selector.
func (v *TableView) Root() *Selector { return v.root }

// Load discovers the current data rows under the table root, replacing any
// previously discovered set.
func (v *TableView) Load() error {
	rowLoc := v.root.locator.Locator(v.rowSelector)
	count, err := rowLoc.Count()
	if err != nil {
		return faultf(KindSelection, "table_load", err,
			"failed to load rows for table %q", v.root.expression)
	}
	rows := make([]*TableRow, 0, count)
	for i := 0; i < count; i++ {
		expr := fmt.Sprintf("%s %s:nth-match(%d)", v.root.expression, v.rowSelector, i+1)
		rows = append(rows, &TableRow{
			index:        i,
			selector:     newSelector(v.page, expr, rowLoc.Nth(i)),
			cellSelector: v.cellSelector,
		})
	}
	v.rows = rows
	return nil
}

// Rows returns the rows discovered by the last Load.
func (v *TableView) Rows() []*TableRow { return v.rows }

// Row returns the index-th discovered row.
func (v *TableView) Row(index int) (*TableRow, error) {
	if index < 0 || index >= len(v.rows) {
		return nil, faultf(KindSelection, "table_row", nil,
			"row index %d out of range (0-%d)", index, len(v.rows)-1)
	}
	return v.rows[index], nil
}

// TableRow is a single data row backed by a Selector.
type TableRow struct {
	index        int
	selector     *Selector
	cellSelector string
}

// Index returns the 0-based row position, header excluded.
func (r *TableRow) Index() int { return r.index }

// Selector returns the underlying row Selector.
func (r *TableRow) Selector() *Selector { return r.selector }

// Cells returns the row's cell elements as Selectors, each addressed by a
// rewritten nth-match expression.
func (r *TableRow) Cells() ([]*Selector, error) {
	base := r.selector.locator.Locator(r.cellSelector)
	count, err := base.Count()
	if err != nil {
		return nil, faultf(KindSelection, "table_cells", err,
			"failed to get cells for row %q", r.selector.expression)
	}
	cells := make([]*Selector, 0, count)
	for i := 0; i < count; i++ {
		expr := fmt.Sprintf("%s %s:nth-match(%d)", r.selector.expression, r.cellSelector, i+1)
		cells = append(cells, newSelector(r.selector.page, expr, base.Nth(i)))
	}
	return cells, nil
}

// TextCells returns the text of each cell in this row.
func (r *TableRow) TextCells() ([]string, error) {
	cells, err := r.Cells()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		text, err := cell.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

// ListView is a high-level representation of a DOM list: a container
// Selector plus an item selector.
type ListView struct {
	page         *Page
	root         *Selector
	itemSelector string
	items        []*ListItem
}

// NewListView builds a view over an already-selected list container.
func NewListView(root *Selector, itemSelector string) *ListView {
	return &ListView{
		page:         root.Page(),
		root:         root,
		itemSelector: itemSelector,
	}
}

// ListFromPage selects the list container on p, waiting for it to attach,
// and builds a view over it.
func ListFromPage(p *Page, expression, itemSelector string) (*ListView, error) {
	root, err := p.Select(expression)
	if err != nil {
		return nil, err
	}
	return NewListView(root, itemSelector), nil
}

// Page returns the content view that owns this list.
func (v *ListView) Page() *Page { return v.page }

// Root returns the list container Selector.
func (v *ListView) Root() *Selector { return v.root }

// Load discovers the current items under the list container.
func (v *ListView) Load() error {
	itemLoc := v.root.locator.Locator(v.itemSelector)
	count, err := itemLoc.Count()
	if err != nil {
		return faultf(KindSelection, "list_load", err,
			"failed to load items for list %q", v.root.expression)
	}
	items := make([]*ListItem, 0, count)
	for i := 0; i < count; i++ {
		expr := fmt.Sprintf("%s %s:nth-match(%d)", v.root.expression, v.itemSelector, i+1)
		items = append(items, &ListItem{
			index:    i,
			selector: newSelector(v.page, expr, itemLoc.Nth(i)),
		})
	}
	v.items = items
	return nil
}

// Items returns the items discovered by the last Load.
func (v *ListView) Items() []*ListItem { return v.items }

// Item returns the index-th discovered item.
func (v *ListView) Item(index int) (*ListItem, error) {
	if index < 0 || index >= len(v.items) {
		return nil, faultf(KindSelection, "list_item", nil,
			"item index %d out of range (0-%d)", index, len(v.items)-1)
	}
	return v.items[index], nil
}

// ListItem is a single list entry backed by a Selector.
type ListItem struct {
	index    int
	selector *Selector
}

// Index returns the 0-based position in the list.
func (it *ListItem) Index() int { return it.index }

// Selector returns the underlying item Selector.
func (it *ListItem) Selector() *Selector { return it.selector }

// Text returns the item's text content.
func (it *ListItem) Text(opts ...ActionOptions) (string, error) {
	return it.selector.Text(opts...)
}

// InnerText returns the item's rendered text.
func (it *ListItem) InnerText(opts ...ActionOptions) (string, error) {
	return it.selector.InnerText(opts...)
}

// Click clicks the item.
func (it *ListItem) Click(opts ...ActionOptions) error {
	return it.selector.Click(opts...)
}
