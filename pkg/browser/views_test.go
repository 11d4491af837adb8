package browser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// tableFixture wires a table root with one data row of two text cells.
func tableFixture(t *testing.T) (*browser.Page, *fakeLocator, *fakeLocator) {
	t.Helper()
	cells := &fakeLocator{count: 2, children: map[int]*fakeLocator{
		0: {text: "Alice"},
		1: {text: "30"},
	}}
	row := &fakeLocator{subs: map[string]*fakeLocator{"th, td": cells}}
	rows := &fakeLocator{count: 1, children: map[int]*fakeLocator{0: row}}
	root := &fakeLocator{subs: map[string]*fakeLocator{"tbody tr": rows}}
	page := &fakePage{locator: root}
	return pageFixture(t, page), root, rows
}

func TestTableView(t *testing.T) {
	t.Run("loads rows under the root", func(t *testing.T) {
		p, _, _ := tableFixture(t)

		table, err := browser.TableFromPage(p, "table#data")
		require.NoError(t, err)
		require.NoError(t, table.Load())

		require.Len(t, table.Rows(), 1)
		row := table.Rows()[0]
		assert.Equal(t, 0, row.Index())
		assert.Equal(t, "table#data tbody tr:nth-match(1)", row.Selector().Expression())
	})

	t.Run("cells carry rewritten expressions and text", func(t *testing.T) {
		p, _, _ := tableFixture(t)
		table, err := browser.TableFromPage(p, "table#data")
		require.NoError(t, err)
		require.NoError(t, table.Load())
		row, err := table.Row(0)
		require.NoError(t, err)

		cells, err := row.Cells()
		require.NoError(t, err)
		require.Len(t, cells, 2)
		assert.Equal(t, "table#data tbody tr:nth-match(1) th, td:nth-match(1)", cells[0].Expression())

		texts, err := row.TextCells()
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "30"}, texts)
	})

	t.Run("row index out of range", func(t *testing.T) {
		p, _, _ := tableFixture(t)
		table, err := browser.TableFromPage(p, "table#data")
		require.NoError(t, err)
		require.NoError(t, table.Load())

		_, err = table.Row(5)

		require.Error(t, err)
		assert.True(t, browser.IsSelectionFault(err))
		assert.Contains(t, err.Error(), "row index 5 out of range (0-0)")
	})

	t.Run("reload replaces the discovered set", func(t *testing.T) {
		p, _, rows := tableFixture(t)
		table, err := browser.TableFromPage(p, "table#data")
		require.NoError(t, err)
		require.NoError(t, table.Load())
		require.Len(t, table.Rows(), 1)

		rows.count = 0
		require.NoError(t, table.Load())

		assert.Empty(t, table.Rows())
	})

	t.Run("load failure names the table", func(t *testing.T) {
		rows := &fakeLocator{countErr: errors.New("detached")}
		root := &fakeLocator{subs: map[string]*fakeLocator{"tbody tr": rows}}
		p := pageFixture(t, &fakePage{locator: root})
		table, err := browser.TableFromPage(p, "table#data")
		require.NoError(t, err)

		err = table.Load()

		require.Error(t, err)
		assert.True(t, browser.IsSelectionFault(err))
		assert.Contains(t, err.Error(), `failed to load rows for table "table#data"`)
	})

	t.Run("custom row and cell selectors", func(t *testing.T) {
		rows := &fakeLocator{count: 0}
		root := &fakeLocator{subs: map[string]*fakeLocator{"tr.data": rows}}
		p := pageFixture(t, &fakePage{locator: root})

		table, err := browser.TableFromPage(p, "table#data", browser.TableViewOptions{
			RowSelector:  "tr.data",
			CellSelector: "td",
		})
		require.NoError(t, err)
		require.NoError(t, table.Load())

		assert.Contains(t, root.subs, "tr.data")
	})

	t.Run("missing root fails at selection", func(t *testing.T) {
		root := &fakeLocator{waitErr: errors.New("timeout 30000ms exceeded")}
		p := pageFixture(t, &fakePage{locator: root})

		_, err := browser.TableFromPage(p, "table#gone")

		require.Error(t, err)
		assert.True(t, browser.IsSelectionFault(err))
		assert.Contains(t, err.Error(), `failed to select element "table#gone"`)
	})
}

func TestListView(t *testing.T) {
	listFixture := func(t *testing.T) (*browser.Page, *fakeLocator) {
		t.Helper()
		items := &fakeLocator{count: 3, children: map[int]*fakeLocator{
			0: {text: "One"},
			1: {text: "Two"},
			2: {text: "Three"},
		}}
		root := &fakeLocator{subs: map[string]*fakeLocator{"li": items}}
		return pageFixture(t, &fakePage{locator: root}), items
	}

	t.Run("loads items under the container", func(t *testing.T) {
		p, _ := listFixture(t)

		list, err := browser.ListFromPage(p, "ul#menu", "li")
		require.NoError(t, err)
		require.NoError(t, list.Load())

		require.Len(t, list.Items(), 3)
		item, err := list.Item(1)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Index())
		assert.Equal(t, "ul#menu li:nth-match(2)", item.Selector().Expression())

		text, err := item.Text()
		require.NoError(t, err)
		assert.Equal(t, "Two", text)
	})

	t.Run("item index out of range", func(t *testing.T) {
		p, _ := listFixture(t)
		list, err := browser.ListFromPage(p, "ul#menu", "li")
		require.NoError(t, err)
		require.NoError(t, list.Load())

		_, err = list.Item(3)

		require.Error(t, err)
		assert.True(t, browser.IsSelectionFault(err))
		assert.Contains(t, err.Error(), "item index 3 out of range (0-2)")
	})

	t.Run("click routes to the bound element", func(t *testing.T) {
		p, items := listFixture(t)
		list, err := browser.ListFromPage(p, "ul#menu", "li")
		require.NoError(t, err)
		require.NoError(t, list.Load())
		item, err := list.Item(2)
		require.NoError(t, err)

		require.NoError(t, item.Click())

		assert.Equal(t, 1, items.children[2].clicks)
		assert.Zero(t, items.children[0].clicks)
	})

	t.Run("load failure names the list", func(t *testing.T) {
		items := &fakeLocator{countErr: errors.New("detached")}
		root := &fakeLocator{subs: map[string]*fakeLocator{"li": items}}
		p := pageFixture(t, &fakePage{locator: root})
		list, err := browser.ListFromPage(p, "ul#menu", "li")
		require.NoError(t, err)

		err = list.Load()

		require.Error(t, err)
		assert.True(t, browser.IsSelectionFault(err))
		assert.Contains(t, err.Error(), `failed to load items for list "ul#menu"`)
	})

	t.Run("items before load are empty", func(t *testing.T) {
		p, _ := listFixture(t)
		list, err := browser.ListFromPage(p, "ul#menu", "li")
		require.NoError(t, err)

		assert.Empty(t, list.Items())
		_, err = list.Item(0)
		require.Error(t, err)
	})
}
