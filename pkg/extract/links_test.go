package extract_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/browsertap/pkg/extract"
)

const linksFixture = `<!DOCTYPE html>
<html><body>
  <nav>
    <a href="/home">Home</a>
    <a href="/about">  About
      Us  </a>
    <a href="https://other.test/docs">Docs</a>
  </nav>
  <a href="#section">Jump</a>
  <a href="javascript:void(0)">Noop</a>
  <a href="MAILTO:team@example.com">Mail</a>
  <a href="/home">Home again</a>
  <a href="/logo"><img src="logo.png"></a>
  <a href="">Blank</a>
</body></html>`

func TestLinks(t *testing.T) {
	t.Run("resolves against the base and dedupes", func(t *testing.T) {
		links, err := extract.Links(linksFixture, "https://example.com/start")
		require.NoError(t, err)

		want := []extract.Link{
			{Text: "Home", URL: "https://example.com/home"},
			{Text: "About Us", URL: "https://example.com/about"},
			{Text: "Docs", URL: "https://other.test/docs"},
			{Text: "https://example.com/logo", URL: "https://example.com/logo"},
		}
		if diff := cmp.Diff(want, links); diff != "" {
			t.Errorf("link set mismatch. Diff:\n%s", diff)
		}
	})

	t.Run("keeps raw hrefs without a base", func(t *testing.T) {
		links, err := extract.Links(`<a href="/rel">Rel</a>`, "")
		require.NoError(t, err)

		require.Len(t, links, 1)
		assert.Equal(t, "/rel", links[0].URL)
	})

	t.Run("relative base paths resolve per RFC", func(t *testing.T) {
		links, err := extract.Links(`<a href="sibling">S</a>`, "https://example.com/dir/page.html")
		require.NoError(t, err)

		require.Len(t, links, 1)
		assert.Equal(t, "https://example.com/dir/sibling", links[0].URL)
	})

	t.Run("rejects an unparseable base", func(t *testing.T) {
		_, err := extract.Links(`<a href="/x">x</a>`, "http://bad url with spaces")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid base URL")
	})

	t.Run("no anchors yields an empty set", func(t *testing.T) {
		links, err := extract.Links("<p>plain text</p>", "https://example.com/")
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
