// Package browser provides a typed, hierarchical façade over a running
// Chromium's remote-debugging endpoint. It attaches to an existing browser
// process (it never launches one) and exposes the session as a strict
// ownership tree:
//
//	Browser -> Window -> Tab -> Page -> Selector
//
// A Browser owns the driver session and enumerates Windows (browsing
// contexts). A Window enumerates Tabs, rebuilding fresh wrappers per call.
// A Tab owns one lazily-created Page, the interaction surface for
// navigation, selection, script evaluation, and capture. A Selector is a
// live element query created from a Page. Upward references are non-owning;
// the remote-control protocol itself is supplied by playwright-go, reachable
// from every wrapper through its escape-hatch accessor.
//
// Typical use:
//
//	err := browser.With(browser.DefaultConfig(), func(b *browser.Browser) error {
//		w, err := b.Window(0)
//		if err != nil {
//			return err
//		}
//		tab, err := w.NewTab("https://example.com")
//		if err != nil {
//			return err
//		}
//		title, err := tab.Page().Title()
//		if err != nil {
//			return err
//		}
//		fmt.Println(title)
//		return tab.Close()
//	})
//
// Every operation returns a *Fault carrying one of the taxonomy kinds;
// match with errors.Is against the kind sentinels or the Is* helpers.
package browser
