// File: cmd/tabs.go
package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsertap/internal/observability"
	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// tabInfo is one row of the tabs listing.
type tabInfo struct {
	Window int    `json:"window"`
	Tab    int    `json:"tab"`
	Active bool   `json:"active"`
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
}

// newTabsCmd creates and configures the `tabs` command.
func newTabsCmd(provider browserProvider) *cobra.Command {
	var asJSON bool

	tabsCmd := &cobra.Command{
		Use:   "tabs",
		Short: "List the windows and tabs of the attached browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			settings, err := settingsFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return runTabs(logger, settings.BrowserConfig(), provider, asJSON, cmd.OutOrStdout())
		},
	}

	tabsCmd.Flags().BoolVar(&asJSON, "json", false, "emit the listing as JSON")
	return tabsCmd
}

// runTabs contains the core, testable logic for the tabs listing.
func runTabs(logger *zap.Logger, cfg browser.Config, provider browserProvider, asJSON bool, out io.Writer) error {
	cfg.Logger = logger
	b, err := provider.Connect(cfg)
	if err != nil {
		return err
	}
	defer b.Disconnect()

	windows, err := b.Windows()
	if err != nil {
		return err
	}

	rows := make([]tabInfo, 0)
	for wi, w := range windows {
		tabs, err := w.Tabs()
		if err != nil {
			return err
		}
		for ti, tab := range tabs {
			title, err := tab.Title()
			if err != nil {
				// A tab that cannot report a title still belongs in the listing.
				logger.Warn("failed to read tab title",
					zap.Int("window", wi), zap.Int("tab", ti), zap.Error(err))
			}
			rows = append(rows, tabInfo{
				Window: wi,
				Tab:    ti,
				Active: ti == 0,
				URL:    tab.URL(),
				Title:  title,
			})
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize tab listing: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tTAB\tACTIVE\tURL\tTITLE")
	for _, row := range rows {
		active := ""
		if row.Active {
			active = "*"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", row.Window, row.Tab, active, row.URL, row.Title)
	}
	return tw.Flush()
}
