// File: cmd/links.go
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
	"github.com/xkilldash9x/browsertap/pkg/extract"
)

// newLinksCmd creates and configures the `links` command.
func newLinksCmd(provider browserProvider) *cobra.Command {
	var asJSON bool

	linksCmd := &cobra.Command{
		Use:   "links [url]",
		Short: "Extract hyperlinks from a tab",
		Long: `Extracts the hyperlinks of the active tab, or of a freshly opened tab
when a URL argument is given. Relative links are resolved against the tab's
URL and duplicates are dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			settings, err := settingsFromContext(cmd.Context())
			if err != nil {
				return err
			}
			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			return runLinks(logger, settings.BrowserConfig(), provider, target, asJSON, cmd.OutOrStdout())
		},
	}

	linksCmd.Flags().BoolVar(&asJSON, "json", false, "emit the links as JSON")
	return linksCmd
}

// runLinks contains the core, testable logic for link extraction.
func runLinks(logger *zap.Logger, cfg browser.Config, provider browserProvider, target string, asJSON bool, out io.Writer) error {
	cfg.Logger = logger
	b, err := provider.Connect(cfg)
	if err != nil {
		return err
	}
	defer b.Disconnect()

	tab, err := resolveTab(b, target)
	if err != nil {
		return err
	}

	links, err := extract.LinksFromPage(tab.Page())
	if err != nil {
		return err
	}
	logger.Debug("links extracted", zap.Int("count", len(links)), zap.String("url", tab.URL()))

	if asJSON {
		if links == nil {
			links = []extract.Link{}
		}
		data, err := json.MarshalIndent(links, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize links: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tTEXT")
	for _, link := range links {
		fmt.Fprintf(tw, "%s\t%s\n", link.URL, link.Text)
	}
	return tw.Flush()
}
