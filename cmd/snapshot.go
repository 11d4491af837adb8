// File: cmd/snapshot.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/browsertap/internal/config"
	"github.com/xkilldash9x/browsertap/internal/observability"
	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// snapshotOptions centralizes the runtime settings for a single snapshot run.
type snapshotOptions struct {
	Target      string
	OutDir      string
	All         bool
	Concurrency int
	PDF         bool
	WaitUntil   string
}

// newSnapshotCmd creates and configures the `snapshot` command.
func newSnapshotCmd(provider browserProvider) *cobra.Command {
	var opts snapshotOptions

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [url]",
		Short: "Capture a screenshot or PDF of a tab",
		Long: `Captures the active tab, a freshly opened tab when a URL argument is
given, or every tab of every window with --all. Output files are named from
the tab title and written into the --out directory.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind capture flags to their viper keys so the command line
			// overrides values from the config file and environment.
			bindings := map[string]string{
				"capture.format":          "format",
				"capture.quality":         "quality",
				"capture.full_page":       "full-page",
				"capture.omit_background": "omit-background",
				"capture.pdf_format":      "pdf-format",
			}
			for key, flag := range bindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Re-resolve the settings now that the capture flags are bound so
			// viper applies the overrides with the right precedence.
			settings, err := config.NewFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			if len(args) > 0 {
				opts.Target = args[0]
			}
			return runSnapshot(ctx, logger, settings, provider, opts, cmd.OutOrStdout())
		},
	}

	snapshotCmd.Flags().StringVarP(&opts.OutDir, "out", "o", ".", "directory to write captures into")
	snapshotCmd.Flags().BoolVar(&opts.All, "all", false, "capture every tab of every window")
	snapshotCmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "parallel captures with --all")
	snapshotCmd.Flags().BoolVar(&opts.PDF, "pdf", false, "render a PDF instead of a screenshot")
	snapshotCmd.Flags().StringVar(&opts.WaitUntil, "wait-until", "", "load state to wait for before capturing (load, domcontentloaded, networkidle)")
	snapshotCmd.Flags().String("format", "png", "screenshot format (png, jpeg)")
	snapshotCmd.Flags().Int("quality", 0, "jpeg quality 1-100 (0 uses the driver default)")
	snapshotCmd.Flags().Bool("full-page", false, "capture the full scrollable page")
	snapshotCmd.Flags().Bool("omit-background", false, "hide the default white background")
	snapshotCmd.Flags().String("pdf-format", "A4", "paper size for --pdf")

	return snapshotCmd
}

// snapshotTarget pairs a page with the file stem its capture is written to.
type snapshotTarget struct {
	page *browser.Page
	stem string
}

// runSnapshot contains the core, testable logic for capturing snapshots.
func runSnapshot(
	ctx context.Context,
	logger *zap.Logger,
	settings *config.Settings,
	provider browserProvider,
	opts snapshotOptions,
	out io.Writer,
) error {
	if opts.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", opts.Concurrency)
	}

	cfg := settings.BrowserConfig()
	cfg.Logger = logger
	b, err := provider.Connect(cfg)
	if err != nil {
		return err
	}
	defer b.Disconnect()

	targets, err := resolveSnapshotTargets(b, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := "." + settings.Capture.Format
	if opts.PDF {
		ext = ".pdf"
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.OutDir, target.stem+ext)
			if err := capturePage(logger, target.page, settings, opts, path); err != nil {
				return err
			}
			fmt.Fprintln(out, path)
			return nil
		})
	}
	return g.Wait()
}

// resolveSnapshotTargets decides which pages get captured and names them.
func resolveSnapshotTargets(b *browser.Browser, opts snapshotOptions) ([]snapshotTarget, error) {
	if !opts.All {
		tab, err := resolveTab(b, opts.Target)
		if err != nil {
			return nil, err
		}
		return []snapshotTarget{{page: tab.Page(), stem: captureStem(tab)}}, nil
	}

	windows, err := b.Windows()
	if err != nil {
		return nil, err
	}
	var targets []snapshotTarget
	for wi, w := range windows {
		tabs, err := w.Tabs()
		if err != nil {
			return nil, err
		}
		for ti, tab := range tabs {
			stem := fmt.Sprintf("w%d-t%d-%s", wi, ti, captureStem(tab))
			targets = append(targets, snapshotTarget{page: tab.Page(), stem: stem})
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no tabs available to capture")
	}
	return targets, nil
}

// capturePage applies the page defaults and writes one capture to path.
func capturePage(
	logger *zap.Logger,
	page *browser.Page,
	settings *config.Settings,
	opts snapshotOptions,
	path string,
) error {
	if err := page.Configure(settings.PageConfig()); err != nil {
		return err
	}
	if opts.WaitUntil != "" {
		if err := page.WaitForLoadState(browser.LoadState(opts.WaitUntil)); err != nil {
			return err
		}
	}

	var data []byte
	var err error
	if opts.PDF {
		data, err = page.PDF(browser.PDFOptions{Format: settings.Capture.PDFFormat})
	} else {
		shotCfg := settings.ScreenshotConfig()
		data, err = page.Screenshot(browser.ScreenshotOptions{Config: &shotCfg})
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	logger.Info("capture written",
		zap.String("path", path), zap.Int("bytes", len(data)), zap.String("url", page.URL()))
	return nil
}

// captureStem derives a file stem from the tab title, falling back to its URL.
func captureStem(tab *browser.Tab) string {
	if title, err := tab.Title(); err == nil {
		if stem := slugify(title); stem != "" {
			return stem
		}
	}
	if stem := slugify(tab.URL()); stem != "" {
		return stem
	}
	return "page"
}

// slugify reduces s to a lowercase token safe for filenames.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dashed := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dashed = false
		default:
			if !dashed && b.Len() > 0 {
				b.WriteByte('-')
				dashed = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > 48 {
		out = strings.Trim(out[:48], "-")
	}
	return out
}
