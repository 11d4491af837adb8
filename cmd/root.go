// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/browsertap/internal/config"
	"github.com/xkilldash9x/browsertap/internal/observability"
	"github.com/xkilldash9x/browsertap/pkg/browser"
	"github.com/xkilldash9x/browsertap/pkg/extract"
)

var (
	cfgFile string
)

// contextKey is a private type for context values owned by this package.
type contextKey string

// settingsKey carries the resolved *config.Settings through the command
// context so subcommands and tests share one lookup path.
const settingsKey contextKey = "settings"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "browsertap",
	Short: "Attach to and drive a running Chromium over its debugging endpoint.",
	Long: `browsertap attaches to an already running Chromium instance through its
remote debugging endpoint and exposes its windows, tabs and pages for
inspection, navigation and capture. It never launches or owns the browser.`,
	// Version is dynamically set at build time. See cmd/version.go.
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// This runs before any command, setting up config and logging.
		if err := bindRootFlags(cmd); err != nil {
			return err
		}
		if err := initializeConfig(); err != nil {
			return err
		}

		settings, err := config.NewFromViper(viper.GetViper())
		if err != nil {
			// Initialize a fallback logger so the failure is still visible.
			observability.InitializeLogger(config.LoggerConfig{
				Level: "info", Format: "console", ServiceName: "browsertap",
			})
			return err
		}

		observability.InitializeLogger(settings.Logger)
		observability.GetLogger().Debug("starting browsertap",
			zap.String("version", Version),
			zap.String("endpoint", settings.BrowserConfig().EndpointURL()),
		)

		cmd.SetContext(context.WithValue(cmd.Context(), settingsKey, settings))
		return nil
	},
}

// Execute runs the root command with the given signal-aware context.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("command execution failed", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./browsertap.yaml)")
	rootCmd.PersistentFlags().String("host", "localhost", "debugging endpoint host")
	rootCmd.PersistentFlags().Int("port", 9222, "debugging endpoint port")
	rootCmd.PersistentFlags().Int("timeout", 30000, "attach timeout in milliseconds")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newTabsCmd(defaultBrowserProvider{}))
	rootCmd.AddCommand(newSnapshotCmd(defaultBrowserProvider{}))
	rootCmd.AddCommand(newLinksCmd(defaultBrowserProvider{}))
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// bindRootFlags binds the persistent flags to their viper keys so flags
// override values from the config file and environment.
func bindRootFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		"endpoint.host":    "host",
		"endpoint.port":    "port",
		"endpoint.timeout": "timeout",
		"logger.level":     "log-level",
		"logger.format":    "log-format",
		"logger.log_file":  "log-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// initializeConfig reads in the config file and ENV variables if set.
func initializeConfig() error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".browsertap"))
		}
		viper.SetConfigName("browsertap")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}

// settingsFromContext pulls the resolved settings placed there by
// PersistentPreRunE (or by a test).
func settingsFromContext(ctx context.Context) (*config.Settings, error) {
	settings, ok := ctx.Value(settingsKey).(*config.Settings)
	if !ok || settings == nil {
		return nil, fmt.Errorf("settings not found in command context")
	}
	return settings, nil
}

// browserProvider creates façade connections for commands. The indirection
// allows tests to substitute a driver-backed fake for a live browser.
type browserProvider interface {
	Connect(cfg browser.Config) (*browser.Browser, error)
}

// defaultBrowserProvider is the production implementation; it attaches to the
// configured endpoint through the real automation driver.
type defaultBrowserProvider struct{}

func (defaultBrowserProvider) Connect(cfg browser.Config) (*browser.Browser, error) {
	return browser.Connect(cfg)
}

// resolveTab picks the tab a command operates on: a fresh tab navigated to
// target when one is given, the active tab of the first window otherwise.
func resolveTab(b *browser.Browser, target string) (*browser.Tab, error) {
	windows, err := b.Windows()
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("no browser windows available")
	}

	if target == "" {
		return windows[0].ActiveTab()
	}

	normalized, err := extract.NormalizeURL(target)
	if err != nil {
		return nil, err
	}
	tab, err := windows[0].NewTab(normalized)
	if err != nil {
		// The tab may exist even when its initial navigation failed; close
		// it rather than leave a stray about:blank surface behind.
		if tab != nil {
			_ = tab.Close()
		}
		return nil, err
	}
	return tab, nil
}
