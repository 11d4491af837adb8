// File: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/browsertap/pkg/browser"
)

// EnvPrefix is the prefix for environment overrides; endpoint.port becomes
// BROWSERTAP_ENDPOINT_PORT.
const EnvPrefix = "BROWSERTAP"

// Settings holds the entire application configuration, layered from
// defaults, an optional YAML file, environment variables, and CLI flags.
type Settings struct {
	Endpoint EndpointConfig `mapstructure:"endpoint" yaml:"endpoint"`
	Page     PageConfig     `mapstructure:"page" yaml:"page"`
	Capture  CaptureConfig  `mapstructure:"capture" yaml:"capture"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// EndpointConfig locates the browser's remote-debugging endpoint.
type EndpointConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	// Timeout is the attach timeout in milliseconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
	// SlowMo delays every driver operation by the given milliseconds.
	SlowMo int `mapstructure:"slow_mo" yaml:"slow_mo"`
}

// PageConfig carries the per-surface defaults applied to pages the CLI
// touches.
type PageConfig struct {
	DefaultTimeout           int `mapstructure:"default_timeout" yaml:"default_timeout"`
	DefaultNavigationTimeout int `mapstructure:"default_navigation_timeout" yaml:"default_navigation_timeout"`
	ViewportWidth            int `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight           int `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// CaptureConfig controls snapshot output.
type CaptureConfig struct {
	// Format is "png" or "jpeg".
	Format string `mapstructure:"format" yaml:"format"`
	// Quality is the JPEG quality 1-100; 0 leaves the driver default.
	Quality        int    `mapstructure:"quality" yaml:"quality"`
	FullPage       bool   `mapstructure:"full_page" yaml:"full_page"`
	OmitBackground bool   `mapstructure:"omit_background" yaml:"omit_background"`
	// PDFFormat is the paper size for PDF rendering ("A4", "Letter", ...).
	PDFFormat string `mapstructure:"pdf_format" yaml:"pdf_format"`
}

// LoggerConfig mirrors the observability setup: console output plus an
// optional rotated JSON file.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Endpoint --
	v.SetDefault("endpoint.host", "localhost")
	v.SetDefault("endpoint.port", 9222)
	v.SetDefault("endpoint.timeout", 30000)
	v.SetDefault("endpoint.slow_mo", 0)

	// -- Page --
	v.SetDefault("page.default_timeout", 30000)
	v.SetDefault("page.default_navigation_timeout", 30000)
	v.SetDefault("page.viewport_width", 1280)
	v.SetDefault("page.viewport_height", 720)

	// -- Capture --
	v.SetDefault("capture.format", "png")
	v.SetDefault("capture.quality", 0)
	v.SetDefault("capture.full_page", false)
	v.SetDefault("capture.omit_background", false)
	v.SetDefault("capture.pdf_format", "A4")

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "browsertap")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// NewDefaultSettings returns Settings populated with default values.
func NewDefaultSettings() *Settings {
	v := viper.New()
	SetDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default settings: %v", err))
	}
	return &s
}

// NewFromViper builds Settings from a fully layered viper instance.
func NewFromViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// Validate checks the settings for sane values.
func (s *Settings) Validate() error {
	if err := s.Endpoint.Validate(); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if err := s.Page.Validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}
	if err := s.Capture.Validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

// Validate delegates to the connection rules the endpoint values feed into.
func (e EndpointConfig) Validate() error {
	return browser.Config{
		Host:    e.Host,
		Port:    e.Port,
		Timeout: e.Timeout,
		SlowMo:  e.SlowMo,
	}.Validate()
}

// Validate delegates to the page rules the values feed into.
func (p PageConfig) Validate() error {
	return browser.PageConfig{
		DefaultTimeout:           p.DefaultTimeout,
		DefaultNavigationTimeout: p.DefaultNavigationTimeout,
		ViewportWidth:            p.ViewportWidth,
		ViewportHeight:           p.ViewportHeight,
	}.Validate()
}

// Validate checks the capture settings.
func (c CaptureConfig) Validate() error {
	if err := c.screenshotConfig().Validate(); err != nil {
		return err
	}
	if c.PDFFormat == "" {
		return fmt.Errorf("pdf_format must not be empty")
	}
	return nil
}

func (c CaptureConfig) screenshotConfig() browser.ScreenshotConfig {
	cfg := browser.ScreenshotConfig{
		FullPage:       c.FullPage,
		OmitBackground: c.OmitBackground,
		Type:           c.Format,
	}
	if c.Quality > 0 {
		cfg.Quality = browser.Int(c.Quality)
	}
	return cfg
}

// BrowserConfig bridges the endpoint section into a connection config.
func (s *Settings) BrowserConfig() browser.Config {
	return browser.Config{
		Host:    s.Endpoint.Host,
		Port:    s.Endpoint.Port,
		Timeout: s.Endpoint.Timeout,
		SlowMo:  s.Endpoint.SlowMo,
	}
}

// PageConfig bridges the page section into per-surface defaults.
func (s *Settings) PageConfig() browser.PageConfig {
	return browser.PageConfig{
		DefaultTimeout:           s.Page.DefaultTimeout,
		DefaultNavigationTimeout: s.Page.DefaultNavigationTimeout,
		ViewportWidth:            s.Page.ViewportWidth,
		ViewportHeight:           s.Page.ViewportHeight,
	}
}

// ScreenshotConfig bridges the capture section into capture settings.
func (s *Settings) ScreenshotConfig() browser.ScreenshotConfig {
	return s.Capture.screenshotConfig()
}

// WriteDefault writes the default settings as YAML to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	data, err := yaml.Marshal(NewDefaultSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
