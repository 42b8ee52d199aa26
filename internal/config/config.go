// Package config handles configuration loading for tickersentiment.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TICKERSENTIMENT"

// Config represents the complete application configuration.
type Config struct {
	Tickers  []string       `mapstructure:"tickers"  yaml:"tickers"`
	Source   SourceConfig   `mapstructure:"source"   yaml:"source"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Report   ReportConfig   `mapstructure:"report"   yaml:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// SourceConfig describes the quote page headlines are scraped from.
type SourceConfig struct {
	BaseURL     string        `mapstructure:"base_url"     yaml:"base_url"`     // ticker is appended verbatim
	UserAgent   string        `mapstructure:"user_agent"   yaml:"user_agent"`   // the site rejects requests without one
	ContainerID string        `mapstructure:"container_id" yaml:"container_id"` // id of the news table element
	Timeout     time.Duration `mapstructure:"timeout"      yaml:"timeout"`
}

// AnalysisConfig holds pipeline settings.
type AnalysisConfig struct {
	ConcurrentFetches int                `mapstructure:"concurrent_fetches" yaml:"concurrent_fetches"` // 1 = strictly sequential
	Timezone          string             `mapstructure:"timezone"           yaml:"timezone"`           // zone the site lists times in
	Lexicon           map[string]float64 `mapstructure:"lexicon"            yaml:"lexicon"`            // extra word valences, -4..+4
}

// ReportConfig controls the chart and table output.
type ReportConfig struct {
	ChartPath string `mapstructure:"chart_path" yaml:"chart_path"` // empty disables the chart
	Format    string `mapstructure:"format"     yaml:"format"`     // "text", "json" or "html"
	Width     int    `mapstructure:"width"      yaml:"width"`
	Height    int    `mapstructure:"height"     yaml:"height"`
	Title     string `mapstructure:"title"      yaml:"title"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.tickersentiment/config.yaml (home directory)
//  3. /etc/tickersentiment/config.yaml (system)
//
// Environment variables override config file values.
// Format: TICKERSENTIMENT_<SECTION>_<KEY>, e.g., TICKERSENTIMENT_SOURCE_USER_AGENT
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".tickersentiment"))
	v.AddConfigPath("/etc/tickersentiment")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	cfg.Tickers = utils.ParseTickers(cfg.Tickers...)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("tickers", []string{"AMZN", "AMD", "FB"})

	// Source defaults
	v.SetDefault("source.base_url", "https://finviz.com/quote.ashx?t=")
	v.SetDefault("source.user_agent", "Mozilla/5.0 (compatible; tickersentiment/1.0)")
	v.SetDefault("source.container_id", "news-table")
	v.SetDefault("source.timeout", "30s")

	// Analysis defaults
	v.SetDefault("analysis.concurrent_fetches", 1)
	v.SetDefault("analysis.timezone", "America/New_York")

	// Report defaults
	v.SetDefault("report.chart_path", "sentiment.svg")
	v.SetDefault("report.format", "text")
	v.SetDefault("report.width", 1200)
	v.SetDefault("report.height", 800)
	v.SetDefault("report.title", "Daily Average Sentiment per Ticker")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv reads the ticker list from the environment. AutomaticEnv
// only applies to keys viper already knows as scalars, so a comma list
// is handled here.
func overrideFromEnv(cfg *Config) {
	if list := os.Getenv(EnvPrefix + "_TICKERS"); list != "" {
		cfg.Tickers = utils.ParseTickers(list)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Source.BaseURL) == "":
		return errors.New("source.base_url must not be empty")
	case strings.TrimSpace(c.Source.UserAgent) == "":
		return errors.New("source.user_agent must not be empty")
	case strings.TrimSpace(c.Source.ContainerID) == "":
		return errors.New("source.container_id must not be empty")
	case c.Source.Timeout < 0:
		return fmt.Errorf("source.timeout must not be negative, got %s", c.Source.Timeout)
	case c.Analysis.ConcurrentFetches < 1:
		return fmt.Errorf("analysis.concurrent_fetches must be >= 1, got %d", c.Analysis.ConcurrentFetches)
	}

	switch strings.ToLower(strings.TrimSpace(c.Report.Format)) {
	case "text", "json", "html":
	default:
		return fmt.Errorf("report.format must be text, json or html, got %q", c.Report.Format)
	}

	if _, err := utils.LoadLocation(c.Analysis.Timezone); err != nil {
		return fmt.Errorf("analysis.timezone: %w", err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
