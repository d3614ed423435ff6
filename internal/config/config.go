// Package config loads the scraper settings from defaults, an optional YAML file,
// REVIEWS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration validation errors.
var (
	ErrInvalidMaxPages = errors.New("max_pages must be at least 1")
	ErrMissingBaseURL  = errors.New("base_url must be an absolute http(s) URL")
	ErrMissingAirline  = errors.New("airline is required")
	ErrInvalidWorkers  = errors.New("workers must be at least 1")
	ErrInvalidDelay    = errors.New("min_delay and max_delay must be non-negative")
	ErrDelayRange      = errors.New("min_delay cannot exceed max_delay")
	ErrInvalidRate     = errors.New("requests_per_second must be non-negative")
	ErrInvalidTimeout  = errors.New("request_timeout must be non-negative")
	ErrMissingOutput   = errors.New("output is required")
	ErrInvalidFormat   = errors.New("format must be 'csv' or 'json'")
	ErrInvalidLogLevel = errors.New("log_level must be one of: debug, info, warn, error")
)

// EnvPrefix is prepended to every environment variable override, e.g. REVIEWS_MAX_PAGES.
const EnvPrefix = "REVIEWS"

// Config holds every setting of a scrape run. MaxPages is exclusive: pages
// 1..MaxPages-1 are fetched. A zero RequestTimeout leaves the collector's own
// timeout in place and a zero RequestsPerSecond disables the global throttle.
type Config struct {
	MaxPages          int           `mapstructure:"max_pages"`
	BaseURL           string        `mapstructure:"base_url"`
	Airline           string        `mapstructure:"airline"`
	Workers           int           `mapstructure:"workers"`
	MinDelay          time.Duration `mapstructure:"min_delay"`
	MaxDelay          time.Duration `mapstructure:"max_delay"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	Output            string        `mapstructure:"output"`
	Format            string        `mapstructure:"format"`
	LogLevel          string        `mapstructure:"log_level"`
	Development       bool          `mapstructure:"development"`
}

// Default returns the settings of a full British Airways run.
func Default() Config {
	return Config{
		MaxPages:       387,
		BaseURL:        "https://www.airlinequality.com/airline-reviews",
		Airline:        "british-airways",
		Workers:        10,
		MinDelay:       1 * time.Second,
		MaxDelay:       3 * time.Second,
		RequestTimeout: 30 * time.Second,
		Output:         "reviews.csv",
		Format:         "csv",
		LogLevel:       "info",
	}
}

// SetDefaults registers Default() on v so env variables and flags can override each key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("airline", d.Airline)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("min_delay", d.MinDelay)
	v.SetDefault("max_delay", d.MaxDelay)
	v.SetDefault("requests_per_second", d.RequestsPerSecond)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("development", d.Development)
}

// Load reads the optional config file at path, applies environment overrides and
// returns the validated configuration.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrMissingBaseURL
	}
	if strings.Trim(c.Airline, "/ ") == "" {
		return ErrMissingAirline
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return ErrInvalidDelay
	}
	if c.MinDelay > c.MaxDelay {
		return ErrDelayRange
	}
	if c.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}
	if c.RequestTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Output == "" {
		return ErrMissingOutput
	}
	switch c.Format {
	case "csv", "json":
	default:
		return ErrInvalidFormat
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// PageURLTemplate returns the fmt template for one page of the airline's reviews.
func (c *Config) PageURLTemplate() string {
	base := strings.TrimRight(c.BaseURL, "/")
	airline := strings.Trim(c.Airline, "/ ")
	return base + "/" + airline + "/page/%d/"
}
