package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/skytrax-reviews/internal/config"
	"github.com/Cyclone1070/skytrax-reviews/internal/logger"
	"github.com/Cyclone1070/skytrax-reviews/jobs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "0.1.0"

// flagKeys maps command-line flags to their config keys.
var flagKeys = map[string]string{
	"pages":               "max_pages",
	"base-url":            "base_url",
	"airline":             "airline",
	"workers":             "workers",
	"min-delay":           "min_delay",
	"max-delay":           "max_delay",
	"requests-per-second": "requests_per_second",
	"request-timeout":     "request_timeout",
	"output":              "output",
	"format":              "format",
	"log-level":           "log_level",
	"development":         "development",
}

// newRootCommand builds the CLI. v receives the flag bindings so tests can
// inspect the resolved configuration.
func newRootCommand(v *viper.Viper) *cobra.Command {
	var cfgFile string
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:           "reviewscraper",
		Short:         "Scrape airline reviews into a flat file",
		Long:          `Fetches review listing pages from airlinequality.com concurrently and writes review, date, rating and country for every review to a CSV or JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			_, err = jobs.ScrapeReviews(cmd.Context(), cfg, log)
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "optional YAML config file")
	flags.Int("pages", defaults.MaxPages, "exclusive upper page bound, pages 1..pages-1 are fetched")
	flags.String("base-url", defaults.BaseURL, "review listing root URL")
	flags.String("airline", defaults.Airline, "airline path segment")
	flags.Int("workers", defaults.Workers, "concurrent page fetches")
	flags.Duration("min-delay", defaults.MinDelay, "shortest pause before each request")
	flags.Duration("max-delay", defaults.MaxDelay, "longest pause before each request")
	flags.Float64("requests-per-second", defaults.RequestsPerSecond, "global request rate cap, 0 disables it")
	flags.Duration("request-timeout", defaults.RequestTimeout, "per-request timeout, 0 keeps the client default")
	flags.StringP("output", "o", defaults.Output, "output file, overwritten on every run")
	flags.String("format", defaults.Format, "output format: csv or json")
	flags.String("log-level", defaults.LogLevel, "debug, info, warn or error")
	flags.Bool("development", defaults.Development, "human readable console logs")

	flags.VisitAll(func(flag *pflag.Flag) {
		if key, ok := flagKeys[flag.Name]; ok {
			_ = v.BindPFlag(key, flag)
		}
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reviewscraper version %s\n", version)
		},
	})

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	// Load .env file early so REVIEWS_* variables are available
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand(viper.New()).ExecuteContext(ctx)
}
