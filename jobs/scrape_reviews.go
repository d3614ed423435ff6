package jobs

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/skytrax-reviews/internal/config"
	"github.com/Cyclone1070/skytrax-reviews/internal/reviews"
	"github.com/Cyclone1070/skytrax-reviews/internal/scraper"
	"github.com/Cyclone1070/skytrax-reviews/internal/utils"
	"go.uber.org/zap"
)

// ScrapeReviews fetches every configured page, logs the run summary and saves
// the output file. Page failures only shrink the output. The returned error
// covers setup and the final write.
func ScrapeReviews(ctx context.Context, cfg *config.Config, log *zap.Logger) (reviews.Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	collector := utils.ConfiguredCollector(utils.CollectorOptions{RequestTimeout: cfg.RequestTimeout})
	fetcher, err := scraper.NewFetcher(collector, scraper.Options{
		URLTemplate:       cfg.PageURLTemplate(),
		Delay:             scraper.RandomDelay{Min: cfg.MinDelay, Max: cfg.MaxDelay},
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, log)
	if err != nil {
		return reviews.Report{}, fmt.Errorf("failed to build fetcher: %w", err)
	}

	log.Info("Scraping reviews",
		zap.String("airline", cfg.Airline),
		zap.Int("pages", max(cfg.MaxPages-1, 0)),
		zap.Int("workers", cfg.Workers),
	)
	report := reviews.NewAggregator(fetcher, cfg.Workers, log).Collect(ctx, cfg.MaxPages)

	log.Info("Finished", zap.Duration("elapsed", report.Elapsed))
	log.Info("Total number of reviews scraped",
		zap.Int("reviews", len(report.Reviews)),
		zap.Int("pages_with_reviews", report.PagesWithReviews),
		zap.Int("pages_empty", report.PagesEmpty),
		zap.Int("pages_failed", report.PagesFailed),
	)

	if err := SaveReviews(cfg.Output, report.Reviews, cfg.Format); err != nil {
		return report, err
	}
	log.Info("Saved reviews", zap.String("path", cfg.Output), zap.String("format", cfg.Format))
	return report, nil
}
