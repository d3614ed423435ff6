// Package scraper fetches single review listing pages and splits them into
// the node lists the aggregator zips into records.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrInvalidTemplate is returned when the page URL template has no %d verb.
var ErrInvalidTemplate = errors.New("url template must contain a %d page verb")

// containerKey carries the per-request container slot through the colly context.
const containerKey = "container"

// Options configures a Fetcher.
type Options struct {
	// URLTemplate is a fmt template with a single %d for the page index.
	URLTemplate string
	Delay       RandomDelay
	// RequestsPerSecond adds a throttle shared by all workers when positive.
	RequestsPerSecond float64
}

// Fetcher fetches review pages through one shared collector.
// It is safe for concurrent use.
type Fetcher struct {
	collector   *colly.Collector
	urlTemplate string
	delay       RandomDelay
	limiter     *rate.Limiter
	log         *zap.Logger
}

type containerSlot struct {
	container *goquery.Selection
}

// NewFetcher registers the page callback on collector and returns a Fetcher using it.
func NewFetcher(collector *colly.Collector, opts Options, log *zap.Logger) (*Fetcher, error) {
	if strings.Count(opts.URLTemplate, "%d") != 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, opts.URLTemplate)
	}
	if log == nil {
		log = zap.NewNop()
	}

	f := &Fetcher{
		collector:   collector,
		urlTemplate: opts.URLTemplate,
		delay:       opts.Delay,
		log:         log,
	}
	if opts.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	// Requests from every worker land here, the colly context routes each
	// document back to the FetchPage call that issued it.
	collector.OnHTML("html", func(e *colly.HTMLElement) {
		slot, ok := e.Request.Ctx.GetAny(containerKey).(*containerSlot)
		if !ok {
			return
		}
		slot.container = FindContainer(e.DOM)
	})

	return f, nil
}

// PageURL returns the listing URL of the given page.
func (f *Fetcher) PageURL(page int) string {
	return fmt.Sprintf(f.urlTemplate, page)
}

// FetchPage waits the courtesy delay, fetches one page and returns its node lists.
// Failures are logged and yield an empty PageResult, they never reach the caller.
func (f *Fetcher) FetchPage(ctx context.Context, page int) PageResult {
	pageURL := f.PageURL(page)

	if err := f.delay.Sleep(ctx); err != nil {
		f.log.Error("Error while scraping page", zap.Int("page", page), zap.Error(err))
		return PageResult{}
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			f.log.Error("Error while scraping page", zap.Int("page", page), zap.Error(err))
			return PageResult{}
		}
	}

	slot := &containerSlot{}
	requestCtx := colly.NewContext()
	requestCtx.Put(containerKey, slot)

	if err := f.collector.Request(http.MethodGet, pageURL, nil, requestCtx, nil); err != nil {
		f.log.Error("Error while scraping page", zap.Int("page", page), zap.Error(err))
		return PageResult{}
	}

	if slot.container == nil || slot.container.Length() == 0 {
		f.log.Warn("No review articles found on page", zap.String("url", pageURL))
		return PageResult{}
	}

	result := ParsePage(slot.container)
	f.log.Debug("Scraped page",
		zap.Int("page", page),
		zap.Int("articles", len(result.Articles)),
		zap.Int("dates", len(result.Dates)),
		zap.Int("ratings", len(result.Ratings)),
		zap.Int("countries", len(result.Countries)),
	)
	return result
}
