package reviews

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Cyclone1070/skytrax-reviews/internal/scraper"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers caps the number of pages fetched at once.
const DefaultWorkers = 10

// ErrTaskPanic wraps a panic recovered from a page task or its extraction.
var ErrTaskPanic = errors.New("page task panicked")

// PageFetcher fetches one listing page. Implementations must be safe for concurrent use.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) scraper.PageResult
}

// Aggregator fans page fetches out to a bounded pool and flattens the results.
type Aggregator struct {
	fetcher PageFetcher
	workers int
	log     *zap.Logger
}

type outcome struct {
	page   int
	result scraper.PageResult
	err    error
}

// NewAggregator returns an Aggregator running at most workers fetches at once.
// A non-positive workers count falls back to DefaultWorkers.
func NewAggregator(fetcher PageFetcher, workers int, log *zap.Logger) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{fetcher: fetcher, workers: workers, log: log}
}

// Collect fetches pages 1 through maxPages-1 and returns every review found.
// It returns once all submitted pages have finished. A failing page only loses
// its own rows.
func (a *Aggregator) Collect(ctx context.Context, maxPages int) Report {
	start := time.Now()
	report := Report{Reviews: ReviewSet{}}
	if maxPages <= 1 {
		return report
	}

	outcomes := make(chan outcome, a.workers)
	go a.submit(ctx, maxPages, outcomes)

	// Only this loop touches the report, tasks hand their pages over the channel.
	for o := range outcomes {
		report.Pages++
		if o.err != nil {
			report.PagesFailed++
			a.log.Error("Error in processing page result", zap.Int("page", o.page), zap.Error(o.err))
			continue
		}

		reviews, err := safeExtract(o.result)
		if err != nil {
			report.PagesFailed++
			a.log.Error("Error in processing page result", zap.Int("page", o.page), zap.Error(err))
			continue
		}
		if len(reviews) == 0 {
			report.PagesEmpty++
			continue
		}
		report.PagesWithReviews++
		report.Reviews = append(report.Reviews, reviews...)
	}

	report.Elapsed = time.Since(start)
	return report
}

// submit starts one task per page in ascending order, never more than a.workers
// at once, and closes outcomes after the last task has reported.
func (a *Aggregator) submit(ctx context.Context, maxPages int, outcomes chan<- outcome) {
	pool := semaphore.NewWeighted(int64(a.workers))
	var wg sync.WaitGroup

	for page := 1; page < maxPages; page++ {
		if err := pool.Acquire(ctx, 1); err != nil {
			outcomes <- outcome{page: page, err: fmt.Errorf("page not started: %w", err)}
			continue
		}
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			defer pool.Release(1)
			outcomes <- a.run(ctx, page)
		}(page)
	}

	wg.Wait()
	close(outcomes)
}

// run fetches one page, turning a panic or a cancelled empty fetch into an
// error outcome.
func (a *Aggregator) run(ctx context.Context, page int) (o outcome) {
	o.page = page
	defer func() {
		if r := recover(); r != nil {
			o.err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	o.result = a.fetcher.FetchPage(ctx, page)
	if o.result.Empty() && ctx.Err() != nil {
		o.err = fmt.Errorf("page cancelled: %w", ctx.Err())
	}
	return o
}

func safeExtract(page scraper.PageResult) (reviews []Review, err error) {
	defer func() {
		if r := recover(); r != nil {
			reviews, err = nil, fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return Extract(page), nil
}
