// Package utils provide utilities functions
package utils

import (
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// CollectorOptions tunes the shared collector. Zero values keep colly's defaults.
type CollectorOptions struct {
	RequestTimeout time.Duration
	// UserAgent pins a fixed agent instead of rotating a random one per request.
	UserAgent string
}

// ConfiguredCollector returns the collector shared by every page fetch.
// All workers go through its HTTP backend, so connections are pooled across them.
func ConfiguredCollector(opts CollectorOptions) *colly.Collector {
	collector := colly.NewCollector()

	if opts.RequestTimeout > 0 {
		collector.SetRequestTimeout(opts.RequestTimeout)
	}

	// A second run over the same pages must not be rejected by the visited-URL store.
	collector.AllowURLRevisit = true
	// Past the last page the site still answers with markup, parse it like any other page.
	collector.ParseHTTPErrorResponse = true

	// No LimitRule here: a per-domain rule serializes requests to the single review host.
	// The fetcher applies the random pause itself.

	if opts.UserAgent != "" {
		collector.UserAgent = opts.UserAgent
	} else {
		extensions.RandomUserAgent(collector)
	}
	extensions.Referer(collector)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")

		// NOTE: Disabling compresssion, should enable it if more camouflage is needed.
		// r.Headers.Set("Accept-Encoding", "gzip, deflate, br")

		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
		r.Headers.Set("Sec-Fetch-Dest", "document")
		r.Headers.Set("Sec-Fetch-Mode", "navigate")
		r.Headers.Set("Sec-Fetch-Site", "same-origin")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
	})

	return collector
}
