// Package reviews turns fetched review pages into flat records. It drives a
// bounded pool of page fetches and aligns each page's node lists by position.
package reviews

import "time"

// NotAvailable stands in for any field that could not be extracted.
const NotAvailable = "N/A"

// Review is one flat output row. Every field is always set, falling back to NotAvailable.
type Review struct {
	Review  string `csv:"review" json:"review"`
	Date    string `csv:"date" json:"date"`
	Rating  string `csv:"rating" json:"rating"`
	Country string `csv:"country" json:"country"`
}

// ReviewSet is every review of a run. Pages appear in completion order,
// reviews within a page keep their position on the page.
type ReviewSet []Review

// Report summarizes one Collect run.
type Report struct {
	Reviews ReviewSet
	// Pages counts every submitted page, whatever its outcome.
	Pages            int
	PagesWithReviews int
	PagesEmpty       int
	PagesFailed      int
	Elapsed          time.Duration
}
