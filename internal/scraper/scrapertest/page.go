// Package scrapertest builds review listing markup shaped like the live site for tests.
package scrapertest

import (
	"fmt"
	"strings"
)

// Entry is one review in a fixture page. Empty fields leave the matching
// element out of the markup.
type Entry struct {
	Text     string
	Date     string
	Rating   string
	Author   string
	Country  string
	NoRating bool
	NoHeader bool
}

// Page renders a full document with the review container holding entries.
// Dates live inside the header, so NoHeader on an entry drops its date too.
func Page(entries ...Entry) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Reviews</title></head><body>")
	b.WriteString(`<article class="comp comp_reviews-airline querylist position-content">`)
	for i, entry := range entries {
		fmt.Fprintf(&b, `<article class="comp comp_media-review-rated list-item media position-content review-%d">`, 1000+i)
		if !entry.NoRating {
			fmt.Fprintf(&b, `<div class="rating-10"><span itemprop="ratingValue">%s</span>/<span itemprop="bestRating">10</span></div>`, entry.Rating)
		}
		if !entry.NoHeader {
			b.WriteString(`<h3 class="text_sub_header userStatusWrapper">`)
			fmt.Fprintf(&b, `<span itemprop="author">%s</span>`, entry.Author)
			if entry.Country != "" {
				fmt.Fprintf(&b, " (%s) ", entry.Country)
			}
			if entry.Date != "" {
				fmt.Fprintf(&b, `<time itemprop="datePublished" datetime="%s">%s</time>`, entry.Date, entry.Date)
			}
			b.WriteString("</h3>")
		}
		if entry.Text != "" {
			fmt.Fprintf(&b, `<div class="text_content" itemprop="reviewBody">  %s  </div>`, entry.Text)
		}
		b.WriteString("</article>")
	}
	b.WriteString("</article></body></html>")
	return b.String()
}

// EmptyPage renders a document without the review container, as the site does
// past its last page.
func EmptyPage() string {
	return `<html><body><div class="comp comp_no-results">No reviews found</div></body></html>`
}

// Entries returns n distinct, fully populated entries for the given page.
func Entries(page, n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Text:    fmt.Sprintf("Review %d of page %d", i, page),
			Date:    fmt.Sprintf("2024-%02d-%02d", page%12+1, i%28+1),
			Rating:  fmt.Sprint((page+i)%10 + 1),
			Author:  fmt.Sprintf("Traveller %d-%d", page, i),
			Country: "United Kingdom",
		}
	}
	return entries
}
