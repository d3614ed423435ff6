package reviews_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/Cyclone1070/skytrax-reviews/internal/reviews"
	"github.com/Cyclone1070/skytrax-reviews/internal/scraper"
	"github.com/Cyclone1070/skytrax-reviews/internal/scraper/scrapertest"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

// parsePage runs a fixture document through the same container lookup the fetcher uses.
func parsePage(t testing.TB, document string) scraper.PageResult {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return scraper.ParsePage(scraper.FindContainer(doc.Selection))
}

func wrapContainer(articles ...string) string {
	return `<html><body><article class="comp comp_reviews-airline querylist position-content">` +
		strings.Join(articles, "") + `</article></body></html>`
}

func article(n int, inner string) string {
	return `<article class="comp comp_media-review-rated list-item media position-content review-` +
		strconv.Itoa(n) + `">` + inner + `</article>`
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		description string
		document    string
		want        []reviews.Review
	}{
		{
			description: "complete entries",
			document: scrapertest.Page(
				scrapertest.Entry{Text: "Great flight", Date: "2024-05-01", Rating: "9", Author: "Ann", Country: "United Kingdom"},
				scrapertest.Entry{Text: "Lost my bag", Date: "2024-04-28", Rating: "2", Author: "Bo", Country: "Canada"},
			),
			want: []reviews.Review{
				{Review: "Great flight", Date: "2024-05-01", Rating: "9", Country: "United Kingdom"},
				{Review: "Lost my bag", Date: "2024-04-28", Rating: "2", Country: "Canada"},
			},
		},
		{
			description: "three articles with two ratings leave the last rating unavailable",
			document: scrapertest.Page(
				scrapertest.Entry{Text: "one", Date: "2024-01-01", Rating: "1", Country: "France"},
				scrapertest.Entry{Text: "two", Date: "2024-01-02", Rating: "2", Country: "Spain"},
				scrapertest.Entry{Text: "three", Date: "2024-01-03", NoRating: true, Country: "Italy"},
			),
			want: []reviews.Review{
				{Review: "one", Date: "2024-01-01", Rating: "1", Country: "France"},
				{Review: "two", Date: "2024-01-02", Rating: "2", Country: "Spain"},
				{Review: "three", Date: "2024-01-03", Rating: reviews.NotAvailable, Country: "Italy"},
			},
		},
		{
			description: "a span without following text has no country",
			document: wrapContainer(
				article(1, `<div class="rating-10"><span>4</span></div>`+
					`<h3 class="text_sub_header"><span>Cy</span></h3>`+
					`<time datetime="2023-12-24">24th December 2023</time>`+
					`<div class="text_content">Fine</div>`),
			),
			want: []reviews.Review{
				{Review: "Fine", Date: "2023-12-24", Rating: "4", Country: reviews.NotAvailable},
			},
		},
		{
			description: "a country wrapped in an element after the span",
			document: wrapContainer(
				article(1, `<div class="rating-10"><span>7</span></div>`+
					`<h3 class="text_sub_header"><span>Di</span><em>(Germany)</em></h3>`+
					`<time datetime="2023-11-02">2nd November 2023</time>`+
					`<div class="text_content">Okay</div>`),
			),
			want: []reviews.Review{
				{Review: "Okay", Date: "2023-11-02", Rating: "7", Country: "Germany"},
			},
		},
		{
			description: "the rating keeps the span text as served",
			document: wrapContainer(
				article(1, `<div class="rating-10"><span> 8 </span>/<span>10</span></div>`+
					`<h3 class="text_sub_header"><span>Ed</span> (Norway) </h3>`+
					`<time datetime="2023-10-10">10th October 2023</time>`+
					`<div class="text_content">Smooth</div>`),
			),
			want: []reviews.Review{
				{Review: "Smooth", Date: "2023-10-10", Rating: " 8 ", Country: "Norway"},
			},
		},
		{
			description: "a blank sibling after the span yields an empty country",
			document: wrapContainer(
				article(1, `<div class="rating-10"><span>5</span></div>`+
					`<h3 class="text_sub_header"><span>Fay</span> () </h3>`+
					`<time datetime="2023-09-09">9th September 2023</time>`+
					`<div class="text_content">Late</div>`),
			),
			want: []reviews.Review{
				{Review: "Late", Date: "2023-09-09", Rating: "5", Country: ""},
			},
		},
		{
			description: "missing nested nodes fall back per field",
			document: wrapContainer(
				article(1, `<div class="rating-10">no score</div>`+
					`<h3 class="text_sub_header">anonymous</h3>`+
					`<time>undated</time>`),
			),
			want: []reviews.Review{
				{Review: reviews.NotAvailable, Date: reviews.NotAvailable, Rating: reviews.NotAvailable, Country: reviews.NotAvailable},
			},
		},
		{
			description: "no articles yield no reviews",
			document:    scrapertest.Page(),
			want:        []reviews.Review{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := reviews.Extract(parsePage(t, testCase.document))

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_ShortListsDoNotShiftOtherFields(t *testing.T) {
	page := parsePage(t, scrapertest.Page(scrapertest.Entries(1, 5)...))
	full := reviews.Extract(page)
	page.Ratings = page.Ratings[:2]

	got := reviews.Extract(page)

	if len(got) != 5 {
		t.Fatalf("got %d reviews, want 5", len(got))
	}
	for i := range got {
		wantRating := full[i].Rating
		if i >= 2 {
			wantRating = reviews.NotAvailable
		}
		want := reviews.Review{Review: full[i].Review, Date: full[i].Date, Rating: wantRating, Country: full[i].Country}
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("review %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestExtract_EmptyPageResult(t *testing.T) {
	if got := reviews.Extract(scraper.PageResult{}); len(got) != 0 {
		t.Errorf("got %d reviews from an empty page, want 0", len(got))
	}
}
