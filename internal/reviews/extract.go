package reviews

import (
	"strings"

	"github.com/Cyclone1070/skytrax-reviews/internal/scraper"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TextSelector locates the review body inside an article.
const TextSelector = "div.text_content"

// countryCutset is trimmed from the text following the author span, " (United Kingdom) ".
const countryCutset = " \t\r\n()"

// Extract builds one Review per article. Article i takes field i from each of
// the other lists independently, a short list only blanks that field.
func Extract(page scraper.PageResult) []Review {
	reviews := make([]Review, 0, len(page.Articles))
	for i, article := range page.Articles {
		reviews = append(reviews, Review{
			Review:  extractText(article),
			Date:    extractDate(nodeAt(page.Dates, i)),
			Rating:  extractRating(nodeAt(page.Ratings, i)),
			Country: extractCountry(nodeAt(page.Countries, i)),
		})
	}
	return reviews
}

// nodeAt returns nodes[i], or nil past the end of the list.
func nodeAt(nodes []*goquery.Selection, i int) *goquery.Selection {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

func missing(s *goquery.Selection) bool {
	return s == nil || s.Length() == 0
}

func extractText(article *goquery.Selection) string {
	if missing(article) {
		return NotAvailable
	}
	body := article.Find(TextSelector).First()
	if body.Length() == 0 {
		return NotAvailable
	}
	return strings.TrimSpace(body.Text())
}

func extractDate(date *goquery.Selection) string {
	if missing(date) {
		return NotAvailable
	}
	value, ok := date.Attr("datetime")
	if !ok {
		return NotAvailable
	}
	return value
}

func extractRating(rating *goquery.Selection) string {
	if missing(rating) {
		return NotAvailable
	}
	span := rating.Find("span").First()
	if span.Length() == 0 {
		return NotAvailable
	}
	return span.Text()
}

// extractCountry reads the node right after the author span, which is either a
// bare text node or an element holding the country.
func extractCountry(header *goquery.Selection) string {
	if missing(header) {
		return NotAvailable
	}
	span := header.Find("span").First()
	if span.Length() == 0 {
		return NotAvailable
	}
	sibling := span.Nodes[0].NextSibling
	if sibling == nil {
		return NotAvailable
	}

	text := sibling.Data
	if sibling.Type != html.TextNode {
		text = goquery.NewDocumentFromNode(sibling).Text()
	}
	return strings.Trim(text, countryCutset)
}
