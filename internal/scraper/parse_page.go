package scraper

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Markup the review site exposes for one listing page.
const (
	ContainerSelector = "article.comp.comp_reviews-airline.querylist.position-content"
	DateSelector      = "time"
	RatingSelector    = "div.rating-10"
	CountrySelector   = "h3.text_sub_header"
)

// articleClass matches the full class attribute of a single review entry.
var articleClass = regexp.MustCompile(`comp comp_media-review-rated list-item media position-content review-\d+`)

// FindContainer returns the review-list region of a document, or an empty
// selection when the page has none.
func FindContainer(doc *goquery.Selection) *goquery.Selection {
	return doc.Find(ContainerSelector).First()
}

// ParsePage splits a container into its four node lists. No reconciliation
// between the lists happens here.
func ParsePage(container *goquery.Selection) PageResult {
	if container == nil || container.Length() == 0 {
		return PageResult{}
	}

	articles := container.Find("article").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return articleClass.MatchString(class)
	})

	return PageResult{
		Articles:  split(articles),
		Dates:     split(container.Find(DateSelector)),
		Ratings:   split(container.Find(RatingSelector)),
		Countries: split(container.Find(CountrySelector)),
	}
}

func split(selection *goquery.Selection) []*goquery.Selection {
	nodes := make([]*goquery.Selection, 0, selection.Length())
	selection.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, s)
	})
	return nodes
}
