package scraper

import "github.com/PuerkitoBio/goquery"

// PageResult holds the four node lists pulled from one review page, each in
// document order. The lists are queried independently and may differ in length.
type PageResult struct {
	Articles  []*goquery.Selection
	Dates     []*goquery.Selection
	Ratings   []*goquery.Selection
	Countries []*goquery.Selection
}

// Empty reports whether the page produced no review articles.
func (p PageResult) Empty() bool {
	return len(p.Articles) == 0
}
