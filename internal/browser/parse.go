package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/osint-scout/internal/search"
)

// parseNamed extracts result (title, url) pairs from a rendered results
// page: every h3 heading wrapped in a link.
func parseNamed(html string) []search.RawHit {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var hits []search.RawHit
	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		a := h.Closest("a")
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		title := strings.TrimSpace(h.Text())
		if title == "" {
			return
		}
		hits = append(hits, search.RawHit{Title: title, URL: href})
	})
	return hits
}

// parseAnchors returns every anchor href on the page.
func parseAnchors(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// hasNextPage reports whether the results page has a next-page affordance.
func hasNextPage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find("a#pnnext").Length() > 0
}
