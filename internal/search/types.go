// Package search provides the paginated search API adapter and the result
// types shared by both data sources.
package search

// RawHit is an unprocessed (title, URL) pair from a search source.
type RawHit struct {
	Title string
	URL   string
}

// FileLink is a downloadable-looking URL together with the dork that
// produced it.
type FileLink struct {
	URL  string
	Dork string
}

// Hit is one organic result returned by the search API.
type Hit struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	URL       string    `json:"url"`
	Sitelinks []SubLink `json:"sitelinks"`
}

// SubLink is a related link nested under an organic result.
type SubLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	URL   string `json:"url"`
}

// Href returns the hit's link, falling back to the alternate url field some
// responses use.
func (h Hit) Href() string {
	if h.Link != "" {
		return h.Link
	}
	return h.URL
}

// Href returns the sub-link's target, with the same fallback as Hit.
func (s SubLink) Href() string {
	if s.Link != "" {
		return s.Link
	}
	return s.URL
}

// Response is one page of search API results.
type Response struct {
	Organic []Hit `json:"organic"`
}
