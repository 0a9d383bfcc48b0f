package search

import (
	"context"

	"github.com/jonathan/osint-scout/internal/links"
	"github.com/jonathan/osint-scout/internal/report"
)

// Adapter paginates queries against a search API client. Failures are
// per-query: the adapter reports them and continues with the next query, so
// one bad query never aborts a batch. Cancellation returns whatever was
// gathered so far.
type Adapter struct {
	Client   Client
	MaxPages int
	Reporter report.Reporter
}

// NewAdapter wraps a client with pagination. maxPages is capped at the API
// ceiling.
func NewAdapter(client Client, maxPages int, rep report.Reporter) *Adapter {
	if maxPages < 1 || maxPages > MaxPages {
		maxPages = MaxPages
	}
	if rep == nil {
		rep = report.Nop{}
	}
	return &Adapter{Client: client, MaxPages: maxPages, Reporter: rep}
}

// FetchNamed gathers (title, url) pairs for each query, walking pages until
// an empty page, a per-query error, or cancellation.
func (a *Adapter) FetchNamed(ctx context.Context, queries []string) []RawHit {
	var hits []RawHit
	for i, q := range queries {
		if ctx.Err() != nil {
			return hits
		}
		a.Reporter.Line("API [%d/%d] %s", i+1, len(queries), q)
		n := 0
		for _, hit := range a.paginate(ctx, q) {
			if hit.Title != "" || hit.Href() != "" {
				hits = append(hits, RawHit{Title: hit.Title, URL: hit.Href()})
				n++
			}
		}
		a.Reporter.Line("  %d results", n)
	}
	return hits
}

// FetchFileLinks gathers file-like URLs for each query, also scanning each
// hit's related sub-links. Deduplicates within the call by exact URL.
func (a *Adapter) FetchFileLinks(ctx context.Context, queries []string) []FileLink {
	var out []FileLink
	seen := make(map[string]bool)
	add := func(href, dork string) {
		if href != "" && links.IsFileLike(href) && !seen[href] {
			seen[href] = true
			out = append(out, FileLink{URL: href, Dork: dork})
		}
	}
	for i, q := range queries {
		if ctx.Err() != nil {
			return out
		}
		a.Reporter.Line("API [%d/%d] %s", i+1, len(queries), q)
		before := len(out)
		for _, hit := range a.paginate(ctx, q) {
			add(hit.Href(), q)
			for _, sub := range hit.Sitelinks {
				add(sub.Href(), q)
			}
		}
		a.Reporter.Line("  %d links", len(out)-before)
	}
	return out
}

// paginate walks one query's pages. An error or an empty page stops the
// query; errors are reported, not propagated.
func (a *Adapter) paginate(ctx context.Context, query string) []Hit {
	var all []Hit
	for page := 1; page <= a.MaxPages; page++ {
		if ctx.Err() != nil {
			return all
		}
		resp, err := a.Client.Search(ctx, query, page)
		if err != nil {
			a.Reporter.Warn("  %v", err)
			return all
		}
		if len(resp.Organic) == 0 {
			return all
		}
		all = append(all, resp.Organic...)
	}
	return all
}
