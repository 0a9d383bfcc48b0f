// Package aggregate merges results from the two data sources and resolves
// the source selection policy.
package aggregate

import (
	"fmt"

	"github.com/jonathan/osint-scout/internal/links"
	"github.com/jonathan/osint-scout/internal/search"
)

// Policy selects which sources a run uses.
type Policy string

const (
	// PolicyAuto runs the API when a credential is available and always
	// runs the browser; the sources complement each other.
	PolicyAuto Policy = "auto"
	// PolicyAPI runs only the search API.
	PolicyAPI Policy = "api"
	// PolicyBrowser runs only the browser scraper.
	PolicyBrowser Policy = "browser"
)

// PolicyError is a configuration error in source selection, fatal before
// any network or browser activity.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("source policy error: %s", e.Message)
}

// ParsePolicy validates a policy flag value.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAuto, PolicyAPI, PolicyBrowser:
		return Policy(s), nil
	default:
		return "", &PolicyError{Message: fmt.Sprintf("unknown source %q (want auto, api, or browser)", s)}
	}
}

// Resolve decides which adapters run. Forcing the API without a credential
// is a hard error.
func (p Policy) Resolve(hasAPIKey bool) (useAPI, useBrowser bool, err error) {
	switch p {
	case PolicyAPI:
		if !hasAPIKey {
			return false, false, &PolicyError{Message: "--source api requires an API key"}
		}
		return true, false, nil
	case PolicyBrowser:
		return false, true, nil
	default:
		return hasAPIKey, true, nil
	}
}

// Label returns the human-readable source description for run summaries.
func Label(useAPI, useBrowser bool) string {
	switch {
	case useAPI && useBrowser:
		return "API + Browser"
	case useAPI:
		return "API"
	default:
		return "Browser"
	}
}

// MergeHits concatenates adapter outputs in invocation order, deduplicating
// by canonical URL. First occurrence wins, keeping its title and order.
func MergeHits(batches ...[]search.RawHit) []search.RawHit {
	seen := make(map[string]bool)
	var merged []search.RawHit
	for _, batch := range batches {
		for _, hit := range batch {
			key := links.Canonical(hit.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, hit)
		}
	}
	return merged
}

// MergeFileLinks deduplicates file links by canonical URL across sources,
// first occurrence keeping its originating dork.
func MergeFileLinks(batches ...[]search.FileLink) []search.FileLink {
	seen := make(map[string]bool)
	var merged []search.FileLink
	for _, batch := range batches {
		for _, link := range batch {
			key := links.Canonical(link.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, link)
		}
	}
	return merged
}
