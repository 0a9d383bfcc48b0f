// Package extract turns raw search hits into normalized identity
// candidates using source-aware heuristics.
package extract

import "strings"

// Source identifies which extraction strategy applies to a hit, selected by
// a host pattern match on the hit's URL.
type Source string

const (
	// SourceProfile is a professional-network profile page. Strongest
	// signal: both the title and the URL slug carry the person's name.
	SourceProfile Source = "profile"
	// SourceAggregator is a contact-aggregator listing page.
	SourceAggregator Source = "aggregator"
	// SourceIntel is a company-intelligence site; its organization pages
	// need filtering out.
	SourceIntel Source = "intel"
	// SourceGeneric is any other host.
	SourceGeneric Source = "generic"
)

const (
	profilePathPattern = "linkedin.com/in/"
	aggregatorPattern  = "rocketreach.co"
	intelPattern       = "zoominfo.com"
)

// DetectSource picks the extraction strategy for a hit URL.
func DetectSource(rawURL string) Source {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.Contains(lower, profilePathPattern):
		return SourceProfile
	case strings.Contains(lower, aggregatorPattern):
		return SourceAggregator
	case strings.Contains(lower, intelPattern):
		return SourceIntel
	default:
		return SourceGeneric
	}
}
