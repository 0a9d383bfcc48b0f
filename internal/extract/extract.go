package extract

import (
	"regexp"
	"strings"

	"github.com/jonathan/osint-scout/internal/links"
	"github.com/jonathan/osint-scout/internal/search"
)

// Candidate is a normalized (first, last) name pair with provenance.
// Both tokens are lowercase, alphabetic, and at least two characters.
type Candidate struct {
	First      string
	Last       string
	RawTitle   string
	SourceHost string
}

var (
	// separatorRe splits "Name - Role at Company | Site" titles on the
	// first hyphen-like or pipe separator.
	separatorRe    = regexp.MustCompile(`[-–—|]`)
	nonAlphaSpace  = regexp.MustCompile(`[^a-zA-Z\s]`)
	nonAlpha       = regexp.MustCompile(`[^a-z]`)
	profileSlugRe  = regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z]+-[a-zA-Z]+-?)`)
	intelRejectWords = []string{"overview", "company"}
)

// Names runs source-aware extraction over raw hits. Candidates are
// deduplicated by (first, last) across the whole call, first occurrence
// keeping its provenance. Deterministic for a fixed input order.
func Names(hits []search.RawHit) []Candidate {
	seen := make(map[[2]string]bool)
	var out []Candidate

	add := func(first, last, title, host string) {
		first = cleanToken(first)
		last = cleanToken(last)
		if len(first) < 2 || len(last) < 2 {
			return
		}
		if isNoise(first) || isNoise(last) {
			return
		}
		key := [2]string{first, last}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, Candidate{First: first, Last: last, RawTitle: title, SourceHost: host})
	}

	for _, hit := range hits {
		host := links.SourceHost(hit.URL)

		var first, last string
		var ok bool
		source := DetectSource(hit.URL)
		switch source {
		case SourceProfile:
			first, last, ok = nameFromTitle(hit.Title)
			if !ok {
				first, last, ok = nameFromProfileURL(hit.URL)
			}
		case SourceAggregator:
			first, last, ok = nameFromTitle(hit.Title)
		case SourceIntel:
			first, last, ok = nameFromIntelTitle(hit.Title)
		default:
			first, last, ok = nameFromGenericTitle(hit.Title)
		}
		if ok {
			add(first, last, hit.Title, host)
		}

		// Profile URL slugs are an independent strong signal; try them even
		// when the title parse already produced a candidate.
		if source == SourceProfile {
			if f, l, ok := nameFromProfileURL(hit.URL); ok {
				add(f, l, hit.Title, host)
			}
		}
	}
	return out
}

// cleanToken lowercases a token and strips everything non-alphabetic.
func cleanToken(s string) string {
	return nonAlpha.ReplaceAllString(strings.ToLower(s), "")
}

// nameFromTitle parses "FirstName LastName - Role at Company | Site"
// titles: take the segment before the first separator, strip everything
// non-alphabetic, and accept two or more tokens as first/last name.
func nameFromTitle(title string) (first, last string, ok bool) {
	segment := separatorRe.Split(title, 2)[0]
	tokens := strings.Fields(nonAlphaSpace.ReplaceAllString(segment, ""))
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], tokens[len(tokens)-1], true
}

// nameFromIntelTitle applies the title heuristic but rejects organization
// pages, which the company-intelligence site titles with "overview" or the
// company name itself.
func nameFromIntelTitle(title string) (first, last string, ok bool) {
	lower := strings.ToLower(title)
	for _, word := range intelRejectWords {
		if strings.Contains(lower, word) {
			return "", "", false
		}
	}
	return nameFromTitle(title)
}

// nameFromGenericTitle extracts from unrecognized hosts with a tighter
// bound: a separator must be present and the name segment must hold two to
// four tokens, suppressing false positives on generic pages.
func nameFromGenericTitle(title string) (first, last string, ok bool) {
	parts := separatorRe.Split(title, 2)
	if len(parts) < 2 {
		return "", "", false
	}
	tokens := strings.Fields(nonAlphaSpace.ReplaceAllString(parts[0], ""))
	if len(tokens) < 2 || len(tokens) > 4 {
		return "", "", false
	}
	return tokens[0], tokens[len(tokens)-1], true
}

// nameFromProfileURL parses profile URL slugs of the form
// /in/firstname-lastname[-hexid], accepting only alphabetic segments of at
// least two characters.
func nameFromProfileURL(rawURL string) (first, last string, ok bool) {
	m := profileSlugRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", false
	}
	parts := strings.Split(strings.TrimRight(m[1], "-"), "-")
	if len(parts) < 2 {
		return "", "", false
	}
	first, last = parts[0], parts[1]
	if len(first) < 2 || len(last) < 2 {
		return "", "", false
	}
	return first, last, true
}
