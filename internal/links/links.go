// Package links provides URL heuristics shared by the source adapters:
// deciding whether a URL points at a downloadable file, unwrapping search
// engine redirect wrappers, and canonicalizing URLs for deduplication.
package links

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	pathExtRe  = regexp.MustCompile(`\.[a-z0-9]{2,5}$`)
	queryExtRe = regexp.MustCompile(`\.[a-z0-9]{2,5}[?#]`)
	redirectRe = regexp.MustCompile(`[?&](?:q|url)=([^&]+)`)
)

// IsFileLike reports whether a URL looks like it points at a downloadable
// file: a non-empty path not ending in "/" with a short alphanumeric
// extension, either at the end of the path or right before a query string
// or fragment. It is a heuristic; the download engine corrects
// misclassifications from actual response headers.
func IsFileLike(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	parsed, err := url.Parse(lower)
	if err != nil {
		return false
	}
	path := parsed.Path
	if path == "" || strings.HasSuffix(path, "/") {
		return false
	}
	if pathExtRe.MatchString(path) {
		return true
	}
	if queryExtRe.MatchString(lower) {
		return true
	}
	// Extension at the end of the query string, e.g. /view?file=report.pdf.
	return pathExtRe.MatchString(lower)
}

// CleanRedirect unwraps Google result-page redirect wrappers
// (/url?q=... and /url?url=...) and rejects non-http links.
// The second return value is false when no usable URL remains.
func CleanRedirect(rawURL string) (string, bool) {
	if strings.Contains(rawURL, "/url?q=") || strings.Contains(rawURL, "/url?url=") {
		if m := redirectRe.FindStringSubmatch(rawURL); m != nil {
			if unescaped, err := url.QueryUnescape(m[1]); err == nil {
				return unescaped, true
			}
		}
	}
	if strings.HasPrefix(rawURL, "http") {
		return rawURL, true
	}
	return "", false
}

// Canonical returns the deduplication key for a URL: redirect wrappers
// unwrapped, scheme and host lowercased, fragment dropped. URLs that cannot
// be parsed canonicalize to themselves so they still dedup exactly.
func Canonical(rawURL string) string {
	cleaned, ok := CleanRedirect(rawURL)
	if !ok {
		cleaned = rawURL
	}
	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Host == "" {
		return cleaned
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	return parsed.String()
}

// SourceHost returns the hostname of a URL with any leading "www." removed.
// Used as provenance on extracted identities.
func SourceHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// FileRecord is a discovered downloadable link with its derived filename
// and the dork that produced it.
type FileRecord struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Dork     string `json:"dork"`
}

// NewFileRecord derives the display filename from the last path segment,
// truncated the way the result tables expect.
func NewFileRecord(rawURL, dork string) FileRecord {
	name := rawURL
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		name = rawURL[i+1:]
	}
	if name == "" {
		name = "file"
	}
	if len(name) > 80 {
		name = name[:80]
	}
	return FileRecord{URL: rawURL, Filename: name, Dork: dork}
}
