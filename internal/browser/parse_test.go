package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<a href="https://acme.com/about"><h3>About Acme</h3></a>
<a href="https://www.linkedin.com/in/jane-doe-4f2a"><h3>Jane Doe - Security Lead at Acme | LinkedIn</h3></a>
<h3>Orphan heading</h3>
<a href="https://www.google.com/url?q=https%3A%2F%2Facme.com%2Fq1.pdf&amp;sa=U">report</a>
<a id="pnnext" href="/search?q=acme&amp;start=10">Next</a>
</body></html>`

func TestParseNamed_ExtractsLinkedHeadings(t *testing.T) {
	hits := parseNamed(resultsPage)
	require.Len(t, hits, 2)
	assert.Equal(t, "About Acme", hits[0].Title)
	assert.Equal(t, "https://acme.com/about", hits[0].URL)
	assert.Equal(t, "Jane Doe - Security Lead at Acme | LinkedIn", hits[1].Title)
}

func TestParseNamed_SkipsOrphanHeadings(t *testing.T) {
	hits := parseNamed(`<html><body><h3>No link</h3></body></html>`)
	assert.Empty(t, hits)
}

func TestParseAnchors_ReturnsAllHrefs(t *testing.T) {
	hrefs := parseAnchors(resultsPage)
	assert.Len(t, hrefs, 4)
	assert.Contains(t, hrefs, "https://www.google.com/url?q=https%3A%2F%2Facme.com%2Fq1.pdf&sa=U")
}

func TestHasNextPage(t *testing.T) {
	assert.True(t, hasNextPage(resultsPage))
	assert.False(t, hasNextPage(`<html><body><a href="/x">x</a></body></html>`))
}

func TestIsClosedErr_KnownMessages(t *testing.T) {
	assert.True(t, IsClosedErr(errors.New("context canceled: target closed")))
	assert.True(t, IsClosedErr(errors.New("Browser has been closed")))
	assert.True(t, IsClosedErr(errors.New("websocket: connection closed unexpectedly")))
}

func TestIsClosedErr_OtherErrors(t *testing.T) {
	assert.False(t, IsClosedErr(nil))
	assert.False(t, IsClosedErr(errors.New("navigation timeout")))
}

func TestHasCaptcha(t *testing.T) {
	assert.True(t, hasCaptcha(`<div class="g-recaptcha"></div>`))
	assert.True(t, hasCaptcha(`Please complete the CAPTCHA to continue`))
	assert.False(t, hasCaptcha(`<html><body>ten blue links</body></html>`))
}

func TestSearchURL_EscapesQueryAndPaginates(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/search?q=site%3Aacme.com+filetype%3Apdf&start=20",
		searchURL("site:acme.com filetype:pdf", 2))
}
