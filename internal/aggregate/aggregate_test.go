package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/osint-scout/internal/search"
)

func TestMergeHits_FirstOccurrenceWins(t *testing.T) {
	api := []search.RawHit{
		{Title: "Jane Doe - Acme", URL: "https://linkedin.com/in/jane-doe"},
	}
	browser := []search.RawHit{
		{Title: "JANE DOE | LinkedIn", URL: "https://LINKEDIN.com/in/jane-doe"},
		{Title: "John Roe - Acme", URL: "https://linkedin.com/in/john-roe"},
	}

	merged := MergeHits(api, browser)
	require.Len(t, merged, 2)
	// The API title survives; the browser duplicate (different host casing)
	// is dropped.
	assert.Equal(t, "Jane Doe - Acme", merged[0].Title)
	assert.Equal(t, "John Roe - Acme", merged[1].Title)
}

func TestMergeHits_PreservesInputOrder(t *testing.T) {
	merged := MergeHits([]search.RawHit{
		{Title: "b", URL: "https://b.com"},
		{Title: "a", URL: "https://a.com"},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, "b", merged[0].Title)
}

func TestMergeFileLinks_DedupsRedirectWrappedURLs(t *testing.T) {
	merged := MergeFileLinks(
		[]search.FileLink{{URL: "https://acme.com/q1.pdf", Dork: "api-dork"}},
		[]search.FileLink{{URL: "https://www.google.com/url?q=https%3A%2F%2Facme.com%2Fq1.pdf", Dork: "browser-dork"}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "api-dork", merged[0].Dork)
}

func TestParsePolicy_Valid(t *testing.T) {
	for _, s := range []string{"auto", "api", "browser"} {
		p, err := ParsePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, Policy(s), p)
	}
}

func TestParsePolicy_Unknown(t *testing.T) {
	_, err := ParsePolicy("serper")
	assert.Error(t, err)
}

func TestPolicyResolve_APIRequiresKey(t *testing.T) {
	_, _, err := PolicyAPI.Resolve(false)
	require.Error(t, err)

	useAPI, useBrowser, err := PolicyAPI.Resolve(true)
	require.NoError(t, err)
	assert.True(t, useAPI)
	assert.False(t, useBrowser)
}

func TestPolicyResolve_BrowserOnly(t *testing.T) {
	useAPI, useBrowser, err := PolicyBrowser.Resolve(true)
	require.NoError(t, err)
	assert.False(t, useAPI)
	assert.True(t, useBrowser)
}

func TestPolicyResolve_AutoRunsBothWithKey(t *testing.T) {
	useAPI, useBrowser, err := PolicyAuto.Resolve(true)
	require.NoError(t, err)
	assert.True(t, useAPI)
	assert.True(t, useBrowser)
}

func TestPolicyResolve_AutoBrowserOnlyWithoutKey(t *testing.T) {
	useAPI, useBrowser, err := PolicyAuto.Resolve(false)
	require.NoError(t, err)
	assert.False(t, useAPI)
	assert.True(t, useBrowser)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "API + Browser", Label(true, true))
	assert.Equal(t, "API", Label(true, false))
	assert.Equal(t, "Browser", Label(false, true))
}
