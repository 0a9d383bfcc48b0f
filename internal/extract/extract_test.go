package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/osint-scout/internal/search"
)

func TestDetectSource(t *testing.T) {
	assert.Equal(t, SourceProfile, DetectSource("https://www.linkedin.com/in/jane-doe"))
	assert.Equal(t, SourceAggregator, DetectSource("https://rocketreach.co/jane-doe-email"))
	assert.Equal(t, SourceIntel, DetectSource("https://www.zoominfo.com/p/Jane-Doe/123"))
	assert.Equal(t, SourceGeneric, DetectSource("https://acme.com/team"))
}

func TestNames_ProfileTitle(t *testing.T) {
	hits := []search.RawHit{{
		Title: "Jane Doe - Security Lead at Acme | LinkedIn",
		URL:   "https://www.linkedin.com/in/jane-doe-4f2a",
	}}

	out := Names(hits)
	require.Len(t, out, 1)
	assert.Equal(t, "jane", out[0].First)
	assert.Equal(t, "doe", out[0].Last)
	assert.Equal(t, "linkedin.com", out[0].SourceHost)
	assert.Equal(t, "Jane Doe - Security Lead at Acme | LinkedIn", out[0].RawTitle)
}

func TestNames_ProfileURLFallbackWhenTitleUnparseable(t *testing.T) {
	hits := []search.RawHit{{
		Title: "LinkedIn",
		URL:   "https://www.linkedin.com/in/john-roe-88ab12",
	}}

	out := Names(hits)
	require.Len(t, out, 1)
	assert.Equal(t, "john", out[0].First)
	assert.Equal(t, "roe", out[0].Last)
}

func TestNames_ProfileSlugIsIndependentCandidate(t *testing.T) {
	// Title and slug disagree; both candidates are kept.
	hits := []search.RawHit{{
		Title: "Janet Doering - CFO at Acme | LinkedIn",
		URL:   "https://www.linkedin.com/in/jane-doe",
	}}

	out := Names(hits)
	require.Len(t, out, 2)
	assert.Equal(t, "janet", out[0].First)
	assert.Equal(t, "doering", out[0].Last)
	assert.Equal(t, "jane", out[1].First)
	assert.Equal(t, "doe", out[1].Last)
}

func TestNames_AggregatorTitle(t *testing.T) {
	hits := []search.RawHit{{
		Title: "John Smith - Acme Corp | RocketReach",
		URL:   "https://rocketreach.co/john-smith-email_b4",
	}}

	out := Names(hits)
	require.Len(t, out, 1)
	assert.Equal(t, "john", out[0].First)
	assert.Equal(t, "smith", out[0].Last)
}

func TestNames_IntelRejectsOrganizationPages(t *testing.T) {
	hits := []search.RawHit{
		{Title: "Acme Corp - Overview, News & Competitors", URL: "https://www.zoominfo.com/c/acme/1"},
		{Title: "Acme Company Profile", URL: "https://www.zoominfo.com/c/acme/2"},
		{Title: "Mary Major - VP Engineering - ZoomInfo", URL: "https://www.zoominfo.com/p/Mary-Major/3"},
	}

	out := Names(hits)
	require.Len(t, out, 1)
	assert.Equal(t, "mary", out[0].First)
	assert.Equal(t, "major", out[0].Last)
}

func TestNames_GenericRequiresSeparator(t *testing.T) {
	out := Names([]search.RawHit{{Title: "Pat Jones", URL: "https://acme.com/team"}})
	assert.Empty(t, out)
}

func TestNames_GenericAcceptsTwoToFourTokens(t *testing.T) {
	out := Names([]search.RawHit{
		{Title: "Pat Jones - Engineering", URL: "https://acme.com/team/pat"},
		{Title: "Meet The Whole Wonderful Acme Team - Careers", URL: "https://acme.com/careers"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "pat", out[0].First)
	assert.Equal(t, "jones", out[0].Last)
}

func TestNames_GenericMiddleNamesUseFirstAndLastToken(t *testing.T) {
	out := Names([]search.RawHit{{Title: "Anna Maria Lopez - CTO", URL: "https://acme.com/x"}})
	require.Len(t, out, 1)
	assert.Equal(t, "anna", out[0].First)
	assert.Equal(t, "lopez", out[0].Last)
}

func TestNames_NoiseVocabularyFiltered(t *testing.T) {
	out := Names([]search.RawHit{
		{Title: "The Team - About Us", URL: "https://acme.com/about"},
		{Title: "Senior Lead - Careers", URL: "https://acme.com/jobs"},
	})
	assert.Empty(t, out)
}

func TestNames_ShortTokensRejected(t *testing.T) {
	out := Names([]search.RawHit{{Title: "J X - Acme", URL: "https://rocketreach.co/jx"}})
	assert.Empty(t, out)
}

func TestNames_DedupAcrossHits(t *testing.T) {
	hits := []search.RawHit{
		{Title: "Jane Doe - Security Lead | LinkedIn", URL: "https://linkedin.com/in/jane-doe"},
		{Title: "Jane Doe - Acme | RocketReach", URL: "https://rocketreach.co/jane-doe"},
	}

	out := Names(hits)
	require.Len(t, out, 1)
	assert.Equal(t, "linkedin.com", out[0].SourceHost)
}

func TestNames_Deterministic(t *testing.T) {
	hits := []search.RawHit{
		{Title: "Jane Doe - Security Lead at Acme | LinkedIn", URL: "https://linkedin.com/in/jane-doe-4f2a"},
		{Title: "John Smith - Acme | RocketReach", URL: "https://rocketreach.co/x"},
	}

	first := Names(hits)
	second := Names(hits)
	assert.Equal(t, first, second)
}

func TestNameFromProfileURL_RejectsSingleSegment(t *testing.T) {
	_, _, ok := nameFromProfileURL("https://linkedin.com/in/acme")
	assert.False(t, ok)
}

func TestNames_AccentedCharactersStripped(t *testing.T) {
	out := Names([]search.RawHit{{Title: "Renée Dubois - CFO | LinkedIn", URL: "https://linkedin.com/in/renee-dubois"}})
	require.NotEmpty(t, out)
	// The accented character is stripped during normalization.
	assert.Equal(t, "rene", out[0].First)
	assert.Equal(t, "dubois", out[0].Last)
}
