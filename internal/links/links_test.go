package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFileLike_PathExtension(t *testing.T) {
	assert.True(t, IsFileLike("https://acme.com/reports/q1.pdf"))
	assert.True(t, IsFileLike("https://acme.com/a/b/data.xlsx"))
}

func TestIsFileLike_DirectoryURL(t *testing.T) {
	assert.False(t, IsFileLike("https://acme.com/reports/"))
	assert.False(t, IsFileLike("https://acme.com"))
}

func TestIsFileLike_ExtensionBeforeQuery(t *testing.T) {
	assert.True(t, IsFileLike("https://acme.com/view?file=report.pdf"))
	assert.True(t, IsFileLike("https://acme.com/doc.pdf#page=2"))
	assert.True(t, IsFileLike("https://acme.com/download?doc=annual_report.docx"))
}

func TestIsFileLike_NoExtension(t *testing.T) {
	assert.False(t, IsFileLike("https://acme.com/about"))
	assert.False(t, IsFileLike("https://acme.com/search?q=pdf"))
}

func TestIsFileLike_ExtensionTooLong(t *testing.T) {
	assert.False(t, IsFileLike("https://acme.com/file.abcdefg"))
}

func TestCleanRedirect_UnwrapsGoogleWrapper(t *testing.T) {
	out, ok := CleanRedirect("https://www.google.com/url?q=https%3A%2F%2Facme.com%2Fq1.pdf&sa=U")
	require.True(t, ok)
	assert.Equal(t, "https://acme.com/q1.pdf", out)
}

func TestCleanRedirect_UnwrapsURLParam(t *testing.T) {
	out, ok := CleanRedirect("https://www.google.com/url?url=https%3A%2F%2Facme.com%2Fdoc.docx")
	require.True(t, ok)
	assert.Equal(t, "https://acme.com/doc.docx", out)
}

func TestCleanRedirect_PassesThroughPlainHTTP(t *testing.T) {
	out, ok := CleanRedirect("https://acme.com/q1.pdf")
	require.True(t, ok)
	assert.Equal(t, "https://acme.com/q1.pdf", out)
}

func TestCleanRedirect_RejectsNonHTTP(t *testing.T) {
	_, ok := CleanRedirect("javascript:void(0)")
	assert.False(t, ok)
}

func TestCanonical_CaseInsensitiveHost(t *testing.T) {
	assert.Equal(t, Canonical("https://ACME.com/Q1.pdf"), Canonical("https://acme.com/Q1.pdf"))
}

func TestCanonical_PreservesPathCase(t *testing.T) {
	assert.NotEqual(t, Canonical("https://acme.com/a.pdf"), Canonical("https://acme.com/A.pdf"))
}

func TestCanonical_DropsFragment(t *testing.T) {
	assert.Equal(t, "https://acme.com/doc.pdf", Canonical("https://acme.com/doc.pdf#section"))
}

func TestSourceHost_StripsWWW(t *testing.T) {
	assert.Equal(t, "linkedin.com", SourceHost("https://www.linkedin.com/in/jane-doe"))
	assert.Equal(t, "rocketreach.co", SourceHost("https://rocketreach.co/jane"))
}

func TestNewFileRecord_DerivesFilename(t *testing.T) {
	rec := NewFileRecord("https://acme.com/reports/q1.pdf", "site:acme.com filetype:pdf")
	assert.Equal(t, "q1.pdf", rec.Filename)
	assert.Equal(t, "site:acme.com filetype:pdf", rec.Dork)
}

func TestNewFileRecord_EmptyLastSegment(t *testing.T) {
	rec := NewFileRecord("https://acme.com/reports/", "d")
	assert.Equal(t, "file", rec.Filename)
}
