package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/osint-scout/internal/email"
	"github.com/jonathan/osint-scout/internal/links"
)

func sampleContacts() []email.Record {
	return []email.Record{
		{Name: "Jane Doe", Email: "jane.doe@acme.com", First: "jane", Last: "doe", RawTitle: "Jane Doe - CISO", Source: "linkedin.com"},
		{Name: "John Roe", Email: "john.roe@acme.com", First: "john", Last: "roe", RawTitle: "John Roe | Acme", Source: "rocketreach.co"},
	}
}

func TestWrite_TextEmitsEmailsOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Contacts(sampleContacts()), FormatText))
	assert.Equal(t, "jane.doe@acme.com\njohn.roe@acme.com\n", buf.String())
}

func TestWrite_TextEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Contacts(nil), FormatText))
	assert.Empty(t, buf.String())
}

func TestWrite_JSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Contacts(sampleContacts()), FormatJSON))

	var decoded []email.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleContacts(), decoded)
}

func TestWrite_CSVHasHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Contacts(sampleContacts()), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,email,first,last,raw_title,source", lines[0])
	assert.Contains(t, lines[1], "jane.doe@acme.com")
}

func TestWrite_FileLinksText(t *testing.T) {
	records := []links.FileRecord{
		{URL: "https://acme.com/q1.pdf", Filename: "q1.pdf", Dork: "site:acme.com filetype:pdf"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FileLinks(records), FormatText))
	assert.Equal(t, "https://acme.com/q1.pdf\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"txt", "json", "csv"} {
		_, err := ParseFormat(ok)
		assert.NoError(t, err)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.txt")
	require.NoError(t, WriteFile(path, Contacts(sampleContacts()), FormatText))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "jane.doe@acme.com")
}

func TestNewRunDir_SanitizesLabel(t *testing.T) {
	base := t.TempDir()
	run, err := NewRunDir(base, "contacts", "Acme Corp / EMEA")
	require.NoError(t, err)

	assert.DirExists(t, run.Path)
	name := filepath.Base(run.Path)
	assert.Contains(t, name, "_contacts_")
	assert.Contains(t, name, "Acme_Corp___EMEA")
	assert.Len(t, run.ID, 8)
}

func TestNewRunDir_TruncatesLongLabel(t *testing.T) {
	base := t.TempDir()
	run, err := NewRunDir(base, "files", strings.Repeat("x", 120))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(filepath.Base(run.Path)), len("2006-01-02_150405")+len("_files_")+40)
}

func TestRunDir_WriteLog(t *testing.T) {
	run, err := NewRunDir(t.TempDir(), "contacts", "acme")
	require.NoError(t, err)
	require.NoError(t, run.WriteLog([]string{"Company: Acme", "Emails generated: 2"}))

	content, err := os.ReadFile(run.File("run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Run ID: "+run.ID)
	assert.Contains(t, string(content), "Emails generated: 2")
}

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, WriteLines(path, []string{"Jane Doe", "John Roe"}))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nJohn Roe\n", string(content))
}
