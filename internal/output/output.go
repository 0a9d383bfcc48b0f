// Package output serializes result records and manages timestamped run
// directories.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/osint-scout/internal/email"
	"github.com/jonathan/osint-scout/internal/links"
)

// Format selects a serialization for result records.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates an output format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want txt, json, or csv)", s)
	}
}

// Dataset is a format-independent view of a result set: plain lines for
// text output, columns and rows for CSV, and the original records for JSON.
type Dataset struct {
	Columns []string
	Rows    [][]string
	Lines   []string
	Records any
}

// Contacts builds a dataset from generated email records. Text mode emits
// one address per line.
func Contacts(records []email.Record) Dataset {
	ds := Dataset{
		Columns: []string{"name", "email", "first", "last", "raw_title", "source"},
		Records: records,
	}
	for _, r := range records {
		ds.Rows = append(ds.Rows, []string{r.Name, r.Email, r.First, r.Last, r.RawTitle, r.Source})
		ds.Lines = append(ds.Lines, r.Email)
	}
	return ds
}

// FileLinks builds a dataset from discovered file links. Text mode emits
// one URL per line.
func FileLinks(records []links.FileRecord) Dataset {
	ds := Dataset{
		Columns: []string{"url", "filename", "dork"},
		Records: records,
	}
	for _, r := range records {
		ds.Rows = append(ds.Rows, []string{r.URL, r.Filename, r.Dork})
		ds.Lines = append(ds.Lines, r.URL)
	}
	return ds
}

// Write serializes a dataset in the requested format.
func Write(w io.Writer, ds Dataset, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(ds.Records)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(ds.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(ds.Rows); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		if len(ds.Lines) == 0 {
			return nil
		}
		_, err := io.WriteString(w, strings.Join(ds.Lines, "\n")+"\n")
		return err
	}
}

// WriteFile serializes a dataset to a file.
func WriteFile(path string, ds Dataset, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	if err := Write(f, ds, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteLines writes one string per line, for the side files (names,
// raw titles) a contacts run produces.
func WriteLines(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}
