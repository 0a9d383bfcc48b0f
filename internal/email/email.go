// Package email generates candidate addresses from identity candidates
// using a fixed catalog of naming conventions.
package email

import (
	"fmt"
	"strings"

	"github.com/jonathan/osint-scout/internal/extract"
)

// Record is one generated address with the identity that produced it.
type Record struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	First    string `json:"first"`
	Last     string `json:"last"`
	RawTitle string `json:"raw_title"`
	Source   string `json:"source"`
}

// DefaultFormat is the convention used when the requested id is unknown.
const DefaultFormat = 1

// FormatHelp documents the convention catalog for CLI help text.
const FormatHelp = "1=first.last  2=firstlast  3=flast  4=first  5=last  " +
	"6=last.first  7=first_last  8=f.last  9=firstl  10=first.last1"

// formats maps a convention id to its address builder. Inputs are
// normalized lowercase tokens of length >= 2, so single-character indexing
// is safe.
var formats = map[int]func(f, l, d string) string{
	1:  func(f, l, d string) string { return fmt.Sprintf("%s.%s@%s", f, l, d) },
	2:  func(f, l, d string) string { return fmt.Sprintf("%s%s@%s", f, l, d) },
	3:  func(f, l, d string) string { return fmt.Sprintf("%c%s@%s", f[0], l, d) },
	4:  func(f, l, d string) string { return fmt.Sprintf("%s@%s", f, d) },
	5:  func(f, l, d string) string { return fmt.Sprintf("%s@%s", l, d) },
	6:  func(f, l, d string) string { return fmt.Sprintf("%s.%s@%s", l, f, d) },
	7:  func(f, l, d string) string { return fmt.Sprintf("%s_%s@%s", f, l, d) },
	8:  func(f, l, d string) string { return fmt.Sprintf("%c.%s@%s", f[0], l, d) },
	9:  func(f, l, d string) string { return fmt.Sprintf("%s%c@%s", f, l[0], d) },
	10: func(f, l, d string) string { return fmt.Sprintf("%s.%s1@%s", f, l, d) },
}

// Build derives one Record per candidate for the given domain and
// convention. Candidates missing a name component are skipped; records are
// deduplicated by generated address, first occurrence winning. The output
// is deterministic for a fixed input order.
func Build(candidates []extract.Candidate, domain string, formatID int) []Record {
	build, ok := formats[formatID]
	if !ok {
		build = formats[DefaultFormat]
	}

	seen := make(map[string]bool)
	var out []Record
	for _, c := range candidates {
		if c.First == "" || c.Last == "" {
			continue
		}
		addr := build(c.First, c.Last, domain)
		if seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, Record{
			Name:     displayName(c.First, c.Last),
			Email:    addr,
			First:    c.First,
			Last:     c.Last,
			RawTitle: c.RawTitle,
			Source:   c.SourceHost,
		})
	}
	return out
}

// displayName title-cases the normalized name tokens.
func displayName(first, last string) string {
	return titleCase(first) + " " + titleCase(last)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
