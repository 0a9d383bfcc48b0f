// Package query provides dork templates and placeholder resolution.
package query

import (
	"fmt"
	"strings"
)

// Placeholders recognized in query templates. Substitution is literal; the
// caller is responsible for values being search-engine safe.
const (
	PlaceholderDomain  = "{domain}"
	PlaceholderCompany = "{company}"
)

// MissingPlaceholderError is returned when a template references a
// placeholder for which no value was supplied.
type MissingPlaceholderError struct {
	Placeholder string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("query references %s but no value was provided", e.Placeholder)
}

// Resolve substitutes placeholder values into a query template.
// It fails fast if the template references a placeholder without a value.
func Resolve(template, domain, company string) (string, error) {
	if strings.Contains(template, PlaceholderDomain) && domain == "" {
		return "", &MissingPlaceholderError{Placeholder: PlaceholderDomain}
	}
	if strings.Contains(template, PlaceholderCompany) && company == "" {
		return "", &MissingPlaceholderError{Placeholder: PlaceholderCompany}
	}
	out := template
	if domain != "" {
		out = strings.ReplaceAll(out, PlaceholderDomain, domain)
	}
	if company != "" {
		out = strings.ReplaceAll(out, PlaceholderCompany, company)
	}
	return out, nil
}

// ResolveAll resolves a batch of templates, failing on the first template
// with a missing placeholder value.
func ResolveAll(templates []string, domain, company string) ([]string, error) {
	resolved := make([]string, 0, len(templates))
	for _, t := range templates {
		q, err := Resolve(t, domain, company)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, q)
	}
	return resolved, nil
}

// ContactQueries returns the built-in query templates used to discover
// employee names for a company.
func ContactQueries() []string {
	return []string{
		`site:linkedin.com/in/ "{company}"`,
		`site:rocketreach.co "{domain}"`,
		`site:zoominfo.com/p/ "{company}"`,
	}
}

// Example is a documented dork from the built-in catalog.
type Example struct {
	Dork        string
	Description string
}

// Examples returns the built-in dork catalog shown by the examples command.
func Examples() []Example {
	return []Example{
		{"site:{domain} filetype:pdf", "PDFs on target domain"},
		{"site:{domain} filetype:doc OR filetype:docx", "Word docs"},
		{"site:{domain} filetype:xlsx OR filetype:xls", "Spreadsheets"},
		{"site:{domain} filetype:pptx OR filetype:ppt", "Presentations"},
		{"inurl:admin site:{domain}", "Admin panels"},
		{`intitle:"index of" site:{domain}`, "Open directories"},
		{"site:{domain} inurl:login", "Login pages"},
		{"site:{domain} filetype:env OR filetype:cfg", "Config files"},
		{`site:linkedin.com/in/ "{company}"`, "LinkedIn profiles"},
		{`site:rocketreach.co "{domain}"`, "RocketReach contacts"},
	}
}
