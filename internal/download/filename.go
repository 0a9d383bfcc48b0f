package download

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// mimeExtensions maps response content types to the extension the saved
// file should carry.
var mimeExtensions = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/vnd.ms-powerpoint":                                     ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"text/plain":                   ".txt",
	"text/csv":                     ".csv",
	"image/jpeg":                   ".jpg",
	"image/png":                    ".png",
	"image/gif":                    ".gif",
}

// scriptExtensions are server-side script extensions that say nothing about
// the payload; when the content type maps to a known binary extension, the
// filename is corrected to match.
var scriptExtensions = map[string]bool{
	".php": true, ".asp": true, ".aspx": true, ".jsp": true, ".cgi": true,
}

// reservedNames are device names that are illegal as filenames on common
// filesystems; they get an underscore prefix.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// deriveFilename decides what a downloaded response should be saved as:
// Content-Disposition first (the extended RFC 5987 form is handled by the
// mime package), then the URL path's last segment, with script extensions
// corrected from the content type and a synthetic fallback name when
// nothing usable remains. index is the 1-based position in the batch, used
// for the fallback.
func deriveFilename(header http.Header, rawURL string, index int) string {
	var name string
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	if name == "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			base := path.Base(parsed.Path)
			if base != "/" && base != "." {
				if unescaped, err := url.PathUnescape(base); err == nil {
					name = unescaped
				} else {
					name = base
				}
			}
		}
	}

	contentType := header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	mimeExt := mimeExtensions[strings.ToLower(strings.TrimSpace(contentType))]

	if name != "" {
		if ext := strings.ToLower(path.Ext(name)); scriptExtensions[ext] && mimeExt != "" {
			name = strings.TrimSuffix(name, path.Ext(name)) + mimeExt
		}
	}
	if name == "" || !strings.Contains(name, ".") {
		name = fmt.Sprintf("file_%d%s", index, mimeExt)
	}
	return Sanitize(name)
}

// Sanitize makes a filename safe on common filesystems: illegal and control
// characters replaced or stripped, trailing dots and spaces removed,
// reserved device names prefixed with an underscore.
func Sanitize(name string) string {
	for _, c := range `<>:"|?*/\` {
		name = strings.ReplaceAll(name, string(c), "_")
	}
	var b strings.Builder
	for _, r := range name {
		if r >= 32 {
			b.WriteRune(r)
		}
	}
	name = strings.Trim(b.String(), ". ")
	if name == "" {
		name = "file"
	}
	stem := strings.TrimSuffix(name, path.Ext(name))
	if reservedNames[strings.ToUpper(stem)] {
		name = "_" + name
	}
	return name
}
