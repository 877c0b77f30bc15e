// Package pdfmeta pulls bibliographic hints out of paper PDFs to speed up
// adding entries to the BibTeX database.
package pdfmeta

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/suffix, registrant code of 4-9 digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// maxScanPages limits the scan; the DOI is almost always on the first page.
const maxScanPages = 3

// ExtractDOI scans the first pages of the PDF at path for a DOI. It returns
// "" without error when no DOI is found.
func ExtractDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxScanPages {
		pages = maxScanPages
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// FindDOI returns the first valid DOI in text, or "".
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if validDOI(match) {
			return match
		}
	}
	return ""
}

// validDOI checks that a candidate has a registrant and a non-empty suffix.
func validDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash > 0 && slash < len(doi)-1
}

// Stub returns a BibTeX skeleton for a DOI, ready to paste into the database
// and fill in.
func Stub(doi string) string {
	return fmt.Sprintf(`@article{%s,
  title = {},
  author = {},
  journal = {},
  year = {},
  doi = {%s},
}
`, suggestKey(doi), doi)
}

// suggestKey derives a citation-key-safe identifier from the DOI suffix.
func suggestKey(doi string) string {
	suffix := doi
	if i := strings.Index(doi, "/"); i >= 0 {
		suffix = doi[i+1:]
	}
	var b strings.Builder
	for _, r := range suffix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == '_' || r == '/':
			b.WriteByte('-')
		}
	}
	key := strings.Trim(b.String(), "-")
	if key == "" {
		key = "entry"
	}
	return key
}
