// Package render turns parsed BibTeX entries into the publication-list HTML
// fragment: one heading and reverse-numbered list per year, newest first.
package render

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"pubsite/internal/bibtex"
	"pubsite/internal/latex"
)

// NoTitleFallback is shown when a record has no title field.
const NoTitleFallback = "No title specified"

// UndatedLabel groups records that have no year field.
const UndatedLabel = "Undated"

// Render produces the full HTML fragment for all entries: year headings and
// reverse-numbered lists, grouped newest-first, newline-joined. The running
// number starts at the total entry count and each group consumes its size, so
// every number from 1..total appears exactly once across the document.
func Render(entries []bibtex.Entry) string {
	groups := groupByYear(entries)

	var lines []string
	counter := len(entries)
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf(`<h3 class="year-header">%s</h3>`, html.EscapeString(g.label)))
		lines = append(lines, fmt.Sprintf(`<ol class="publication-list" reversed start="%d">`, counter))
		for _, e := range g.entries {
			lines = append(lines, EntryHTML(e))
		}
		lines = append(lines, "</ol>")
		counter -= len(g.entries)
	}
	return strings.Join(lines, "\n")
}

// EntryHTML renders one record as a list-item fragment: linked or plain
// title, then author and venue blocks. Missing optional fields degrade to
// fallback text rather than failing the record.
func EntryHTML(e bibtex.Entry) string {
	title, ok := e.Field("title")
	if !ok {
		title = NoTitleFallback
	}
	titleText := html.EscapeString(latex.ToUnicode(title))

	var titleHTML string
	if href := LinkURL(e); href != "" {
		titleHTML = fmt.Sprintf(`<a class="pub-title" href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			html.EscapeString(href), titleText)
	} else {
		titleHTML = fmt.Sprintf(`<span class="pub-title">%s</span>`, titleText)
	}

	return fmt.Sprintf(`<li>%s<div class="pub-authors">%s</div><div class="pub-venue">%s</div></li>`,
		titleHTML, FormatAuthors(e.First("author")), Venue(e))
}

// LinkURL resolves the link target for an entry. A DOI overrides an explicit
// url field: http(s)-prefixed DOI values are used verbatim, anything else is
// turned into a doi.org URL.
func LinkURL(e bibtex.Entry) string {
	if doi := e.First("doi"); doi != "" {
		if strings.HasPrefix(strings.ToLower(doi), "http") {
			return doi
		}
		return "https://doi.org/" + doi
	}
	return e.First("url")
}

// Venue derives the HTML-escaped venue string: journal, else booktitle, else
// a synthesized arXiv label. A known publication year is stripped from the
// venue along with punctuation it leaves behind.
func Venue(e bibtex.Entry) string {
	venue := latex.ToUnicode(e.First("journal", "booktitle"))
	if venue == "" && strings.EqualFold(e.First("archiveprefix"), "arxiv") {
		venue = "arXiv:" + e.First("eprint")
	}
	if year := e.First("year"); venue != "" && year != "" {
		venue = strings.Trim(strings.ReplaceAll(venue, year, ""), " ,.")
	}
	return html.EscapeString(venue)
}

// yearGroup is one year heading with its display-ordered entries.
type yearGroup struct {
	label   string
	entries []bibtex.Entry
}

// groupByYear buckets entries by their year field (UndatedLabel when absent),
// orders the buckets numeric-descending then non-numeric ascending, and sorts
// each bucket by the raw author field.
func groupByYear(entries []bibtex.Entry) []yearGroup {
	buckets := make(map[string][]bibtex.Entry)
	for _, e := range entries {
		year, ok := e.Field("year")
		if !ok {
			year = UndatedLabel
		}
		buckets[year] = append(buckets[year], e)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return yearLess(labels[i], labels[j]) })

	groups := make([]yearGroup, 0, len(labels))
	for _, label := range labels {
		es := buckets[label]
		// Sorting key is the raw, unnormalized author field.
		sort.SliceStable(es, func(i, j int) bool {
			ai, _ := es[i].Field("author")
			aj, _ := es[j].Field("author")
			return ai < aj
		})
		groups = append(groups, yearGroup{label: label, entries: es})
	}
	return groups
}

// yearLess orders year labels: numeric years first, descending; non-numeric
// labels after, ascending.
func yearLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai > bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
