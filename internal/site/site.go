// Package site assembles the final publications page: parse the BibTeX
// database, render the listing, substitute it into the template, write the
// output. All transformation happens in memory; the destination is written
// exactly once, so a failed run never leaves a partial page behind.
package site

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pubsite/internal/bibtex"
	"pubsite/internal/config"
	"pubsite/internal/render"
)

// ErrPlaceholderMissing is returned when the template does not contain the
// configured placeholder token.
var ErrPlaceholderMissing = errors.New("placeholder not found in template")

// Apply substitutes content for every occurrence of placeholder in tmpl.
// A template without the placeholder is an error: silently writing the
// template unchanged would hide a misconfigured site.
func Apply(tmpl, content, placeholder string) (string, error) {
	if placeholder == "" {
		return "", errors.New("placeholder token must not be empty")
	}
	if !strings.Contains(tmpl, placeholder) {
		return "", fmt.Errorf("%w: %q", ErrPlaceholderMissing, placeholder)
	}
	return strings.ReplaceAll(tmpl, placeholder, content), nil
}

// Build runs the full pipeline described by cfg and reports the number of
// records published.
func Build(cfg *config.Config) (int, error) {
	entries, err := bibtex.ParseFile(cfg.BibFile)
	if err != nil {
		return 0, fmt.Errorf("loading bibliography: %w", err)
	}

	listing := render.Render(entries)

	tmpl, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		return 0, fmt.Errorf("reading template: %w", err)
	}

	page, err := Apply(string(tmpl), listing, cfg.Placeholder)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(cfg.OutputFile, []byte(page), 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}
	return len(entries), nil
}
