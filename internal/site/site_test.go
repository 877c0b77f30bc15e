package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pubsite/internal/config"
	"pubsite/internal/render"
)

func TestApply(t *testing.T) {
	t.Run("single occurrence", func(t *testing.T) {
		got, err := Apply("<body>PLACEHOLDER</body>", "<ol></ol>", "PLACEHOLDER")
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if got != "<body><ol></ol></body>" {
			t.Errorf("Apply() = %q", got)
		}
	})

	t.Run("all occurrences replaced", func(t *testing.T) {
		got, err := Apply("X\nX", "y", "X")
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if got != "y\ny" {
			t.Errorf("Apply() = %q, want both occurrences replaced", got)
		}
	})

	t.Run("missing placeholder", func(t *testing.T) {
		_, err := Apply("<body></body>", "content", "PLACEHOLDER")
		if !errors.Is(err, ErrPlaceholderMissing) {
			t.Errorf("expected ErrPlaceholderMissing, got %v", err)
		}
	})

	t.Run("empty placeholder", func(t *testing.T) {
		if _, err := Apply("anything", "content", ""); err == nil {
			t.Error("expected error for empty placeholder")
		}
	})
}

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	return &config.Config{
		BibFile:      filepath.Join(dir, "refs.bib"),
		TemplateFile: filepath.Join(dir, "template.html"),
		OutputFile:   filepath.Join(dir, "out.html"),
		Placeholder:  "PLACEHOLDER",
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	bib := `@article{Mueller2023,
  author = {M\"{u}ller, Hans},
  title = {Dashes --- and {Braces}},
  journal = {Journal of Tests 2023},
  year = {2023},
  doi = {10.1/test},
}

@misc{bare,
}`
	if err := os.WriteFile(cfg.BibFile, []byte(bib), 0644); err != nil {
		t.Fatal(err)
	}
	tmpl := "<html><body>\nPLACEHOLDER\n</body></html>"
	if err := os.WriteFile(cfg.TemplateFile, []byte(tmpl), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Build() published %d records, want 2", n)
	}

	out, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	page := string(out)

	// Normalized author, stripped year, resolved DOI link.
	for _, want := range []string{
		"Hans Müller",
		"Dashes \u2014 and Braces",
		">Journal of Tests<",
		`href="https://doi.org/10.1/test"`,
		`<h3 class="year-header">2023</h3>`,
		`<h3 class="year-header">` + render.UndatedLabel + `</h3>`,
		render.NoAuthorFallback,
		render.NoTitleFallback,
		`reversed start="2"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "PLACEHOLDER") {
		t.Error("placeholder token still present in output")
	}
}

func TestBuild_NoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	if err := os.WriteFile(cfg.BibFile, []byte(`@misc{k, title = {T} }`), 0644); err != nil {
		t.Fatal(err)
	}
	// Template exists but lacks the placeholder.
	if err := os.WriteFile(cfg.TemplateFile, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Build(cfg); !errors.Is(err, ErrPlaceholderMissing) {
		t.Fatalf("expected ErrPlaceholderMissing, got %v", err)
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Error("output file must not be written on failure")
	}
}

func TestBuild_MissingInputs(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for missing bibliography")
	}

	if err := os.WriteFile(cfg.BibFile, []byte(`@misc{k, title = {T} }`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestBuild_MalformedBibliography(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	if err := os.WriteFile(cfg.BibFile, []byte(`@article{broken`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TemplateFile, []byte("PLACEHOLDER"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for malformed bibliography")
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Error("output file must not be written on failure")
	}
}
