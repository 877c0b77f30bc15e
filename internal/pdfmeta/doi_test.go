package pdfmeta

import (
	"strings"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain doi",
			text: "doi: 10.1093/molbev/msaa015",
			want: "10.1093/molbev/msaa015",
		},
		{
			name: "doi inside sentence with trailing period",
			text: "Available at https://doi.org/10.1000/xyz123. Accessed 2024.",
			want: "10.1000/xyz123",
		},
		{
			name: "trailing punctuation trimmed",
			text: "(see 10.5555/12345678),",
			want: "10.5555/12345678",
		},
		{
			name: "no doi",
			text: "This page has no identifier at all.",
			want: "",
		},
		{
			name: "rejects missing suffix",
			text: "10.1234/",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStub(t *testing.T) {
	got := Stub("10.1093/molbev/msaa015")

	if !strings.HasPrefix(got, "@article{molbev-msaa015,") {
		t.Errorf("unexpected key line in stub:\n%s", got)
	}
	if !strings.Contains(got, "doi = {10.1093/molbev/msaa015},") {
		t.Errorf("stub missing doi field:\n%s", got)
	}
	for _, field := range []string{"title = {}", "author = {}", "journal = {}", "year = {}"} {
		if !strings.Contains(got, field) {
			t.Errorf("stub missing %s:\n%s", field, got)
		}
	}
}

func TestSuggestKey(t *testing.T) {
	tests := []struct {
		doi  string
		want string
	}{
		{"10.1093/molbev/msaa015", "molbev-msaa015"},
		{"10.1000/j.issn.1234_5678", "j-issn-1234-5678"},
		{"10.1/???", "entry"},
	}

	for _, tt := range tests {
		if got := suggestKey(tt.doi); got != tt.want {
			t.Errorf("suggestKey(%q) = %q, want %q", tt.doi, got, tt.want)
		}
	}
}

func TestExtractDOI_MissingFile(t *testing.T) {
	if _, err := ExtractDOI("does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
