package render

import "testing"

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "two authors split on and",
			raw:  "J. Doe and K. Lee",
			want: "J. Doe, K. Lee",
		},
		{
			name: "and inside a surname is not a separator",
			raw:  "J. Doe and K. Anderson",
			want: "J. Doe, K. Anderson",
		},
		{
			name: "case-insensitive separator",
			raw:  "J. Doe AND K. Lee",
			want: "J. Doe, K. Lee",
		},
		{
			name: "family-given reordering",
			raw:  "Smith, John",
			want: "John Smith",
		},
		{
			name: "no comma keeps order",
			raw:  "John Smith",
			want: "John Smith",
		},
		{
			name: "only first comma splits",
			raw:  "Smith, John, Jr.",
			want: "John, Jr. Smith",
		},
		{
			name: "comma with empty side left alone",
			raw:  "Smith,",
			want: "Smith,",
		},
		{
			name: "newlines collapse to single spaces",
			raw:  "Smith,\n  John and Doe,\n  Jane",
			want: "John Smith, Jane Doe",
		},
		{
			name: "latex accents converted",
			raw:  `M\"{u}ller, Hans and Erd\H{o}s, Paul`,
			want: "Hans Müller, Paul Erdős",
		},
		{
			name: "html special characters escaped",
			raw:  "Black & White, A.",
			want: "A. Black &amp; White",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAuthors(tt.raw); got != tt.want {
				t.Errorf("FormatAuthors(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatAuthors_Fallback(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		if got := FormatAuthors(raw); got != NoAuthorFallback {
			t.Errorf("FormatAuthors(%q) = %q, want %q", raw, got, NoAuthorFallback)
		}
	}
}

func TestFormatAuthors_SplitCount(t *testing.T) {
	// "Anderson" contains "and"; the list must split into exactly two names.
	got := FormatAuthors("J. Doe and K. Anderson")
	want := "J. Doe, K. Anderson"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
