// Package latex converts the subset of LaTeX markup commonly found in BibTeX
// fields (accent commands, special-letter macros, dash and quote digraphs)
// into plain Unicode text.
package latex

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// combiningMarks maps single-character accent codes to Unicode combining marks.
var combiningMarks = map[byte]rune{
	'"':  0x0308, // diaeresis
	'\'': 0x0301, // acute
	'`':  0x0300, // grave
	'^':  0x0302, // circumflex
	'~':  0x0303, // tilde
	'c':  0x0327, // cedilla
	'k':  0x0328, // ogonek
	'H':  0x030B, // double acute
	'r':  0x030A, // ring above
	'=':  0x0304, // macron
	'.':  0x0307, // dot above
	'u':  0x0306, // breve
	'v':  0x030C, // caron
	'd':  0x0323, // dot below
	'b':  0x0331, // macron below
}

// specialMacros lists whole-token macro replacements in application order.
// Longer macros come before their prefixes (\oe before \o) so they are not
// shadowed by a shorter replacement.
var specialMacros = [...]struct{ macro, repl string }{
	{`\ss`, "ß"},
	{`\SS`, "ẞ"},
	{`\ae`, "æ"},
	{`\AE`, "Æ"},
	{`\oe`, "œ"},
	{`\OE`, "Œ"},
	{`\aa`, "å"},
	{`\AA`, "Å"},
	{`\o`, "ø"},
	{`\O`, "Ø"},
	{`\l`, "ł"},
	{`\L`, "Ł"},
}

// accentRe matches an accent command applied to a single letter, in either
// the braced form \"{O} or the bare form \"O. The braced alternative comes
// first so that neither form is processed twice.
var accentRe = regexp.MustCompile(`\\(["'` + "`" + `^~ckHr=.uvdb])(?:\{([A-Za-z])\}|([A-Za-z]))`)

// punctReplacer rewrites TeX dash and quote digraphs. strings.Replacer tries
// patterns in argument order at each position, so --- wins over --.
var punctReplacer = strings.NewReplacer(
	"---", "—", // em dash
	"--", "–", // en dash
	"``", "“",
	"''", "”",
)

// ToUnicode converts LaTeX accent commands and special macros in s to
// Unicode, strips grouping braces, rewrites dash/quote digraphs, and returns
// the NFC-normalized result. Unknown backslash sequences are left untouched.
func ToUnicode(s string) string {
	if s == "" {
		return s
	}

	for _, m := range specialMacros {
		s = strings.ReplaceAll(s, m.macro, m.repl)
	}

	s = accentRe.ReplaceAllStringFunc(s, replaceAccent)

	// Remaining braces only group or force capitalization.
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")

	s = punctReplacer.Replace(s)

	// Collapse base letter + combining mark into precomposed characters.
	return norm.NFC.String(s)
}

// replaceAccent rewrites one matched accent command as base letter followed
// by the corresponding combining mark.
func replaceAccent(match string) string {
	sub := accentRe.FindStringSubmatch(match)
	base := sub[2]
	if base == "" {
		base = sub[3]
	}
	return base + string(combiningMarks[sub[1][0]])
}
