// Package bibtex reads BibTeX databases into flat field maps.
//
// The reader is deliberately small: it understands @type{key, field = value}
// records with brace-delimited, quote-delimited, or bare values, skips
// comments, and keeps field values verbatim (LaTeX markup included) for
// downstream processing.
package bibtex

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one bibliographic record: an entry type, a citation key, and a
// mapping from lowercased field names to raw field values.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Field returns the value of the named field and whether it is present.
// Field names are matched case-insensitively.
func (e Entry) Field(name string) (string, bool) {
	v, ok := e.Fields[strings.ToLower(name)]
	return v, ok
}

// First returns the first non-empty value among the named fields, or ""
// if none is set. It makes ordered field fallbacks (url-or-doi,
// journal-or-booktitle) explicit and testable.
func (e Entry) First(names ...string) string {
	for _, name := range names {
		if v, ok := e.Field(name); ok && v != "" {
			return v
		}
	}
	return ""
}

// ParseFile reads and parses a BibTeX database from path.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex file: %w", err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse parses BibTeX source text into entries. @comment, @preamble, and
// @string blocks are skipped. Field values are returned verbatim, including
// braces and backslash sequences.
func Parse(src string) ([]Entry, error) {
	p := &parser{src: src}
	var entries []Entry

	for {
		p.skipSpace()
		if p.done() {
			return entries, nil
		}
		if p.src[p.pos] != '@' {
			// Stray text between records is ignored, as common BibTeX
			// tooling does.
			p.pos++
			continue
		}
		p.pos++
		p.skipSpace()

		typ := strings.ToLower(p.readIdent())
		if typ == "" {
			return nil, p.errorf("expected entry type after '@'")
		}
		p.skipSpace()

		switch typ {
		case "comment", "preamble", "string":
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
			continue
		}

		entry, err := p.readEntry(typ)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

// skipSpace advances past whitespace and % line comments.
func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '%' {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			p.pos++
			continue
		}
		return
	}
}

// readIdent reads a run of letters.
func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// skipBlock skips a balanced { ... } or ( ... ) block.
func (p *parser) skipBlock() error {
	if p.done() || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
		return p.errorf("expected '{' after block type")
	}
	open := p.src[p.pos]
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	p.pos++
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos++ // skip the escaped byte too
		case open:
			depth++
		case closer:
			if depth == 0 {
				p.pos++
				return nil
			}
			depth--
		}
		p.pos++
	}
	return p.errorf("unterminated block")
}

// readEntry parses one @type{key, field = value, ...} record. The '@' and
// type have already been consumed.
func (p *parser) readEntry(typ string) (Entry, error) {
	if p.done() || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
		return Entry{}, p.errorf("expected '{' after entry type %q", typ)
	}
	p.pos++
	p.skipSpace()

	keyStart := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '\n' {
		p.pos++
	}
	if p.done() || p.src[p.pos] != ',' {
		return Entry{}, p.errorf("expected ',' after citation key")
	}
	key := strings.TrimSpace(p.src[keyStart:p.pos])
	p.pos++

	entry := Entry{Type: typ, Key: key, Fields: make(map[string]string)}
	for {
		p.skipSpace()
		if p.done() {
			return Entry{}, p.errorf("unterminated entry %q", key)
		}
		if p.src[p.pos] == '}' || p.src[p.pos] == ')' {
			p.pos++
			return entry, nil
		}

		name := strings.ToLower(p.readFieldName())
		if name == "" {
			return Entry{}, p.errorf("expected field name in entry %q", key)
		}
		p.skipSpace()
		if p.done() || p.src[p.pos] != '=' {
			return Entry{}, p.errorf("expected '=' after field %q in entry %q", name, key)
		}
		p.pos++
		p.skipSpace()

		value, err := p.readValue()
		if err != nil {
			return Entry{}, err
		}
		entry.Fields[name] = value

		p.skipSpace()
		if !p.done() && p.src[p.pos] == ',' {
			p.pos++
		}
	}
}

// readFieldName reads a field identifier (letters, digits, -, _).
func (p *parser) readFieldName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// readValue reads a brace-delimited, quote-delimited, or bare field value.
// Braces inside brace-delimited values nest; the outer delimiters are not
// part of the value.
func (p *parser) readValue() (string, error) {
	if p.done() {
		return "", p.errorf("expected field value")
	}
	switch p.src[p.pos] {
	case '{':
		p.pos++
		start := p.pos
		depth := 0
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '\\':
				p.pos++ // keep backslash sequences verbatim
			case '{':
				depth++
			case '}':
				if depth == 0 {
					v := p.src[start:p.pos]
					p.pos++
					return v, nil
				}
				depth--
			}
			p.pos++
		}
		return "", p.errorf("unterminated brace value")
	case '"':
		p.pos++
		start := p.pos
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '\\':
				p.pos++
			case '"':
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
			p.pos++
		}
		return "", p.errorf("unterminated quoted value")
	default:
		start := p.pos
		for p.pos < len(p.src) {
			c := p.src[p.pos]
			if c == ',' || c == '}' || c == ')' || c == '\n' {
				break
			}
			p.pos++
		}
		return strings.TrimSpace(p.src[start:p.pos]), nil
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("invalid bibtex at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}
