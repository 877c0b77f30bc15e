// Package storage maintains an ephemeral SQLite index over the BibTeX
// database for the list and search commands. The .bib file stays
// authoritative; the index is rebuilt from it and can be deleted at any time.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"pubsite/internal/bibtex"
	"pubsite/internal/latex"
)

// Pub is one indexed publication row. Title, author, and venue are stored
// Unicode-normalized so searches match what readers see on the page.
type Pub struct {
	Key    string
	Type   string
	Title  string
	Author string
	Year   string
	Venue  string
	DOI    string
	URL    string
}

// DB wraps the SQLite index connection.
type DB struct {
	db *sql.DB
}

const selectPubFields = `key, entry_type, title, author, year, venue, doi, url`

// Open opens or creates the index database at path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the index.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pubs (
			key TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			title TEXT,
			author TEXT,
			year TEXT,
			venue TEXT,
			doi TEXT,
			url TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_year ON pubs(year);

		CREATE VIRTUAL TABLE IF NOT EXISTS pubs_fts USING fts5(
			key, title, author, venue
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild replaces the index contents with the given entries and returns the
// number of rows indexed. Duplicate citation keys are kept; the index mirrors
// the database, it does not deduplicate it.
func (d *DB) Rebuild(entries []bibtex.Entry) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"pubs", "pubs_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, e := range entries {
		p := pubFromEntry(e)
		if _, err := tx.Exec(`
			INSERT INTO pubs (`+selectPubFields+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Key, p.Type, p.Title, p.Author, p.Year, p.Venue, p.DOI, p.URL); err != nil {
			return 0, fmt.Errorf("indexing %s: %w", p.Key, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO pubs_fts (key, title, author, venue)
			VALUES (?, ?, ?, ?)`,
			p.Key, p.Title, p.Author, p.Venue); err != nil {
			return 0, fmt.Errorf("indexing %s for search: %w", p.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(entries), nil
}

// pubFromEntry flattens a BibTeX entry into an index row.
func pubFromEntry(e bibtex.Entry) Pub {
	return Pub{
		Key:    e.Key,
		Type:   e.Type,
		Title:  latex.ToUnicode(e.First("title")),
		Author: latex.ToUnicode(e.First("author")),
		Year:   e.First("year"),
		Venue:  latex.ToUnicode(e.First("journal", "booktitle")),
		DOI:    e.First("doi"),
		URL:    e.First("url"),
	}
}

// ListAll returns all indexed publications, newest year first, then by
// author within a year.
func (d *DB) ListAll() ([]Pub, error) {
	rows, err := d.db.Query(`
		SELECT ` + selectPubFields + `
		FROM pubs
		ORDER BY year DESC, author ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	return scanPubs(rows)
}

// ListYear returns the indexed publications for one year label.
func (d *DB) ListYear(year string) ([]Pub, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPubFields+`
		FROM pubs
		WHERE year = ?
		ORDER BY author ASC`, year)
	if err != nil {
		return nil, fmt.Errorf("listing year %s: %w", year, err)
	}
	defer rows.Close()

	return scanPubs(rows)
}

// Search runs a full-text query over title, author, and venue.
func (d *DB) Search(query string) ([]Pub, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPubFields+`
		FROM pubs
		WHERE key IN (SELECT key FROM pubs_fts WHERE pubs_fts MATCH ?)
		ORDER BY year DESC, author ASC`, prepareFTSQuery(query))
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPubs(rows)
}

// Count returns the number of indexed publications.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM pubs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting publications: %w", err)
	}
	return n, nil
}

func scanPubs(rows *sql.Rows) ([]Pub, error) {
	var pubs []Pub
	for rows.Next() {
		var p Pub
		if err := rows.Scan(&p.Key, &p.Type, &p.Title, &p.Author, &p.Year, &p.Venue, &p.DOI, &p.URL); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// prepareFTSQuery quotes queries containing FTS5 operator characters so user
// input is matched literally.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}
	return query
}
