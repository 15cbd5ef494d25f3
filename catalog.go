package deepzoom

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Entry is one generated pyramid recorded in the catalog.
type Entry struct {
	Name     string
	Source   string
	SHA1     string
	Width    int
	Height   int
	TileSize int
	Overlap  int
	Levels   int
	Tiles    int
	Bytes    int64
	Swatch   []string
	Created  time.Time
}

// Catalog records which pyramids have been generated and from what.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens or creates the catalog database in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS pyramid (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, source TEXT NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, tile_size INTEGER NOT NULL, overlap INTEGER NOT NULL, levels INTEGER NOT NULL, tiles INTEGER NOT NULL, bytes INTEGER NOT NULL, swatch TEXT NOT NULL, created INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record stores the result of a run from source, replacing any previous
// entry with the same name.
func (c *Catalog) Record(source string, res *Result) error {
	swatch := make([]string, 0, len(res.Swatch))
	for _, col := range res.Swatch {
		swatch = append(swatch, HexColor(col))
	}

	d := res.Descriptor
	if _, err := c.db.Exec("INSERT OR REPLACE INTO pyramid (name, source, sha1, width, height, tile_size, overlap, levels, tiles, bytes, swatch, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		res.Name, source, res.SHA1, d.Size.Width, d.Size.Height, d.TileSize, d.Overlap, len(res.Levels), res.Tiles, res.Bytes, strings.Join(swatch, ","), time.Now().Unix()); err != nil {
		return err
	}
	return nil
}

func scanEntry(s interface{ Scan(...interface{}) error }) (*Entry, error) {
	var e Entry
	var swatch string
	var created int64
	if err := s.Scan(&e.Name, &e.Source, &e.SHA1, &e.Width, &e.Height, &e.TileSize, &e.Overlap, &e.Levels, &e.Tiles, &e.Bytes, &swatch, &created); err != nil {
		return nil, err
	}
	if swatch != "" {
		e.Swatch = strings.Split(swatch, ",")
	}
	e.Created = time.Unix(created, 0)
	return &e, nil
}

const selectEntry = "SELECT name, source, sha1, width, height, tile_size, overlap, levels, tiles, bytes, swatch, created FROM pyramid"

// Find returns the entry called name, or nil if there isn't one.
func (c *Catalog) Find(name string) (*Entry, error) {
	e, err := scanEntry(c.db.QueryRow(selectEntry+" WHERE name = ?", name))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

// List returns every entry ordered by name.
func (c *Catalog) List() ([]*Entry, error) {
	rows, err := c.db.Query(selectEntry + " ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
