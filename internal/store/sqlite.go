// Package store persists extracted metadata records in SQLite.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb"

	"github.com/simonhull/photometa/internal/types"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("record not found")

// Entry is a stored record with its indexing columns.
type Entry struct {
	CreatedAt time.Time
	Record    *types.MetadataRecord
	Latitude  *float64
	Longitude *float64
	ID        string
	Path      string
	Format    string
	Error     string
}

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rec under a fresh id.
func (s *Store) Save(rec *types.MetadataRecord) (*Entry, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	e := &Entry{
		ID:        uuid.New().String(),
		Path:      rec.Path,
		Format:    rec.Format.String(),
		Latitude:  rec.Location.Latitude,
		Longitude: rec.Location.Longitude,
		Error:     rec.Error,
		CreatedAt: time.Now(),
		Record:    rec,
	}

	_, err = s.db.Exec(
		`INSERT INTO records (id, path, format, latitude, longitude, error, document, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.Format, e.Latitude, e.Longitude, e.Error, string(doc), e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return e, nil
}

const selectEntry = `SELECT id, path, format, latitude, longitude, error, document, created_at FROM records`

// Get retrieves a record by id.
func (s *Store) Get(id string) (*Entry, error) {
	e, err := scanEntry(s.db.QueryRow(selectEntry+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return e, nil
}

// List returns stored records, newest first, with pagination.
func (s *Store) List(limit, offset int) ([]Entry, error) {
	rows, err := s.db.Query(selectEntry+" ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return collect(rows)
}

// Within returns geotagged records inside b.
func (s *Store) Within(b orb.Bound) ([]Entry, error) {
	rows, err := s.db.Query(
		selectEntry+` WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ? ORDER BY path`,
		b.Min.Lat(), b.Max.Lat(), b.Min.Lon(), b.Max.Lon(),
	)
	if err != nil {
		return nil, fmt.Errorf("query bound: %w", err)
	}
	return collect(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e   Entry
		lat sql.NullFloat64
		lon sql.NullFloat64
		doc string
	)
	if err := row.Scan(&e.ID, &e.Path, &e.Format, &lat, &lon, &e.Error, &doc, &e.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lon.Valid {
		e.Longitude = &lon.Float64
	}

	rec := types.NewRecord(e.Path)
	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", e.ID, err)
	}
	rec.Location = types.GPSCoordinate{Latitude: e.Latitude, Longitude: e.Longitude}
	e.Record = rec
	return &e, nil
}

func collect(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
