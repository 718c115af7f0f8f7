// Package store persists presentations, content snapshots, and training
// scores in a local SQLite database. Findings documents are stored as
// zstd-compressed JSON blobs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// DefaultDBFile is the database filename used when none is configured.
const DefaultDBFile = "flightdeck.db"

var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRef indicates a presentation reference with neither an ID
	// nor a name.
	ErrInvalidRef = errors.New("presentation reference needs an id or a name")

	// ErrNoActiveSnapshot indicates the presentation has no active content
	// snapshot.
	ErrNoActiveSnapshot = errors.New("presentation has no active content snapshot")
)

const schema = `
CREATE TABLE IF NOT EXISTS presentations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS content_snapshots (
	id              TEXT PRIMARY KEY,
	presentation_id TEXT NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
	findings        BLOB NOT NULL,
	textual_score   REAL NOT NULL,
	topical_score   REAL NOT NULL,
	structure_score REAL NOT NULL,
	visual_score    REAL NOT NULL,
	total_score     REAL NOT NULL,
	is_active       INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_presentation
	ON content_snapshots(presentation_id);

CREATE TABLE IF NOT EXISTS trainings (
	id              TEXT PRIMARY KEY,
	presentation_id TEXT NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
	total_score     REAL NOT NULL,
	date            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trainings_presentation
	ON trainings(presentation_id, date);
`

// Store is the SQLite-backed persistence layer. Safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path, enc: enc, dec: dec}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle and codec resources.
func (s *Store) Close() error {
	_ = s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

// Presentation is one registered slide deck.
type Presentation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentationRef identifies a presentation by ID, by name, or both. At
// least one must be set; when both are set the ID wins.
type PresentationRef struct {
	ID   uuid.UUID
	Name string
}

// CreatePresentation registers a new presentation under the given name.
func (s *Store) CreatePresentation(ctx context.Context, name string) (*Presentation, error) {
	if name == "" {
		return nil, errors.New("presentation name must not be empty")
	}
	p := &Presentation{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presentations (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID.String(), p.Name, formatTime(p.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("creating presentation %q: %w", name, err)
	}
	return p, nil
}

// ResolvePresentation looks a presentation up by ref.
func (s *Store) ResolvePresentation(ctx context.Context, ref PresentationRef) (*Presentation, error) {
	var row *sql.Row
	switch {
	case ref.ID != uuid.Nil:
		row = s.db.QueryRowContext(ctx,
			`SELECT id, name, created_at FROM presentations WHERE id = ?`, ref.ID.String())
	case ref.Name != "":
		row = s.db.QueryRowContext(ctx,
			`SELECT id, name, created_at FROM presentations WHERE name = ?`, ref.Name)
	default:
		return nil, ErrInvalidRef
	}
	return scanPresentation(row)
}

// ListPresentations returns all presentations, oldest first.
func (s *Store) ListPresentations(ctx context.Context) ([]Presentation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM presentations ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Presentation
	for rows.Next() {
		var (
			p         Presentation
			id, stamp string
		)
		if err := rows.Scan(&id, &p.Name, &stamp); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTime(stamp); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPresentation(row *sql.Row) (*Presentation, error) {
	var (
		p         Presentation
		id, stamp string
	)
	err := row.Scan(&id, &p.Name, &stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("presentation: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(stamp); err != nil {
		return nil, err
	}
	return &p, nil
}

// timeLayout is fixed width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
