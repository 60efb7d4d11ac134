// Package history records executed clicks in sqlite and aggregates them
// into prediction-mode targets: positions are bucketed into 64px cells so
// clicks on the same control count together.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/keypoint/keypointer/internal/geometry"
)

// cellSize buckets nearby clicks into one target.
const cellSize = 64

// maxTargets matches the nine number keys prediction mode listens on.
const maxTargets = 9

// Store is the click-history storage used by prediction mode.
type Store interface {
	RecordClick(p geometry.Position, button string) error
	TopTargets(limit int) ([]Target, error)
	Close() error
}

// Target is one aggregated click target: the centroid of a 64px cell with
// its click count and most recent use.
type Target struct {
	Pos      geometry.Position
	Count    int
	LastSeen time.Time
}

// SQLiteStore keeps click history in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open connects to (or creates) the history database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	stmts := []string{
		`create table if not exists clicks(
			x int, y int, cell_x int, cell_y int, button text, ts datetime);`,
		`create index if not exists clicks_cell_ix on clicks (cell_x, cell_y);`,
		`create index if not exists clicks_ts_ix on clicks (ts asc);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing history schema: %w", err)
		}
	}
	return nil
}

// RecordClick stores one executed click.
func (s *SQLiteStore) RecordClick(p geometry.Position, button string) error {
	_, err := s.db.Exec(`insert into clicks(x, y, cell_x, cell_y, button, ts)
		values(?, ?, ?, ?, ?, datetime('now', 'subsec'))`,
		p.X, p.Y, cell(p.X), cell(p.Y), button)
	if err != nil {
		return fmt.Errorf("recording click: %w", err)
	}
	return nil
}

// TopTargets returns up to limit (capped at 9) aggregated targets ordered by
// click count, most recent use breaking ties. The target position is the
// rounded centroid of the cell's clicks.
func (s *SQLiteStore) TopTargets(limit int) ([]Target, error) {
	if limit <= 0 || limit > maxTargets {
		limit = maxTargets
	}
	rows, err := s.db.Query(`
		select cast(round(avg(x)) as int), cast(round(avg(y)) as int),
		       count(*), max(ts)
		from clicks
		group by cell_x, cell_y
		order by count(*) desc, max(ts) desc
		limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying click targets: %w", err)
	}
	defer rows.Close()

	var out []Target
	for rows.Next() {
		var t Target
		var ts string
		if err := rows.Scan(&t.Pos.X, &t.Pos.Y, &t.Count, &ts); err != nil {
			return nil, fmt.Errorf("scanning click target: %w", err)
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05.999", ts); err == nil {
			t.LastSeen = parsed
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading click targets: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// cell floors v into its 64px bucket; works for negative virtual-desktop
// coordinates too.
func cell(v int) int {
	if v < 0 {
		return -((-v + cellSize - 1) / cellSize)
	}
	return v / cellSize
}
