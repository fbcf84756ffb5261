package progress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go driver, no cgo

	"vphim/internal/media"
)

// SQLiteBackend persists the state in a SQLite database. It is the
// default backend: unlike the JSON file it does not rewrite the whole
// state's worth of unrelated rows when one movie list changes shape on
// disk, and concurrent CLI invocations get real transactional writes.
type SQLiteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS watch_progress (
	movie_id         TEXT NOT NULL,
	episode_key      TEXT NOT NULL,
	position_seconds REAL NOT NULL,
	last_watched_at  INTEGER NOT NULL,
	PRIMARY KEY (movie_id, episode_key)
);
CREATE TABLE IF NOT EXISTS movie_list (
	list     TEXT NOT NULL,
	position INTEGER NOT NULL,
	id       TEXT NOT NULL,
	slug     TEXT NOT NULL,
	name     TEXT NOT NULL,
	origin   TEXT NOT NULL,
	poster   TEXT NOT NULL,
	quality  TEXT NOT NULL,
	year     INTEGER NOT NULL,
	rating   REAL NOT NULL,
	PRIMARY KEY (list, position)
);
`

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating progress dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening progress db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing progress schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load reads the full state.
func (b *SQLiteBackend) Load() (State, error) {
	var state State

	rows, err := b.db.Query(
		`SELECT movie_id, episode_key, position_seconds, last_watched_at
		 FROM watch_progress`)
	if err != nil {
		return State{}, fmt.Errorf("loading watch progress: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e media.WatchProgress
		if err := rows.Scan(&e.MovieID, &e.EpisodeKey, &e.PositionSeconds, &e.LastWatchedAt); err != nil {
			return State{}, fmt.Errorf("scanning watch progress: %w", err)
		}
		state.Progress = append(state.Progress, e)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("reading watch progress: %w", err)
	}

	if state.Recent, err = b.loadList("recent"); err != nil {
		return State{}, err
	}
	if state.Favorites, err = b.loadList("favorites"); err != nil {
		return State{}, err
	}
	return state, nil
}

// Save replaces the full state in one transaction.
func (b *SQLiteBackend) Save(state State) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("starting progress tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM watch_progress`); err != nil {
		return fmt.Errorf("clearing watch progress: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM movie_list`); err != nil {
		return fmt.Errorf("clearing movie lists: %w", err)
	}

	for _, e := range state.Progress {
		if _, err := tx.Exec(
			`INSERT INTO watch_progress (movie_id, episode_key, position_seconds, last_watched_at)
			 VALUES (?, ?, ?, ?)`,
			e.MovieID, e.EpisodeKey, e.PositionSeconds, e.LastWatchedAt); err != nil {
			return fmt.Errorf("saving watch progress: %w", err)
		}
	}

	if err := saveList(tx, "recent", state.Recent); err != nil {
		return err
	}
	if err := saveList(tx, "favorites", state.Favorites); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *SQLiteBackend) loadList(list string) ([]media.MovieSummary, error) {
	rows, err := b.db.Query(
		`SELECT id, slug, name, origin, poster, quality, year, rating
		 FROM movie_list WHERE list = ? ORDER BY position`, list)
	if err != nil {
		return nil, fmt.Errorf("loading %s list: %w", list, err)
	}
	defer rows.Close()

	var out []media.MovieSummary
	for rows.Next() {
		var m media.MovieSummary
		if err := rows.Scan(&m.ID, &m.Slug, &m.Name, &m.OriginalName,
			&m.PosterURL, &m.Quality, &m.Year, &m.Rating); err != nil {
			return nil, fmt.Errorf("scanning %s list: %w", list, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func saveList(tx *sql.Tx, list string, items []media.MovieSummary) error {
	for i, m := range items {
		if _, err := tx.Exec(
			`INSERT INTO movie_list (list, position, id, slug, name, origin, poster, quality, year, rating)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			list, i, m.ID, m.Slug, m.Name, m.OriginalName,
			m.PosterURL, m.Quality, m.Year, m.Rating); err != nil {
			return fmt.Errorf("saving %s list: %w", list, err)
		}
	}
	return nil
}
