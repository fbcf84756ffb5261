// Package progress persists watch progress and the bounded
// recently-viewed and favorites lists. The store always answers from
// memory; the backing storage is written through best-effort, so a
// broken or disabled backend degrades to session-only state and never
// blocks playback.
package progress

import (
	"io"
	"sort"
	"time"

	"vphim/internal/media"
)

// Default caps, mirroring the original front-end's bounded lists.
const (
	DefaultMaxProgress  = 500
	DefaultMaxRecent    = 10
	DefaultMaxFavorites = 100
)

// State is the full persisted payload, shared by all backends.
type State struct {
	Progress  []media.WatchProgress `json:"progress"`
	Recent    []media.MovieSummary  `json:"recent"`
	Favorites []media.MovieSummary  `json:"favorites"`
}

// Backend loads and saves the complete state. Implementations may be
// a JSON file or a SQLite database; the store treats them uniformly.
type Backend interface {
	Load() (State, error)
	Save(State) error
}

// Options bound the three retained collections. Zero values select the
// defaults.
type Options struct {
	MaxProgress  int
	MaxRecent    int
	MaxFavorites int
}

// Store is the in-memory working copy plus its write-through backend.
// All operations are synchronous and single-threaded by contract.
type Store struct {
	backend Backend
	opts    Options
	state   State

	now func() int64 // epoch millis, swappable in tests
}

// NewStore creates a store over a backend. A nil backend yields a
// memory-only store. Load failures are swallowed: the store starts
// empty rather than failing.
func NewStore(backend Backend, opts Options) *Store {
	if opts.MaxProgress <= 0 {
		opts.MaxProgress = DefaultMaxProgress
	}
	if opts.MaxRecent <= 0 {
		opts.MaxRecent = DefaultMaxRecent
	}
	if opts.MaxFavorites <= 0 {
		opts.MaxFavorites = DefaultMaxFavorites
	}

	s := &Store{
		backend: backend,
		opts:    opts,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
	if backend != nil {
		if state, err := backend.Load(); err == nil {
			s.state = state
		}
	}
	return s
}

// Record upserts the resume position for (movieID, episodeKey). When
// inserting over the cap, exactly the single oldest entry by
// LastWatchedAt is evicted first.
func (s *Store) Record(movieID, episodeKey string, positionSeconds float64) {
	if movieID == "" || episodeKey == "" {
		return
	}
	stamp := s.now()

	for i := range s.state.Progress {
		e := &s.state.Progress[i]
		if e.MovieID == movieID && e.EpisodeKey == episodeKey {
			e.PositionSeconds = positionSeconds
			e.LastWatchedAt = stamp
			s.persist()
			return
		}
	}

	if len(s.state.Progress) >= s.opts.MaxProgress {
		s.evictOldest()
	}
	s.state.Progress = append(s.state.Progress, media.WatchProgress{
		MovieID:         movieID,
		EpisodeKey:      episodeKey,
		PositionSeconds: positionSeconds,
		LastWatchedAt:   stamp,
	})
	s.persist()
}

// Restore returns the saved resume position for (movieID, episodeKey).
func (s *Store) Restore(movieID, episodeKey string) (float64, bool) {
	for _, e := range s.state.Progress {
		if e.MovieID == movieID && e.EpisodeKey == episodeKey {
			return e.PositionSeconds, true
		}
	}
	return 0, false
}

// Entries returns all progress entries, most recently watched first.
func (s *Store) Entries() []media.WatchProgress {
	out := make([]media.WatchProgress, len(s.state.Progress))
	copy(out, s.state.Progress)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastWatchedAt > out[j].LastWatchedAt
	})
	return out
}

// ClearAll removes every progress entry. This is the only deletion
// path; entries are never aged out on their own.
func (s *Store) ClearAll() {
	s.state.Progress = nil
	s.persist()
}

// AddRecent moves a movie to the front of the recently-viewed list,
// trimming to the cap.
func (s *Store) AddRecent(m media.MovieSummary) {
	if m.ID == "" {
		return
	}
	filtered := make([]media.MovieSummary, 0, len(s.state.Recent)+1)
	filtered = append(filtered, m)
	for _, r := range s.state.Recent {
		if r.ID != m.ID {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) > s.opts.MaxRecent {
		filtered = filtered[:s.opts.MaxRecent]
	}
	s.state.Recent = filtered
	s.persist()
}

// Recent returns the recently-viewed list, newest first.
func (s *Store) Recent() []media.MovieSummary {
	out := make([]media.MovieSummary, len(s.state.Recent))
	copy(out, s.state.Recent)
	return out
}

// ToggleFavorite adds or removes a movie from the favorites list and
// reports whether it is a favorite afterwards. Additions beyond the cap
// are dropped, as the original front-end did.
func (s *Store) ToggleFavorite(m media.MovieSummary) bool {
	if m.ID == "" {
		return false
	}
	for i, f := range s.state.Favorites {
		if f.ID == m.ID {
			s.state.Favorites = append(s.state.Favorites[:i], s.state.Favorites[i+1:]...)
			s.persist()
			return false
		}
	}
	if len(s.state.Favorites) >= s.opts.MaxFavorites {
		return false
	}
	s.state.Favorites = append(s.state.Favorites, m)
	s.persist()
	return true
}

// IsFavorite reports whether a movie is in the favorites list.
func (s *Store) IsFavorite(movieID string) bool {
	for _, f := range s.state.Favorites {
		if f.ID == movieID {
			return true
		}
	}
	return false
}

// Favorites returns the favorites list in insertion order.
func (s *Store) Favorites() []media.MovieSummary {
	out := make([]media.MovieSummary, len(s.state.Favorites))
	copy(out, s.state.Favorites)
	return out
}

func (s *Store) evictOldest() {
	oldest := -1
	for i, e := range s.state.Progress {
		if oldest < 0 || e.LastWatchedAt < s.state.Progress[oldest].LastWatchedAt {
			oldest = i
		}
	}
	if oldest >= 0 {
		s.state.Progress = append(s.state.Progress[:oldest], s.state.Progress[oldest+1:]...)
	}
}

// Close releases the backend when it holds resources, such as the
// SQLite handle.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// persist writes the state through to the backend. Errors are dropped
// on purpose: storage being unavailable must never affect playback.
func (s *Store) persist() {
	if s.backend == nil {
		return
	}
	_ = s.backend.Save(s.state)
}
