package playback

import (
	"vphim/internal/media"
)

// State is the lifecycle of a playback session's selection.
type State int

const (
	Unselected   State = iota // no episode chosen yet
	Resolved                  // selection resolved to a playable source
	Unresolvable              // selection exists but has no playable source
)

func (s State) String() string {
	switch s {
	case Unselected:
		return "unselected"
	case Resolved:
		return "resolved"
	case Unresolvable:
		return "unresolvable"
	default:
		return "unknown"
	}
}

// ProgressRecorder receives the write-through of playback positions.
// The progress store implements it; tests substitute their own.
type ProgressRecorder interface {
	Record(movieID, episodeKey string, positionSeconds float64)
}

// Session tracks the live playback state for one open movie view:
// current server/episode, resolved source, position and player toggles.
// It is single-threaded by contract (driven from the UI event loop) and
// discarded on navigation; there is no cross-movie reuse.
type Session struct {
	movieID  string
	index    *Index
	recorder ProgressRecorder

	state      State
	selection  Selection
	source     media.ResolvedSource
	position   float64
	duration   float64 // 0 = unknown, seeks clamp only at the bottom
	playing    bool
	volume     float64
	muted      bool
	lastVolume float64 // restored on unmute
}

// NewSession creates a session over an index. recorder may be nil when
// progress persistence is disabled.
func NewSession(movieID string, index *Index, recorder ProgressRecorder) *Session {
	return &Session{
		movieID:    movieID,
		index:      index,
		recorder:   recorder,
		state:      Unselected,
		volume:     1.0,
		lastVolume: 1.0,
	}
}

// SelectEpisode switches the session to the given (server, episode)
// pair. A selection that cannot be found or resolved leaves the session
// Unresolvable; that is a renderable state, not an error, and a later
// SelectEpisode may leave it again.
func (s *Session) SelectEpisode(serverName, episodeKey string) State {
	s.position = 0
	s.duration = 0
	s.playing = false

	ep, ok := s.index.Lookup(serverName, episodeKey)
	if !ok {
		s.state = Unresolvable
		s.selection = Selection{ServerName: serverName, EpisodeKey: episodeKey}
		s.source = media.ResolvedSource{}
		return s.state
	}

	src, ok := Resolve(ep)
	if !ok {
		s.state = Unresolvable
		s.selection = Selection{ServerName: serverName, EpisodeKey: ep.Key}
		s.source = media.ResolvedSource{}
		return s.state
	}

	s.state = Resolved
	s.selection = Selection{ServerName: serverName, EpisodeKey: ep.Key}
	s.source = src
	return s.state
}

// SelectDefault selects the record's default episode (first server,
// first episode).
func (s *Session) SelectDefault() State {
	sel, ok := s.index.DefaultSelection()
	if !ok {
		s.state = Unresolvable
		s.selection = Selection{}
		s.source = media.ResolvedSource{}
		return s.state
	}
	return s.SelectEpisode(sel.ServerName, sel.EpisodeKey)
}

// Seek moves the playback position, clamped to [0, duration] (an
// unknown duration clamps only at zero). Every call writes through to
// the progress recorder; batching, if wanted, belongs to the caller.
func (s *Session) Seek(positionSeconds float64) {
	if s.state != Resolved {
		return
	}
	if positionSeconds < 0 {
		positionSeconds = 0
	}
	if s.duration > 0 && positionSeconds > s.duration {
		positionSeconds = s.duration
	}
	s.position = positionSeconds
	if s.recorder != nil {
		s.recorder.Record(s.movieID, s.selection.EpisodeKey, s.position)
	}
}

// SetDuration records the media duration once the player reports it.
// A shrunken duration re-clamps the current position.
func (s *Session) SetDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.duration = seconds
	if s.duration > 0 && s.position > s.duration {
		s.position = s.duration
	}
}

// Play starts playback. Calling it while already playing is a no-op.
func (s *Session) Play() {
	if s.state != Resolved {
		return
	}
	s.playing = true
}

// Pause stops playback. Calling it while already paused is a no-op.
func (s *Session) Pause() {
	s.playing = false
}

// SetVolume sets the volume, clamped into [0, 1]. A non-zero volume is
// remembered for restoration on unmute.
func (s *Session) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume = v
	if v > 0 {
		s.lastVolume = v
	}
	s.muted = v == 0
}

// Mute silences playback, preserving the pre-mute volume. Idempotent.
func (s *Session) Mute() {
	if s.muted {
		return
	}
	if s.volume > 0 {
		s.lastVolume = s.volume
	}
	s.muted = true
	s.volume = 0
}

// Unmute restores the last non-zero volume (0.5 when there is none,
// mirroring the original player). Idempotent.
func (s *Session) Unmute() {
	if !s.muted {
		return
	}
	s.muted = false
	if s.lastVolume > 0 {
		s.volume = s.lastVolume
	} else {
		s.volume = 0.5
	}
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Source returns the resolved source of the current selection; ok is
// false unless the session is Resolved.
func (s *Session) Source() (media.ResolvedSource, bool) {
	return s.source, s.state == Resolved
}

// Selection returns the current (server, episode) selection.
func (s *Session) Selection() Selection { return s.selection }

// MovieID returns the movie this session belongs to.
func (s *Session) MovieID() string { return s.movieID }

// Position returns the current playback offset in seconds.
func (s *Session) Position() float64 { return s.position }

// Duration returns the known media duration, 0 when unknown.
func (s *Session) Duration() float64 { return s.duration }

// Playing reports whether playback is running.
func (s *Session) Playing() bool { return s.playing }

// Volume returns the current volume in [0, 1].
func (s *Session) Volume() float64 { return s.volume }

// Muted reports whether playback is muted.
func (s *Session) Muted() bool { return s.muted }
