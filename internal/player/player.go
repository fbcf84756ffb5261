// Package player launches external media players on resolved sources.
// All invocations use exec.Command with explicit argument slices,
// so titles and URLs are never shell-interpreted.
package player

import (
	"vphim/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream or direct source and blocks
	// until the player exits. Returns the last playback position.
	Play(src media.ResolvedSource, title string, startPos float64) (float64, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}
