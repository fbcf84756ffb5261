// Package media defines shared types for the vphim application.
package media

// SourceKind classifies how a resolved URL should be played.
type SourceKind int

const (
	Embed  SourceKind = iota // third-party iframe player, not directly controllable
	Stream                   // adaptive bitrate manifest (HLS)
	Direct                   // progressive-download media file
)

func (k SourceKind) String() string {
	switch k {
	case Embed:
		return "embed"
	case Stream:
		return "stream"
	case Direct:
		return "direct"
	default:
		return "unknown"
	}
}

// Origin records which catalog path produced an episode. The source
// selector picks a different URL priority per origin, so this is part
// of the episode's identity, not a debugging aid.
type Origin int

const (
	OriginServer Origin = iota // episode came from a server group
	OriginMedias               // episode came from the flat medias fallback list
)

// SourceSet holds the candidate URLs an episode may carry. Any subset
// may be empty; an episode with all three empty is unplayable.
type SourceSet struct {
	EmbedURL  string
	StreamURL string
	DirectURL string
}

// Empty reports whether no candidate URL is present.
func (s SourceSet) Empty() bool {
	return s.EmbedURL == "" && s.StreamURL == "" && s.DirectURL == ""
}

// Episode is one playable entry within a server group.
type Episode struct {
	Key         string // stable lookup key, unique within its group
	DisplayName string
	Sources     SourceSet
	Origin      Origin
}

// ServerGroup is one provider/mirror's full episode list for a title.
type ServerGroup struct {
	Name     string // unique within a MovieRecord's Servers
	Episodes []Episode
}

// Term is a category or country reference from the catalog.
type Term struct {
	ID   string
	Slug string
	Name string
}

// MovieRecord is the normalized shape of one catalog title. Servers
// order defines default server priority (index 0 is the default).
type MovieRecord struct {
	ID           string
	Slug         string
	Name         string
	OriginalName string
	Description  string
	PosterURL    string
	Quality      string
	Year         int // 0 when absent
	Rating       float64
	Categories   []Term
	Countries    []Term
	Servers      []ServerGroup
}

// EpisodeCount returns the total number of episodes across all servers.
func (m *MovieRecord) EpisodeCount() int {
	n := 0
	for _, s := range m.Servers {
		n += len(s.Episodes)
	}
	return n
}

// ResolvedSource is the single playable outcome for a selection.
type ResolvedSource struct {
	Kind SourceKind
	URL  string
}

// MovieSummary is the compact listing shape used by search results,
// category/country/year pages and the recents/favorites lists.
type MovieSummary struct {
	ID           string
	Slug         string
	Name         string
	OriginalName string
	PosterURL    string
	Quality      string
	Year         int
	Rating       float64
}

// WatchProgress is one persisted resume point, keyed by movie and
// episode so multi-episode titles resume per episode.
type WatchProgress struct {
	MovieID         string
	EpisodeKey      string
	PositionSeconds float64
	LastWatchedAt   int64 // epoch millis
}
