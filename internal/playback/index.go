// Package playback turns a normalized movie record into a playable
// selection: an index for (server, episode) lookup, a source selector
// that picks exactly one URL per episode, and the session state machine
// that drives the player and the watch-progress store.
package playback

import (
	"vphim/internal/media"
)

// Selection identifies one episode within a movie record.
type Selection struct {
	ServerName string
	EpisodeKey string
}

// Index provides O(1) lookup of episodes by (server, episode) key over
// one MovieRecord. It is immutable; navigation to another movie builds
// a fresh index rather than patching this one.
type Index struct {
	record  *media.MovieRecord
	byKey   map[string]map[string]int // server name -> episode key -> episode position
	servers map[string]int            // server name -> group position
}

// BuildIndex constructs the lookup structure for a record.
func BuildIndex(record *media.MovieRecord) *Index {
	idx := &Index{
		record:  record,
		byKey:   make(map[string]map[string]int),
		servers: make(map[string]int),
	}
	for si, srv := range record.Servers {
		idx.servers[srv.Name] = si
		eps := make(map[string]int, len(srv.Episodes))
		for ei, ep := range srv.Episodes {
			eps[ep.Key] = ei
		}
		idx.byKey[srv.Name] = eps
	}
	return idx
}

// Lookup finds an episode by server name and episode key. When the
// requested server does not carry the key, the default server (group 0)
// is searched before giving up, so stale selections after a server
// switch still resolve when possible.
func (idx *Index) Lookup(serverName, episodeKey string) (media.Episode, bool) {
	if ep, ok := idx.lookupIn(serverName, episodeKey); ok {
		return ep, true
	}
	if len(idx.record.Servers) > 0 {
		def := idx.record.Servers[0].Name
		if def != serverName {
			if ep, ok := idx.lookupIn(def, episodeKey); ok {
				return ep, true
			}
		}
	}
	return media.Episode{}, false
}

func (idx *Index) lookupIn(serverName, episodeKey string) (media.Episode, bool) {
	si, ok := idx.servers[serverName]
	if !ok {
		return media.Episode{}, false
	}
	ei, ok := idx.byKey[serverName][episodeKey]
	if !ok {
		return media.Episode{}, false
	}
	return idx.record.Servers[si].Episodes[ei], true
}

// DefaultSelection returns the first episode of the first server, or
// false when the record has no servers or the first server is empty
// and no other fallback applies.
func (idx *Index) DefaultSelection() (Selection, bool) {
	for _, srv := range idx.record.Servers {
		if len(srv.Episodes) > 0 {
			return Selection{ServerName: srv.Name, EpisodeKey: srv.Episodes[0].Key}, true
		}
	}
	return Selection{}, false
}

// Servers returns the server names in priority order.
func (idx *Index) Servers() []string {
	names := make([]string, 0, len(idx.record.Servers))
	for _, srv := range idx.record.Servers {
		names = append(names, srv.Name)
	}
	return names
}

// Episodes returns the episode list of one server, in display order.
func (idx *Index) Episodes(serverName string) []media.Episode {
	si, ok := idx.servers[serverName]
	if !ok {
		return nil
	}
	return idx.record.Servers[si].Episodes
}
