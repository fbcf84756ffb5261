// Package catalog talks to the remote movie catalog API and folds its
// heterogeneous payload shapes into the one normalized form the rest of
// the application operates on. Normalization happens once, at this
// boundary; downstream code never branches on payload shape again.
package catalog

import (
	"fmt"
	"strconv"

	"vphim/internal/media"
)

// Normalize converts a raw detail response into a MovieRecord. It is a
// pure function and never fails: absent or malformed fields degrade to
// empty collections, yielding a record with zero playable episodes
// rather than an error.
func Normalize(raw RawDetailResponse) media.MovieRecord {
	m := raw.Movie
	rec := media.MovieRecord{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		OriginalName: m.OriginName,
		Description:  CleanDescription(m.Content),
		PosterURL:    m.PosterURL,
		Quality:      m.Quality,
		Year:         int(m.Year),
		Rating:       ratingOf(m.TMDB.VoteAverage, m.IMDB.Rating),
		Categories:   normalizeTerms(m.Category),
		Countries:    normalizeTerms(m.Country),
	}

	rec.Servers = normalizeServers(raw.Episodes, raw.Medias)
	if len(rec.Servers) == 0 && len(raw.Medias) > 0 {
		rec.Servers = []media.ServerGroup{mediasGroup(raw.Medias)}
	}
	return rec
}

func normalizeTerms(raw []rawTerm) []media.Term {
	if len(raw) == 0 {
		return nil
	}
	terms := make([]media.Term, 0, len(raw))
	for _, t := range raw {
		if t.Slug == "" && t.Name == "" {
			continue
		}
		terms = append(terms, media.Term{ID: t.id(), Slug: t.Slug, Name: t.Name})
	}
	return terms
}

func normalizeServers(groups rawServerList, medias []rawEpisode) []media.ServerGroup {
	var servers []media.ServerGroup
	seenNames := make(map[string]bool)

	for i, g := range groups {
		name := g.ServerName
		if name == "" {
			name = fmt.Sprintf("Server %d", i+1)
		}
		// Server names must be unique within one record. The catalog
		// occasionally repeats them across mirrors, and an original name
		// can collide with a synthesized suffix, so the candidate is
		// re-checked until it is free.
		if seenNames[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d)", name, n)
				if !seenNames[candidate] {
					name = candidate
					break
				}
			}
		}
		seenNames[name] = true

		servers = append(servers, media.ServerGroup{
			Name:     name,
			Episodes: normalizeEpisodes(g.ServerData, medias),
		})
	}
	return servers
}

func normalizeEpisodes(eps []rawEpisode, medias []rawEpisode) []media.Episode {
	var out []media.Episode
	seenKeys := make(map[string]bool)

	for i, e := range eps {
		var ep media.Episode
		ep.Origin = media.OriginServer

		if e.IsString {
			// Bare string entries carry no links of their own; the
			// original page resolved them against the flat medias list.
			ep.Key = e.Value
			ep.Sources = findMediaSources(medias, e.Value)
		} else {
			ep.Key = episodeKey(e, i)
			ep.DisplayName = e.Name
			ep.Sources = sourcesOf(e)
		}

		if ep.Key == "" {
			ep.Key = strconv.Itoa(i)
		}
		// Keys must be unique within the group. The positional suffix can
		// itself collide with an original key, so it grows until free.
		if seenKeys[ep.Key] {
			base := ep.Key
			for n := i; ; n++ {
				candidate := base + "-" + strconv.Itoa(n)
				if !seenKeys[candidate] {
					ep.Key = candidate
					break
				}
			}
		}
		seenKeys[ep.Key] = true

		if ep.DisplayName == "" {
			ep.DisplayName = "Episode " + ep.Key
		}
		out = append(out, ep)
	}
	return out
}

// episodeKey synthesizes the stable lookup key for an object-shaped
// episode. The precedence slug, id, filename, positional index is a
// contract: persisted watch-progress keys depend on it staying put
// across reloads.
func episodeKey(e rawEpisode, index int) string {
	switch {
	case e.Slug != "":
		return e.Slug
	case e.ID != "":
		return e.ID
	case e.Filename != "":
		return e.Filename
	default:
		return strconv.Itoa(index)
	}
}

func sourcesOf(e rawEpisode) media.SourceSet {
	return media.SourceSet{
		EmbedURL:  e.LinkEmbed,
		StreamURL: e.LinkM3U8,
		DirectURL: e.Link,
	}
}

// findMediaSources locates a medias entry for a string-shaped episode:
// first by filename/slug/id match, then by treating the string as a
// numeric index into the list.
func findMediaSources(medias []rawEpisode, key string) media.SourceSet {
	for _, m := range medias {
		if m.IsString {
			continue
		}
		if m.Filename == key || m.Slug == key || m.ID == key {
			return sourcesOf(m)
		}
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(medias) {
		m := medias[idx]
		if m.IsString {
			return media.SourceSet{DirectURL: m.Value}
		}
		return sourcesOf(m)
	}
	return media.SourceSet{}
}

// mediasGroup synthesizes the implicit "Default" server group from a
// server-less medias list. Its episodes are positionally keyed and keep
// OriginMedias so the source selector applies the embed-first priority
// that path has always had.
func mediasGroup(medias []rawEpisode) media.ServerGroup {
	g := media.ServerGroup{Name: "Default"}
	for i, m := range medias {
		ep := media.Episode{
			Key:    strconv.Itoa(i),
			Origin: media.OriginMedias,
		}
		if m.IsString {
			ep.Sources = media.SourceSet{DirectURL: m.Value}
		} else {
			ep.DisplayName = m.Name
			ep.Sources = sourcesOf(m)
		}
		if ep.DisplayName == "" {
			ep.DisplayName = "Episode " + ep.Key
		}
		g.Episodes = append(g.Episodes, ep)
	}
	return g
}

func normalizeSummary(item rawListItem) media.MovieSummary {
	return media.MovieSummary{
		ID:           item.ID,
		Slug:         item.Slug,
		Name:         item.Name,
		OriginalName: item.OriginName,
		PosterURL:    item.PosterURL,
		Quality:      item.Quality,
		Year:         int(item.Year),
		Rating:       ratingOf(item.TMDB.VoteAverage, item.IMDB.Rating),
	}
}

func ratingOf(tmdb, imdb float64) float64 {
	if tmdb > 0 {
		return tmdb
	}
	return imdb
}
