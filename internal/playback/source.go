package playback

import (
	"vphim/internal/media"
)

// Resolve picks exactly one playable URL for an episode and classifies
// it. The priority depends on where the episode came from:
//
//	server groups:   stream, embed, direct
//	medias fallback: embed, stream, direct
//
// The medias path has always been embed-first; the two orders are kept
// as an explicit branch so neither path silently changes its source
// choice. Classification follows the supplying field, never the URL
// text, so a manifest URL without an .m3u8 suffix still counts as a
// stream.
//
// The second return is false when the episode carries no usable URL;
// callers surface that as a "no playable source" state.
func Resolve(ep media.Episode) (media.ResolvedSource, bool) {
	if ep.Origin == media.OriginMedias {
		return firstSource(ep.Sources,
			media.Embed, media.Stream, media.Direct)
	}
	return firstSource(ep.Sources,
		media.Stream, media.Embed, media.Direct)
}

func firstSource(s media.SourceSet, order ...media.SourceKind) (media.ResolvedSource, bool) {
	for _, kind := range order {
		url := ""
		switch kind {
		case media.Embed:
			url = s.EmbedURL
		case media.Stream:
			url = s.StreamURL
		case media.Direct:
			url = s.DirectURL
		}
		if url != "" {
			return media.ResolvedSource{Kind: kind, URL: url}, true
		}
	}
	return media.ResolvedSource{}, false
}
