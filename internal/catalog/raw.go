package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The catalog API has shipped several payload shapes over its lifetime.
// Everything in this file exists to fold them into one tagged structure
// without ever failing: malformed fields decode to their zero values so
// the normalizer can degrade to empty collections instead of erroring.

// flexString accepts a JSON string or number and stores it as a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*f = flexString(s)
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
	}
	return nil
}

// flexInt accepts a JSON number or numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				*f = flexInt(n)
			}
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
	}
	return nil
}

// rawEpisode is one episode entry as the API delivers it: either a bare
// string (filename/id) or an object with optional identity and link fields.
type rawEpisode struct {
	IsString bool
	Value    string // set only when IsString

	Slug      string
	ID        string
	Name      string
	Filename  string
	LinkEmbed string
	LinkM3U8  string
	Link      string
}

func (e *rawEpisode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			e.IsString = true
			e.Value = s
		}
		return nil
	}
	var obj struct {
		Slug      string     `json:"slug"`
		ID        flexString `json:"id"`
		Name      string     `json:"name"`
		Filename  string     `json:"filename"`
		LinkEmbed string     `json:"link_embed"`
		LinkM3U8  string     `json:"link_m3u8"`
		Link      string     `json:"link"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	e.Slug = obj.Slug
	e.ID = string(obj.ID)
	e.Name = obj.Name
	e.Filename = obj.Filename
	e.LinkEmbed = obj.LinkEmbed
	e.LinkM3U8 = obj.LinkM3U8
	e.Link = obj.Link
	return nil
}

// rawServerGroup is the current server shape: a named episode list.
type rawServerGroup struct {
	ServerName string       `json:"server_name"`
	ServerData []rawEpisode `json:"server_data"`
}

// rawServerList decodes both historical server shapes: an array of
// rawServerGroup, or a legacy object mapping server name to an episode
// list. For the legacy shape, document order of the keys is preserved
// because server order defines the default-selection priority.
type rawServerList []rawServerGroup

func (l *rawServerList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	switch data[0] {
	case '[':
		var groups []rawServerGroup
		// A type error in one element still leaves the others decoded;
		// keep the partial result.
		_ = json.Unmarshal(data, &groups)
		*l = groups
	case '{':
		*l = decodeLegacyServerMap(data)
	default:
		*l = nil
	}
	return nil
}

// decodeLegacyServerMap walks the object token by token so keys come out
// in document order; map[string] decoding would scramble them.
func decodeLegacyServerMap(data []byte) []rawServerGroup {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var groups []rawServerGroup
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return groups
		}
		name, ok := tok.(string)
		if !ok {
			return groups
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return groups
		}
		var eps []rawEpisode
		if err := json.Unmarshal(value, &eps); err != nil {
			eps = nil
		}
		groups = append(groups, rawServerGroup{ServerName: name, ServerData: eps})
	}
	return groups
}

// rawTerm is a category or country reference. Detail payloads key the
// identifier as "id", the taxonomy endpoints as "_id".
type rawTerm struct {
	ID    flexString `json:"id"`
	AltID flexString `json:"_id"`
	Slug  string     `json:"slug"`
	Name  string     `json:"name"`
}

func (t rawTerm) id() string {
	if t.ID != "" {
		return string(t.ID)
	}
	return string(t.AltID)
}

// rawMovie is the movie object of a detail response.
type rawMovie struct {
	ID         string    `json:"_id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	OriginName string    `json:"origin_name"`
	Content    string    `json:"content"`
	PosterURL  string    `json:"poster_url"`
	ThumbURL   string    `json:"thumb_url"`
	Quality    string    `json:"quality"`
	Year       flexInt   `json:"year"`
	Category   []rawTerm `json:"category"`
	Country    []rawTerm `json:"country"`
	TMDB       struct {
		VoteAverage float64 `json:"vote_average"`
	} `json:"tmdb"`
	IMDB struct {
		Rating float64 `json:"rating"`
	} `json:"imdb"`
}

// RawDetailResponse is the envelope of GET /phim/{slug}.
type RawDetailResponse struct {
	Movie    rawMovie      `json:"movie"`
	Episodes rawServerList `json:"episodes"`
	Medias   []rawEpisode  `json:"medias"`
}

// rawListItem is one movie in a listing/search response.
type rawListItem struct {
	ID         string  `json:"_id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	OriginName string  `json:"origin_name"`
	PosterURL  string  `json:"poster_url"`
	Quality    string  `json:"quality"`
	Year       flexInt `json:"year"`
	TMDB       struct {
		VoteAverage float64 `json:"vote_average"`
	} `json:"tmdb"`
	IMDB struct {
		Rating float64 `json:"rating"`
	} `json:"imdb"`
}

type rawPagination struct {
	TotalItems  flexInt `json:"totalItems"`
	TotalPages  flexInt `json:"totalPages"`
	CurrentPage flexInt `json:"currentPage"`
}

// rawListEnvelope covers both listing envelopes: the v2 endpoints answer
// with items/pagination at the top level, the v1 endpoints wrap the same
// fields in a data object.
type rawListEnvelope struct {
	Items      []rawListItem `json:"items"`
	Pagination rawPagination `json:"pagination"`
	Data       struct {
		Items      []rawListItem `json:"items"`
		Pagination rawPagination `json:"pagination"`
		Params     struct {
			Pagination rawPagination `json:"pagination"`
		} `json:"params"`
	} `json:"data"`
}
