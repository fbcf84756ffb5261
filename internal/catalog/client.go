package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vphim/internal/httputil"
	"vphim/internal/media"
)

// DefaultLimit is the page size used when a listing request does not
// specify one, matching the catalog's own default.
const DefaultLimit = 24

// Client talks to a phimapi-style movie catalog.
type Client struct {
	base   string // e.g. "phimapi.com"
	client *http.Client
}

// NewClient creates a catalog client for the given base host.
func NewClient(base string) *Client {
	return &Client{
		base:   base,
		client: httputil.NewClient(),
	}
}

func (c *Client) baseURL() string {
	// A bare host defaults to https; an explicit scheme is kept as-is.
	if strings.Contains(c.base, "://") {
		return c.base
	}
	return "https://" + c.base
}

// ListOptions carries the shared listing/search parameters.
type ListOptions struct {
	Page      int
	Limit     int
	Category  string
	Country   string
	Year      int
	SortField string // e.g. "modified.time", "year", "name"
	SortType  string // "asc" or "desc"
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	page := o.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Category != "" {
		v.Set("category", o.Category)
	}
	if o.Country != "" {
		v.Set("country", o.Country)
	}
	if o.Year > 0 {
		v.Set("year", strconv.Itoa(o.Year))
	}
	if o.SortField != "" {
		v.Set("sort_field", o.SortField)
	}
	if o.SortType != "" {
		v.Set("sort_type", o.SortType)
	}
	return v
}

// ListPage is one page of listing or search results.
type ListPage struct {
	Items      []media.MovieSummary
	Page       int
	TotalPages int
	TotalItems int
}

// MovieDetail fetches and normalizes one title by slug.
func (c *Client) MovieDetail(slug string) (media.MovieRecord, error) {
	if err := httputil.ValidateSlug(slug); err != nil {
		return media.MovieRecord{}, fmt.Errorf("invalid movie slug: %w", err)
	}

	body, err := httputil.GetJSON(c.client, c.baseURL()+"/phim/"+url.PathEscape(slug))
	if err != nil {
		return media.MovieRecord{}, fmt.Errorf("fetching movie %q: %w", slug, err)
	}

	var raw RawDetailResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return media.MovieRecord{}, fmt.Errorf("parsing movie %q: %w", slug, err)
	}

	rec := Normalize(raw)
	if rec.Slug == "" {
		rec.Slug = slug
	}
	return rec, nil
}

// Search queries the catalog by keyword.
func (c *Client) Search(keyword string, opts ListOptions) (ListPage, error) {
	if keyword == "" {
		return ListPage{}, fmt.Errorf("empty search keyword")
	}
	v := opts.values()
	v.Set("keyword", keyword)
	return c.fetchList(c.baseURL()+"/v1/api/tim-kiem?"+v.Encode(), opts)
}

// Suggestions returns quick search suggestions for a partial keyword.
func (c *Client) Suggestions(keyword string) ([]media.MovieSummary, error) {
	if keyword == "" {
		return nil, nil
	}
	v := url.Values{}
	v.Set("keyword", keyword)
	page, err := c.fetchList(c.baseURL()+"/v1/api/tim-kiem-goi-y?"+v.Encode(), ListOptions{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// NewlyUpdated lists the most recently updated titles (v2 endpoint,
// top-level envelope).
func (c *Client) NewlyUpdated(opts ListOptions) (ListPage, error) {
	v := opts.values()
	return c.fetchList(c.baseURL()+"/danh-sach/phim-moi-cap-nhat-v2?"+v.Encode(), opts)
}

// ListByType lists titles by catalog type slug (series, single,
// animation, tv-shows, ...).
func (c *Client) ListByType(typeSlug string, opts ListOptions) (ListPage, error) {
	if err := httputil.ValidateSlug(typeSlug); err != nil {
		return ListPage{}, fmt.Errorf("invalid list type: %w", err)
	}
	v := opts.values()
	return c.fetchList(c.baseURL()+"/v1/api/danh-sach/"+url.PathEscape(typeSlug)+"?"+v.Encode(), opts)
}

// ByCategory lists titles in a category.
func (c *Client) ByCategory(slug string, opts ListOptions) (ListPage, error) {
	if err := httputil.ValidateSlug(slug); err != nil {
		return ListPage{}, fmt.Errorf("invalid category slug: %w", err)
	}
	v := opts.values()
	return c.fetchList(c.baseURL()+"/v1/api/the-loai/"+url.PathEscape(slug)+"?"+v.Encode(), opts)
}

// ByCountry lists titles from a country.
func (c *Client) ByCountry(slug string, opts ListOptions) (ListPage, error) {
	if err := httputil.ValidateSlug(slug); err != nil {
		return ListPage{}, fmt.Errorf("invalid country slug: %w", err)
	}
	v := opts.values()
	return c.fetchList(c.baseURL()+"/v1/api/quoc-gia/"+url.PathEscape(slug)+"?"+v.Encode(), opts)
}

// ByYear lists titles released in a year.
func (c *Client) ByYear(year int, opts ListOptions) (ListPage, error) {
	if year <= 0 {
		return ListPage{}, fmt.Errorf("invalid year %d", year)
	}
	v := opts.values()
	return c.fetchList(c.baseURL()+"/v1/api/nam/"+strconv.Itoa(year)+"?"+v.Encode(), opts)
}

// Categories returns the catalog's category terms.
func (c *Client) Categories() ([]media.Term, error) {
	return c.fetchTerms(c.baseURL() + "/the-loai")
}

// Countries returns the catalog's country terms.
func (c *Client) Countries() ([]media.Term, error) {
	return c.fetchTerms(c.baseURL() + "/quoc-gia")
}

// Years returns the selectable release years: the current year and the
// given number of years before it. The catalog has no endpoint for
// this; the range is generated locally.
func Years(count int) []int {
	if count < 0 {
		count = 0
	}
	current := time.Now().Year()
	years := make([]int, 0, count+1)
	for i := 0; i <= count; i++ {
		years = append(years, current-i)
	}
	return years
}

func (c *Client) fetchList(url string, opts ListOptions) (ListPage, error) {
	body, err := httputil.GetJSON(c.client, url)
	if err != nil {
		return ListPage{}, err
	}

	var env rawListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ListPage{}, fmt.Errorf("parsing listing: %w", err)
	}

	items := env.Items
	pag := env.Pagination
	if len(items) == 0 && len(env.Data.Items) > 0 {
		items = env.Data.Items
		pag = env.Data.Pagination
		if pag.TotalPages == 0 {
			pag = env.Data.Params.Pagination
		}
	}

	page := ListPage{
		Page:       int(pag.CurrentPage),
		TotalPages: int(pag.TotalPages),
		TotalItems: int(pag.TotalItems),
	}
	if page.Page < 1 {
		page.Page = opts.Page
		if page.Page < 1 {
			page.Page = 1
		}
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	for _, item := range items {
		page.Items = append(page.Items, normalizeSummary(item))
	}
	return page, nil
}

func (c *Client) fetchTerms(url string) ([]media.Term, error) {
	body, err := httputil.GetJSON(c.client, url)
	if err != nil {
		return nil, err
	}

	var raw []rawTerm
	if err := json.Unmarshal(body, &raw); err != nil {
		// Some deployments wrap the list in a data field.
		var wrapped struct {
			Data []rawTerm `json:"data"`
		}
		if err2 := json.Unmarshal(body, &wrapped); err2 != nil || len(wrapped.Data) == 0 {
			return nil, fmt.Errorf("parsing terms: %w", err)
		}
		raw = wrapped.Data
	}
	return normalizeTerms(raw), nil
}
