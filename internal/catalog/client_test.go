package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient serves canned JSON per path and returns a client aimed
// at the test server.
func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestMovieDetail(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/phim/test-movie": `{
			"movie": {"_id": "m1", "name": "Test Movie", "year": 2020},
			"episodes": [{"server_name": "S1", "server_data": [
				{"slug": "tap-01", "link_m3u8": "https://s/1.m3u8"}
			]}]
		}`,
	})

	rec, err := c.MovieDetail("test-movie")
	if err != nil {
		t.Fatalf("MovieDetail() error: %v", err)
	}
	if rec.Name != "Test Movie" || rec.Year != 2020 {
		t.Errorf("record = %+v", rec)
	}
	// The payload omitted its own slug; the requested one is backfilled.
	if rec.Slug != "test-movie" {
		t.Errorf("slug = %q, want backfilled test-movie", rec.Slug)
	}
	if rec.EpisodeCount() != 1 {
		t.Errorf("episode count = %d, want 1", rec.EpisodeCount())
	}
}

func TestMovieDetailInvalidSlug(t *testing.T) {
	c := NewClient("phimapi.com")
	if _, err := c.MovieDetail("../../phim/x"); err == nil {
		t.Error("MovieDetail() should reject a traversal slug")
	}
	if _, err := c.MovieDetail(""); err == nil {
		t.Error("MovieDetail() should reject an empty slug")
	}
}

func TestMovieDetailNotFound(t *testing.T) {
	c := newTestClient(t, nil)
	if _, err := c.MovieDetail("missing"); err == nil {
		t.Error("MovieDetail() should propagate a 404")
	}
}

func TestSearchV1Envelope(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/v1/api/tim-kiem": `{
			"data": {
				"items": [
					{"_id": "m1", "slug": "a", "name": "A", "tmdb": {"vote_average": 8.0}},
					{"_id": "m2", "slug": "b", "name": "B"}
				],
				"params": {"pagination": {"totalItems": 50, "totalPages": 3, "currentPage": 2}}
			}
		}`,
	})

	page, err := c.Search("test", ListOptions{Page: 2})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].Rating != 8.0 {
		t.Errorf("rating = %v", page.Items[0].Rating)
	}
	if page.Page != 2 || page.TotalPages != 3 || page.TotalItems != 50 {
		t.Errorf("pagination = %d/%d/%d", page.Page, page.TotalPages, page.TotalItems)
	}
}

func TestSearchEmptyKeyword(t *testing.T) {
	c := NewClient("phimapi.com")
	if _, err := c.Search("", ListOptions{}); err == nil {
		t.Error("Search() should reject an empty keyword")
	}
}

func TestNewlyUpdatedV2Envelope(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/danh-sach/phim-moi-cap-nhat-v2": `{
			"items": [{"_id": "m1", "slug": "a", "name": "A", "year": "2024"}],
			"pagination": {"totalItems": "240", "totalPages": "10", "currentPage": "1"}
		}`,
	})

	page, err := c.NewlyUpdated(ListOptions{})
	if err != nil {
		t.Fatalf("NewlyUpdated() error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Year != 2024 {
		t.Errorf("items = %+v", page.Items)
	}
	// String-typed pagination numbers still parse.
	if page.TotalItems != 240 || page.TotalPages != 10 || page.Page != 1 {
		t.Errorf("pagination = %d/%d/%d", page.Page, page.TotalPages, page.TotalItems)
	}
}

func TestListMissingPagination(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/danh-sach/phim-moi-cap-nhat-v2": `{"items": [{"_id": "m1", "slug": "a", "name": "A"}]}`,
	})

	page, err := c.NewlyUpdated(ListOptions{Page: 4})
	if err != nil {
		t.Fatalf("NewlyUpdated() error: %v", err)
	}
	if page.Page != 4 {
		t.Errorf("page = %d, want requested page as fallback", page.Page)
	}
	if page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want floor of 1", page.TotalPages)
	}
}

func TestListByTypeAndTaxonomies(t *testing.T) {
	listing := `{"data": {"items": [{"_id": "m1", "slug": "a", "name": "A"}],
		"pagination": {"totalItems": 1, "totalPages": 1, "currentPage": 1}}}`
	c := newTestClient(t, map[string]string{
		"/v1/api/danh-sach/phim-bo": listing,
		"/v1/api/the-loai/kinh-di":  listing,
		"/v1/api/quoc-gia/han-quoc": listing,
		"/v1/api/nam/2024":          listing,
	})

	calls := []struct {
		name string
		call func() (ListPage, error)
	}{
		{"ListByType", func() (ListPage, error) { return c.ListByType("phim-bo", ListOptions{}) }},
		{"ByCategory", func() (ListPage, error) { return c.ByCategory("kinh-di", ListOptions{}) }},
		{"ByCountry", func() (ListPage, error) { return c.ByCountry("han-quoc", ListOptions{}) }},
		{"ByYear", func() (ListPage, error) { return c.ByYear(2024, ListOptions{}) }},
	}
	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			page, err := tc.call()
			if err != nil {
				t.Fatalf("%s error: %v", tc.name, err)
			}
			if len(page.Items) != 1 {
				t.Errorf("%s items = %d, want 1", tc.name, len(page.Items))
			}
		})
	}

	if _, err := c.ByCategory("kinh di", ListOptions{}); err == nil {
		t.Error("ByCategory() should reject an unsafe slug")
	}
	if _, err := c.ByYear(0, ListOptions{}); err == nil {
		t.Error("ByYear() should reject year 0")
	}
}

func TestCategoriesAndCountries(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/the-loai": `[{"_id": "1", "slug": "kinh-di", "name": "Kinh Dị"}]`,
		"/quoc-gia": `{"data": [{"_id": "2", "slug": "han-quoc", "name": "Hàn Quốc"}]}`,
	})

	cats, err := c.Categories()
	if err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	if len(cats) != 1 || cats[0].Slug != "kinh-di" {
		t.Errorf("categories = %+v", cats)
	}

	// The wrapped shape decodes too.
	countries, err := c.Countries()
	if err != nil {
		t.Fatalf("Countries() error: %v", err)
	}
	if len(countries) != 1 || countries[0].Slug != "han-quoc" {
		t.Errorf("countries = %+v", countries)
	}
}

func TestSuggestions(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/v1/api/tim-kiem-goi-y": `{"data": {"items": [{"_id": "m1", "slug": "a", "name": "A"}]}}`,
	})

	items, err := c.Suggestions("a")
	if err != nil {
		t.Fatalf("Suggestions() error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}

	items, err = c.Suggestions("")
	if err != nil || items != nil {
		t.Errorf("empty keyword should yield no request: %v %v", items, err)
	}
}

func TestYears(t *testing.T) {
	years := Years(3)
	if len(years) != 4 {
		t.Fatalf("Years(3) len = %d, want 4", len(years))
	}
	current := time.Now().Year()
	for i, y := range years {
		if y != current-i {
			t.Errorf("years[%d] = %d, want %d", i, y, current-i)
		}
	}
	if got := Years(-1); len(got) != 1 {
		t.Errorf("Years(-1) len = %d, want 1", len(got))
	}
}
