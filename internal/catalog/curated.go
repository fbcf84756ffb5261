package catalog

import (
	"sort"

	"vphim/internal/media"
)

// curatedMinRating is the cutoff for the curated ("phim hay") listing.
const curatedMinRating = 7.0

// Curated returns the curated high-rating listing: the newly-updated
// page re-filtered client side to titles rated at or above the cutoff,
// sorted by rating descending.
//
// The pagination figures are an approximation inherited from the
// original site: the API cannot filter by rating, so the total is
// estimated from the kept share of one page (capped at the API's own
// total). Page counts are therefore inexact by construction; changing
// that needs product input, not a code fix.
func (c *Client) Curated(opts ListOptions) (ListPage, error) {
	page, err := c.NewlyUpdated(opts)
	if err != nil {
		return ListPage{}, err
	}

	var kept []media.MovieSummary
	for _, item := range page.Items {
		if item.Rating >= curatedMinRating {
			kept = append(kept, item)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Rating > kept[j].Rating
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	totalItems := len(kept) * 5
	if page.TotalItems < totalItems {
		totalItems = page.TotalItems
	}
	totalPages := (totalItems + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return ListPage{
		Items:      kept,
		Page:       page.Page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}, nil
}
