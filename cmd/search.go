package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vphim/internal/catalog"
	"vphim/internal/media"
	"vphim/internal/tui"
)

// searchRun is the default command: vphim <query>
func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if query == "" {
		var err error
		query, err = tui.Input("Search")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}

	debugf("searching for: %s", query)

	client := catalog.NewClient(cfg.Base)
	page, err := client.Search(query, listOpts())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return pickAndPlay(client, fmt.Sprintf("Results (page %d/%d)", page.Page, page.TotalPages), page.Items)
}

func listOpts() catalog.ListOptions {
	return catalog.ListOptions{Page: flagPage, Limit: cfg.Limit}
}

// pickAndPlay shows summaries in the picker and plays the chosen title.
func pickAndPlay(client *catalog.Client, title string, items []media.MovieSummary) error {
	if len(items) == 0 {
		fmt.Println("No titles found.")
		return nil
	}

	idx, err := tui.Select(title, summaryItems(items))
	if err != nil {
		return err
	}

	selected := items[idx]
	debugf("selected: %s (%s)", selected.Name, selected.Slug)
	return playSlug(client, selected.Slug)
}

func summaryItems(items []media.MovieSummary) []tui.Item {
	rows := make([]tui.Item, len(items))
	for i, m := range items {
		rows[i] = tui.Item{Label: m.Name, Detail: summaryDetail(m)}
	}
	return rows
}

func summaryDetail(m media.MovieSummary) string {
	var parts []string
	if m.OriginalName != "" && m.OriginalName != m.Name {
		parts = append(parts, m.OriginalName)
	}
	if m.Year > 0 {
		parts = append(parts, strconv.Itoa(m.Year))
	}
	if m.Quality != "" {
		parts = append(parts, m.Quality)
	}
	if m.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f", m.Rating))
	}
	return strings.Join(parts, " · ")
}
