package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vphim/internal/catalog"
	"vphim/internal/media"
	"vphim/internal/player"
	"vphim/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Resume from watch history",
	RunE:  historyRun,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all watch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()
		store.ClearAll()
		fmt.Println("Watch history cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	store := openStore()
	defer store.Close()

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	// Progress entries carry only IDs; titles and slugs come from the
	// recently-viewed list. Entries for titles that have fallen out of
	// it can no longer be re-resolved.
	known := make(map[string]media.MovieSummary)
	for _, m := range store.Recent() {
		known[m.ID] = m
	}
	for _, m := range store.Favorites() {
		if _, ok := known[m.ID]; !ok {
			known[m.ID] = m
		}
	}

	var (
		rows      []tui.Item
		playable  []media.WatchProgress
		summaries []media.MovieSummary
	)
	for _, e := range entries {
		m, ok := known[e.MovieID]
		if !ok {
			debugf("skipping history entry for unknown title %s", e.MovieID)
			continue
		}
		rows = append(rows, tui.Item{
			Label:  m.Name,
			Detail: fmt.Sprintf("%s · %s", e.EpisodeKey, player.FormatDuration(e.PositionSeconds)),
		})
		playable = append(playable, e)
		summaries = append(summaries, m)
	}
	if len(rows) == 0 {
		fmt.Println("No resumable history entries found.")
		return nil
	}

	idx, err := tui.Select("History", rows)
	if err != nil {
		return err
	}

	entry := playable[idx]
	debugf("resuming: %s at %.0fs", summaries[idx].Name, entry.PositionSeconds)

	flagContinue = true
	flagEpisode = entry.EpisodeKey
	return playSlug(catalog.NewClient(cfg.Base), summaries[idx].Slug)
}
