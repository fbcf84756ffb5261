package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vphim/internal/catalog"
	"vphim/internal/download"
	"vphim/internal/media"
	"vphim/internal/playback"
	"vphim/internal/player"
	"vphim/internal/progress"
	"vphim/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <slug>",
	Short: "Play a title directly by its catalog slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return playSlug(catalog.NewClient(cfg.Base), args[0])
	},
}

// playSlug fetches a title and runs the select -> resolve -> play flow.
func playSlug(client *catalog.Client, slug string) error {
	rec, err := client.MovieDetail(slug)
	if err != nil {
		return err
	}

	store := openStore()
	defer store.Close()

	return playRecord(rec, store)
}

func playRecord(rec media.MovieRecord, store *progress.Store) error {
	idx := playback.BuildIndex(&rec)

	var recorder playback.ProgressRecorder
	if cfg.History {
		recorder = store
	}
	session := playback.NewSession(rec.ID, idx, recorder)

	serverName, err := chooseServer(idx)
	if err != nil {
		return err
	}
	episodeKey, err := chooseEpisode(idx, serverName, rec.ID, store)
	if err != nil {
		return err
	}

	if session.SelectEpisode(serverName, episodeKey) != playback.Resolved {
		return fmt.Errorf("no playable source for %s / %s", serverName, episodeKey)
	}

	src, _ := session.Source()
	sel := session.Selection()
	title := playbackTitle(rec, idx, sel)
	debugf("resolved %s source: %s", src.Kind, src.URL)

	if flagJSON {
		out := map[string]interface{}{
			"title":   title,
			"server":  sel.ServerName,
			"episode": sel.EpisodeKey,
			"kind":    src.Kind.String(),
			"url":     src.URL,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	store.AddRecent(recordSummary(rec))

	if flagDownload != "" {
		dir := flagDownload
		if dir == "auto" {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.Download(src, title, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	if src.Kind == media.Embed {
		fmt.Fprintf(os.Stderr, "Opening embed player in browser: %s\n", src.URL)
		return player.OpenEmbed(src.URL)
	}

	var startPos float64
	if flagContinue && cfg.History {
		if pos, ok := store.Restore(rec.ID, sel.EpisodeKey); ok {
			startPos = pos
			debugf("resuming from position: %.0fs", startPos)
		}
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	lastPos, err := p.Play(src, title, startPos)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	// Route the final position through the session so it is clamped
	// and written to the progress store.
	session.Seek(lastPos)
	debugf("stopped at position: %.0fs", session.Position())

	return nil
}

// chooseServer resolves the --server flag or asks, skipping the picker
// when there is only one server.
func chooseServer(idx *playback.Index) (string, error) {
	servers := idx.Servers()
	if len(servers) == 0 {
		return "", fmt.Errorf("title has no servers")
	}
	if flagServer != "" {
		return flagServer, nil
	}
	if len(servers) == 1 {
		return servers[0], nil
	}

	rows := make([]tui.Item, len(servers))
	for i, name := range servers {
		rows[i] = tui.Item{
			Label:  name,
			Detail: fmt.Sprintf("%d episodes", len(idx.Episodes(name))),
		}
	}
	i, err := tui.Select("Server", rows)
	if err != nil {
		return "", err
	}
	return servers[i], nil
}

// chooseEpisode resolves the --episode flag or asks. Episodes with a
// saved position show it in the picker.
func chooseEpisode(idx *playback.Index, serverName, movieID string, store *progress.Store) (string, error) {
	if flagEpisode != "" {
		return flagEpisode, nil
	}

	eps := idx.Episodes(serverName)
	if len(eps) == 0 {
		// Let the index fall back to the default server during lookup.
		if sel, ok := idx.DefaultSelection(); ok {
			return sel.EpisodeKey, nil
		}
		return "", fmt.Errorf("server %q has no episodes", serverName)
	}
	if len(eps) == 1 {
		return eps[0].Key, nil
	}

	rows := make([]tui.Item, len(eps))
	for i, ep := range eps {
		detail := ""
		if pos, ok := store.Restore(movieID, ep.Key); ok && pos > 0 {
			detail = "watched " + player.FormatDuration(pos)
		}
		rows[i] = tui.Item{Label: ep.DisplayName, Detail: detail}
	}
	i, err := tui.Select("Episode", rows)
	if err != nil {
		return "", err
	}
	return eps[i].Key, nil
}

func playbackTitle(rec media.MovieRecord, idx *playback.Index, sel playback.Selection) string {
	if rec.EpisodeCount() <= 1 {
		return rec.Name
	}
	if ep, ok := idx.Lookup(sel.ServerName, sel.EpisodeKey); ok && ep.DisplayName != "" {
		return rec.Name + " - " + ep.DisplayName
	}
	return rec.Name
}

func recordSummary(rec media.MovieRecord) media.MovieSummary {
	return media.MovieSummary{
		ID:           rec.ID,
		Slug:         rec.Slug,
		Name:         rec.Name,
		OriginalName: rec.OriginalName,
		PosterURL:    rec.PosterURL,
		Quality:      rec.Quality,
		Year:         rec.Year,
		Rating:       rec.Rating,
	}
}
