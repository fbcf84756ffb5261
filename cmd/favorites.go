package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vphim/internal/catalog"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Browse recently viewed titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		items := store.Recent()
		if len(items) == 0 {
			fmt.Println("No recently viewed titles.")
			return nil
		}
		return pickAndPlay(catalog.NewClient(cfg.Base), "Recent", items)
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Browse favorite titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openStore()
		defer store.Close()

		items := store.Favorites()
		if len(items) == 0 {
			fmt.Println("No favorites yet. Add one with: vphim favorites add <slug>")
			return nil
		}
		return pickAndPlay(catalog.NewClient(cfg.Base), "Favorites", items)
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Toggle a title in the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(cfg.Base)
		rec, err := client.MovieDetail(args[0])
		if err != nil {
			return err
		}

		store := openStore()
		defer store.Close()

		wasFavorite := store.IsFavorite(rec.ID)
		nowFavorite := store.ToggleFavorite(recordSummary(rec))
		switch {
		case nowFavorite:
			fmt.Printf("Added to favorites: %s\n", rec.Name)
		case wasFavorite:
			fmt.Printf("Removed from favorites: %s\n", rec.Name)
		default:
			fmt.Printf("Favorites list is full (%d titles).\n", cfg.MaxFavorites)
		}
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
}
