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

// listTypes maps the CLI argument to the catalog's list slugs.
var listTypes = map[string]string{
	"series":    "phim-bo",
	"single":    "phim-le",
	"animation": "hoat-hinh",
	"tv-shows":  "tv-shows",
}

var browseCmd = &cobra.Command{
	Use:   "browse [new|series|single|animation|tv-shows]",
	Short: "Browse catalog listings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  browseRun,
}

func browseRun(cmd *cobra.Command, args []string) error {
	kind := "new"
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}

	client := catalog.NewClient(cfg.Base)

	var (
		page catalog.ListPage
		err  error
	)
	if kind == "new" {
		page, err = client.NewlyUpdated(listOpts())
	} else {
		slug, ok := listTypes[kind]
		if !ok {
			return fmt.Errorf("unknown listing %q (new, series, single, animation, tv-shows)", kind)
		}
		page, err = client.ListByType(slug, listOpts())
	}
	if err != nil {
		return fmt.Errorf("loading listing: %w", err)
	}

	return pickAndPlay(client, browseTitle(kind, page), page.Items)
}

var curatedCmd = &cobra.Command{
	Use:   "curated",
	Short: "Browse the high-rating picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(cfg.Base)
		page, err := client.Curated(listOpts())
		if err != nil {
			return fmt.Errorf("loading curated listing: %w", err)
		}
		return pickAndPlay(client, browseTitle("curated", page), page.Items)
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category [slug]",
	Short: "Browse titles by category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(cfg.Base)

		slug, err := termArg(args, "Category", client.Categories)
		if err != nil {
			return err
		}
		page, err := client.ByCategory(slug, listOpts())
		if err != nil {
			return fmt.Errorf("loading category %q: %w", slug, err)
		}
		return pickAndPlay(client, browseTitle(slug, page), page.Items)
	},
}

var countryCmd = &cobra.Command{
	Use:   "country [slug]",
	Short: "Browse titles by country",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(cfg.Base)

		slug, err := termArg(args, "Country", client.Countries)
		if err != nil {
			return err
		}
		page, err := client.ByCountry(slug, listOpts())
		if err != nil {
			return fmt.Errorf("loading country %q: %w", slug, err)
		}
		return pickAndPlay(client, browseTitle(slug, page), page.Items)
	},
}

var yearCmd = &cobra.Command{
	Use:   "year [year]",
	Short: "Browse titles by release year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(cfg.Base)

		var year int
		if len(args) > 0 {
			var err error
			year, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
		} else {
			years := catalog.Years(20)
			rows := make([]tui.Item, len(years))
			for i, y := range years {
				rows[i] = tui.Item{Label: strconv.Itoa(y)}
			}
			i, err := tui.Select("Year", rows)
			if err != nil {
				return err
			}
			year = years[i]
		}

		page, err := client.ByYear(year, listOpts())
		if err != nil {
			return fmt.Errorf("loading year %d: %w", year, err)
		}
		return pickAndPlay(client, browseTitle(strconv.Itoa(year), page), page.Items)
	},
}

// termArg resolves a taxonomy slug from the CLI argument or a picker
// over the fetched terms.
func termArg(args []string, prompt string, fetch func() ([]media.Term, error)) (string, error) {
	if len(args) > 0 {
		return strings.ToLower(args[0]), nil
	}

	terms, err := fetch()
	if err != nil {
		return "", fmt.Errorf("loading %s list: %w", strings.ToLower(prompt), err)
	}
	if len(terms) == 0 {
		return "", fmt.Errorf("no %s entries available", strings.ToLower(prompt))
	}

	rows := make([]tui.Item, len(terms))
	for i, t := range terms {
		rows[i] = tui.Item{Label: t.Name, Detail: t.Slug}
	}
	i, err := tui.Select(prompt, rows)
	if err != nil {
		return "", err
	}
	return terms[i].Slug, nil
}

func browseTitle(kind string, page catalog.ListPage) string {
	return fmt.Sprintf("%s (page %d/%d)", kind, page.Page, page.TotalPages)
}
