// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"vphim/internal/config"
	"vphim/internal/progress"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagDownload string
	flagPlayer   string
	flagServer   string
	flagEpisode  string
	flagContinue bool
	flagJSON     bool
	flagDebug    bool
	flagPage     int
	flagLimit    int
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vphim [query]",
	Short: "Browse and stream the phim catalog from the terminal",
	Long: `Vphim is a terminal client for phimapi-style movie catalogs.
Search titles, pick a server and episode, stream with mpv/vlc, and
resume where you left off.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              searchRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDownload, "download", "d", "", "Download to path instead of playing")
	// Bare -d downloads to the configured directory.
	rootCmd.PersistentFlags().Lookup("download").NoOptDefVal = "auto"
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Preferred server name")
	rootCmd.PersistentFlags().StringVarP(&flagEpisode, "episode", "e", "", "Episode key to play directly")
	rootCmd.PersistentFlags().BoolVarP(&flagContinue, "continue", "c", false, "Resume from the saved position")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output the resolved source as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().IntVar(&flagPage, "page", 1, "Listing page")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "Listing page size")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(curatedCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(countryCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagLimit > 0 {
		cfg.Limit = flagLimit
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[vphim] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// openStore builds the watch-state store over the configured backend.
// Backend failures degrade to a memory-only store.
func openStore() *progress.Store {
	opts := progress.Options{
		MaxProgress:  cfg.MaxProgress,
		MaxRecent:    cfg.MaxRecent,
		MaxFavorites: cfg.MaxFavorites,
	}

	path, err := cfg.StatePath()
	if err != nil {
		debugf("resolving state path: %v", err)
		return progress.NewStore(nil, opts)
	}

	var backend progress.Backend
	if cfg.Store == "file" {
		backend = progress.NewFileBackend(path)
	} else {
		sq, err := progress.OpenSQLite(path)
		if err != nil {
			debugf("opening state db: %v", err)
			return progress.NewStore(nil, opts)
		}
		backend = sq
	}
	return progress.NewStore(backend, opts)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vphim", Version)
	},
}
