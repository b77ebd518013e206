package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ntstracks/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ntstracks",
		Short:   "Collect artist - track lists from NTS Radio",
		Version: version,
		Long: `ntstracks loads nts.live pages in a headless browser and collects the
tracks they list: search results for an artist, the tracklist of one
episode, or the tracklists of every episode of a show. The result is
printed as "artist - track" lines and copied to the clipboard.`,
		Example: `  # All tracks nts search finds for an artist
  ntstracks get-artist --artist "young thug"

  # One episode's tracklist
  ntstracks get-episode --url https://www.nts.live/shows/umru/episodes/umru-19th-july-2023

  # Every episode of a show, written to a CSV file
  ntstracks get-show --url https://www.nts.live/shows/umru -o umru.csv

  # Skip the browser for server-rendered pages
  ntstracks get-episode --driver static -u /shows/umru/episodes/umru-19th-july-2023`,
		SilenceUsage: true,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newArtistCmd(), newEpisodeCmd(), newShowCmd())
	return rootCmd
}
