package main

import (
	"fmt"
	"net/http"
	"net/url"

	"ntstracks/internal/browser"
	"ntstracks/internal/config"
	"ntstracks/internal/formatter"
	"ntstracks/internal/logger"
	"ntstracks/internal/output"
	"ntstracks/internal/scraper"
	"ntstracks/internal/sites/nts"
	"ntstracks/internal/static"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newArtistCmd() *cobra.Command {
	var artist string
	cmd := &cobra.Command{
		Use:   "get-artist",
		Short: "Get all tracks by an artist from nts search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, "nts.artist", artist, func(log logrus.FieldLogger) {
				log.Infof("Getting all songs by artist %s", artist)
				log.Infof("URL: %s", nts.SearchURL(artist))
			})
		},
	}
	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist name")
	_ = cmd.MarkFlagRequired("artist")
	return cmd
}

func newEpisodeCmd() *cobra.Command {
	var episodeURL string
	cmd := &cobra.Command{
		Use:   "get-episode",
		Short: "Get the tracklist of one episode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, "nts.episode", episodeURL, nil)
		},
	}
	cmd.Flags().StringVarP(&episodeURL, "url", "u", "", "URL of episode (e.g. https://www.nts.live/shows/umru/episodes/umru-19th-july-2023)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newShowCmd() *cobra.Command {
	var showURL string
	cmd := &cobra.Command{
		Use:   "get-show",
		Short: "Get the tracklists of every episode of a show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, "nts.show", showURL, nil)
		},
	}
	cmd.Flags().StringVarP(&showURL, "url", "u", "", "URL of show (e.g. https://www.nts.live/shows/umru)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// run scrapes target with the named scraper and emits the formatted result.
// Nothing is emitted when scraping fails.
func run(cmd *cobra.Command, site, target string, announce func(logrus.FieldLogger)) error {
	cfg, err := config.Load(viper.New(), cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if announce != nil {
		announce(log)
	}

	s, ok := scraper.Get(site)
	if !ok {
		return fmt.Errorf("unknown site: %s", site)
	}

	open, err := openFunc(cfg)
	if err != nil {
		return err
	}

	content, err := s.Scrape(cmd.Context(), target, scraper.Options{
		Open:          open,
		Timeout:       cfg.Wait.Timeout,
		ScrollDelay:   cfg.Wait.ScrollDelay,
		MaxScrolls:    cfg.Wait.MaxScrolls,
		ScrollBudget:  cfg.Wait.ScrollBudget,
		SkipMalformed: cfg.SkipMalformed,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to scrape: %w", err)
	}

	text, err := formatter.Format(content, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	var sinks output.Multi
	if cfg.Output.File != "" {
		sinks = append(sinks, output.File{Path: cfg.Output.File, Log: log})
	} else {
		sinks = append(sinks, output.Writer{W: cmd.OutOrStdout()})
	}
	if !cfg.Output.NoClipboard {
		sinks = append(sinks, output.NewClipboard(log))
	}
	return sinks.Emit(text)
}

func openFunc(cfg *config.Config) (scraper.OpenFunc, error) {
	if cfg.Driver == config.DriverStatic {
		fetcher := static.NewHTTPFetcher(cfg.Browser.NavTimeout)
		if cfg.Browser.Proxy != "" {
			proxy, err := url.Parse(cfg.Browser.Proxy)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy url: %w", err)
			}
			fetcher.Client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
		}
		return static.Open(fetcher), nil
	}

	return browser.Open(browser.Config{
		Headless:          !cfg.Browser.ShowUI,
		ProxyURL:          cfg.Browser.Proxy,
		NoSandbox:         cfg.Browser.NoSandbox,
		NavigationTimeout: cfg.Browser.NavTimeout,
	}), nil
}
