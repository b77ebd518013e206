package nts

import (
	"context"
	"fmt"
	"strings"

	"ntstracks/internal/scraper"
	"ntstracks/internal/tracks"
)

func init() {
	scraper.Register(&ArtistScraper{})
	scraper.Register(&EpisodeScraper{})
	scraper.Register(&ShowScraper{})
}

// ArtistScraper collects the tracks nts search finds for an artist name.
type ArtistScraper struct{}

func (s *ArtistScraper) Name() string { return "nts.artist" }

func (s *ArtistScraper) Scrape(ctx context.Context, artist string, opts scraper.Options) (scraper.Content, error) {
	if strings.TrimSpace(artist) == "" {
		return nil, fmt.Errorf("artist is required")
	}
	url := SearchURL(artist)
	set, err := withClient(ctx, opts, func(c *Client) (*tracks.Set, error) {
		return c.SearchArtist(ctx, artist)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search artist %q: %w", artist, err)
	}
	return NewTracklistContent("Tracks by "+strings.ToLower(artist), url, set), nil
}

// EpisodeScraper collects the tracklist of one episode.
type EpisodeScraper struct{}

func (s *EpisodeScraper) Name() string { return "nts.episode" }

func (s *EpisodeScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	url, err := NormalizeURL(target)
	if err != nil {
		return nil, err
	}
	set, err := withClient(ctx, opts, func(c *Client) (*tracks.Set, error) {
		return c.ScrapeEpisode(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scrape episode: %w", err)
	}
	return NewTracklistContent("Episode tracklist", url, set), nil
}

// ShowScraper collects the tracklists of every episode of a show.
type ShowScraper struct{}

func (s *ShowScraper) Name() string { return "nts.show" }

func (s *ShowScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	url, err := NormalizeURL(target)
	if err != nil {
		return nil, err
	}
	set, err := withClient(ctx, opts, func(c *Client) (*tracks.Set, error) {
		return c.CrawlShow(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to crawl show: %w", err)
	}
	return NewTracklistContent("Show tracklist", url, set), nil
}

// withClient opens one session for fn and closes it however fn returns.
func withClient(ctx context.Context, opts scraper.Options, fn func(*Client) (*tracks.Set, error)) (*tracks.Set, error) {
	if opts.Open == nil {
		return nil, fmt.Errorf("no browser session configured")
	}
	session, err := opts.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			opts.Log().WithError(err).Warn("failed to close browser session")
		}
	}()

	return fn(NewClient(session, opts))
}
