package nts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ntstracks/internal/scraper"
	"ntstracks/internal/tracks"

	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultScrollDelay = 2 * time.Second
)

// Client scrapes nts pages through a single Driver.
type Client struct {
	driver        scraper.Driver
	log           logrus.FieldLogger
	timeout       time.Duration
	scrollDelay   time.Duration
	maxScrolls    int
	scrollBudget  time.Duration
	skipMalformed bool
	normalize     tracks.Normalizer

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewClient returns a Client driving d. A zero Timeout falls back to
// DefaultTimeout; ScrollDelay is used as given so callers can disable it.
func NewClient(d scraper.Driver, opts scraper.Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		driver:        d,
		log:           opts.Log(),
		timeout:       timeout,
		scrollDelay:   opts.ScrollDelay,
		maxScrolls:    opts.MaxScrolls,
		scrollBudget:  opts.ScrollBudget,
		skipMalformed: opts.SkipMalformed,
		normalize:     tracks.Identity,
		sleep:         sleep,
		now:           time.Now,
	}
}

// SetNormalizer replaces the identity normalizer. nil restores it.
func (c *Client) SetNormalizer(n tracks.Normalizer) {
	if n == nil {
		n = tracks.Identity
	}
	c.normalize = n
}

// Extract loads url and collects the tracks laid out by layout, keeping only
// those filter accepts.
func (c *Client) Extract(ctx context.Context, url string, layout Layout, filter tracks.ArtistFilter) (*tracks.Set, error) {
	if err := c.driver.Navigate(ctx, url); err != nil {
		return nil, err
	}
	return c.extractLoaded(ctx, url, layout, filter)
}

func (c *Client) extractLoaded(ctx context.Context, url string, layout Layout, filter tracks.ArtistFilter) (*tracks.Set, error) {
	sel := layout.Selectors
	container := scraper.Class(sel.Container)

	if err := c.wait(ctx, url, layout.Wait(container)); err != nil {
		return nil, err
	}

	elements, err := c.driver.FindAll(ctx, container, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s on %s: %w", container, url, err)
	}

	set := tracks.NewSet()
	for i, el := range elements {
		t, err := c.readTrack(el, sel)
		if err != nil {
			var fieldErr *scraper.ExtractionError
			if !errors.As(err, &fieldErr) || !errors.Is(err, scraper.ErrMissingField) {
				return nil, fmt.Errorf("failed to read container %d on %s: %w", i, url, err)
			}
			fieldErr.URL = url
			if !c.skipMalformed {
				return nil, fieldErr
			}
			c.log.WithFields(logrus.Fields{"url": url, "container": i, "selector": fieldErr.Selector}).
				Warn("skipping container with missing field")
			continue
		}
		if filter.Keep(t) {
			set.Add(t)
		}
	}

	c.log.WithFields(logrus.Fields{"url": url, "containers": len(elements), "tracks": set.Len()}).Debug("extracted page")
	return set, nil
}

// readTrack reads one container. Both fields are lowercased, then normalized.
func (c *Client) readTrack(el scraper.Element, sel scraper.Selectors) (tracks.Track, error) {
	artist, err := fieldText(el, sel.Artist)
	if err != nil {
		return tracks.Track{}, err
	}
	title, err := fieldText(el, sel.Track)
	if err != nil {
		return tracks.Track{}, err
	}
	artist, title = c.normalize(strings.ToLower(artist), strings.ToLower(title))
	return tracks.Track{Artist: artist, Title: title}, nil
}

func fieldText(el scraper.Element, class string) (string, error) {
	field, err := el.Find(scraper.Class(class))
	if err != nil {
		if errors.Is(err, scraper.ErrNotFound) {
			return "", &scraper.ExtractionError{Kind: scraper.ErrMissingField, Selector: class, Err: err}
		}
		return "", err
	}
	text, err := field.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", class, err)
	}
	return strings.TrimSpace(text), nil
}

// wait applies the bounded element wait, reporting expiry as an
// ExtractionError of kind ErrTimeout.
func (c *Client) wait(ctx context.Context, url string, cond scraper.Condition) error {
	err := c.driver.WaitFor(ctx, cond, c.timeout)
	if err == nil {
		return nil
	}
	if errors.Is(err, scraper.ErrTimeout) {
		return &scraper.ExtractionError{Kind: scraper.ErrTimeout, URL: url, Selector: cond.Name, Err: err}
	}
	return err
}

// SearchArtist collects the tracks nts search lists for artist.
func (c *Client) SearchArtist(ctx context.Context, artist string) (*tracks.Set, error) {
	artist = strings.ToLower(artist)
	url := SearchURL(artist)
	c.log.WithFields(logrus.Fields{"artist": artist, "url": url}).Info("searching tracks")
	return c.Extract(ctx, url, SearchLayout, tracks.ArtistFilter(artist))
}

// ScrapeEpisode collects the tracklist of one episode.
func (c *Client) ScrapeEpisode(ctx context.Context, url string) (*tracks.Set, error) {
	c.log.WithField("url", url).Info("scraping episode")
	return c.Extract(ctx, url, EpisodeLayout, "")
}

// CrawlShow loads every episode of a show and unions their tracklists.
func (c *Client) CrawlShow(ctx context.Context, showURL string) (*tracks.Set, error) {
	c.log.WithField("url", showURL).Info("crawling show")
	if err := c.driver.Navigate(ctx, showURL); err != nil {
		return nil, err
	}
	if err := c.wait(ctx, showURL, scraper.Present(scraper.Class(ShowLinkClass))); err != nil {
		return nil, err
	}

	if _, err := c.ExhaustScroll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load all episodes of %s: %w", showURL, err)
	}

	links, err := c.EpisodeLinks(ctx, showURL)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"url": showURL, "episodes": len(links)}).Info("found episodes")

	all := tracks.NewSet()
	for i, link := range links {
		c.log.WithFields(logrus.Fields{"episode": link, "n": i + 1, "of": len(links)}).Info("scraping episode")
		set, err := c.Extract(ctx, link, EpisodeLayout, "")
		if err != nil {
			return nil, fmt.Errorf("failed to scrape episode %d of %d: %w", i+1, len(links), err)
		}
		all.Union(set)
	}
	return all, nil
}

// EpisodeLinks returns the absolute tracklist links on the loaded show page,
// in page order, each at most once.
func (c *Client) EpisodeLinks(ctx context.Context, showURL string) ([]string, error) {
	elements, err := c.driver.FindAll(ctx, scraper.Class(ShowLinkClass), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find episode links on %s: %w", showURL, err)
	}

	seen := make(map[string]bool, len(elements))
	links := make([]string, 0, len(elements))
	for _, el := range elements {
		href, ok, err := el.Attribute("href")
		if err != nil {
			return nil, fmt.Errorf("failed to read episode link: %w", err)
		}
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		link, err := resolve(showURL, href)
		if err != nil {
			c.log.WithField("href", href).Warn("skipping unparsable episode link")
			continue
		}
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
