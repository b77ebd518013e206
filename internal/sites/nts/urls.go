package nts

import (
	"fmt"
	"net/url"
	"strings"

	"ntstracks/internal/scraper"
)

// BaseURL is the site root relative links are resolved against.
const BaseURL = "https://www.nts.live"

// ShowLinkClass marks the "Tracklist" link of every episode tile on a show page.
const ShowLinkClass = "nts-grid-v2-item__extra"

// Layout describes where tracks live on one kind of page and what to wait for
// before reading them.
type Layout struct {
	Selectors scraper.Selectors
	Wait      func(selector string) scraper.Condition
}

var (
	// SearchLayout matches the track results of /find.
	SearchLayout = Layout{
		Selectors: scraper.Selectors{
			Container: "search-result-play_track_artist",
			Artist:    "search-result-play__track__artist",
			Track:     "search-result-play__track__title",
		},
		Wait: scraper.Clickable,
	}

	// EpisodeLayout matches the tracklist of an episode page.
	EpisodeLayout = Layout{
		Selectors: scraper.Selectors{
			Container: "track__detail",
			Artist:    "track__artist",
			Track:     "track__title",
		},
		Wait: scraper.Present,
	}
)

// SearchURL builds the track search URL for artist. Only spaces are escaped,
// which is what the site's own search box does.
func SearchURL(artist string) string {
	q := strings.ReplaceAll(strings.ToLower(artist), " ", "%20")
	return BaseURL + "/find?q=" + q + "&type=track"
}

// NormalizeURL accepts absolute URLs, scheme-less hosts and site paths such as
// /shows/umru/episodes/umru-19th-july-2023.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is required")
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
	case strings.HasPrefix(raw, "/"):
		raw = BaseURL + raw
	default:
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", raw)
	}
	return u.String(), nil
}

// resolve makes href absolute relative to base.
func resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return b.ResolveReference(h).String(), nil
}
