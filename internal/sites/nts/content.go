package nts

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"ntstracks/internal/tracks"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// TracklistContent holds the tracks one command collected and implements
// scraper.Content.
type TracklistContent struct {
	title  string
	source string
	tracks []tracks.Track
	body   string
}

// NewTracklistContent snapshots set. title describes what was scraped, source
// is the page (or search) URL.
func NewTracklistContent(title, source string, set *tracks.Set) *TracklistContent {
	return &TracklistContent{
		title:  title,
		source: source,
		tracks: set.Sorted(),
		body:   tracks.Format(set),
	}
}

// Body returns the "<artist> - <title>" lines without the header.
func (c *TracklistContent) Body() string {
	return c.body
}

// Tracks returns the collected tracks in output order.
func (c *TracklistContent) Tracks() []tracks.Track {
	return c.tracks
}

func (c *TracklistContent) ToText() (string, error) {
	return tracks.Header + c.body, nil
}

func (c *TracklistContent) ToHTML() (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(c.title)))
	if c.source != "" {
		sb.WriteString(fmt.Sprintf("<p><a href=%q>%s</a></p>\n", c.source, html.EscapeString(c.source)))
	}
	sb.WriteString("<ul>\n")
	for _, t := range c.tracks {
		sb.WriteString("  <li>" + html.EscapeString(t.String()) + "</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String(), nil
}

func (c *TracklistContent) ToMarkdown() (string, error) {
	h, err := c.ToHTML()
	if err != nil {
		return "", err
	}
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

func (c *TracklistContent) ToJSON() ([]byte, error) {
	type jsonResult struct {
		Title  string         `json:"title"`
		Source string         `json:"source"`
		Count  int            `json:"count"`
		Tracks []tracks.Track `json:"tracks"`
	}
	return json.Marshal(jsonResult{Title: c.title, Source: c.source, Count: len(c.tracks), Tracks: c.tracks})
}

func (c *TracklistContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Artist", "Title"})
	for _, t := range c.tracks {
		_ = w.Write([]string{t.Artist, t.Title})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.String(), nil
}
