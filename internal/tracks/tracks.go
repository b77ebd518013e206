// Package tracks holds the (artist, title) pairs scraped from nts.live pages,
// the set they are collected into, and the rules for filtering and printing
// them.
package tracks

import (
	"sort"
	"strings"
)

// Header precedes the track lines in every text rendering.
const Header = "Artists and tracks:\n\n"

// Track is one artist/title pair as rendered on the page.
type Track struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// String formats the pair as "<artist> - <title>".
func (t Track) String() string {
	return t.Artist + " - " + t.Title
}

// Set is a value-deduplicated collection of tracks. The zero value is not
// usable; create one with NewSet.
type Set struct {
	items map[Track]struct{}
}

// NewSet returns a set holding the given tracks.
func NewSet(ts ...Track) *Set {
	s := &Set{items: make(map[Track]struct{}, len(ts))}
	for _, t := range ts {
		s.Add(t)
	}
	return s
}

// Add inserts t. It reports whether t was new.
func (s *Set) Add(t Track) bool {
	if _, ok := s.items[t]; ok {
		return false
	}
	s.items[t] = struct{}{}
	return true
}

// Contains reports whether t is in the set.
func (s *Set) Contains(t Track) bool {
	_, ok := s.items[t]
	return ok
}

// Union adds every track of other to s.
func (s *Set) Union(other *Set) {
	if other == nil {
		return
	}
	for t := range other.items {
		s.items[t] = struct{}{}
	}
}

func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the tracks ordered by artist, then title.
func (s *Set) Sorted() []Track {
	out := make([]Track, 0, len(s.items))
	for t := range s.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Artist != out[j].Artist {
			return out[i].Artist < out[j].Artist
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Lines renders every track of s as "<artist> - <title>".
func Lines(s *Set) []string {
	sorted := s.Sorted()
	lines := make([]string, 0, len(sorted))
	for _, t := range sorted {
		lines = append(lines, t.String())
	}
	return lines
}

// Format joins Lines with newlines.
func Format(s *Set) string {
	return strings.Join(Lines(s), "\n")
}

// Normalizer rewrites an artist/title pair after it is lowercased and before
// it is filtered.
type Normalizer func(artist, title string) (string, string)

// Identity returns the pair unchanged.
func Identity(artist, title string) (string, string) {
	return artist, title
}
