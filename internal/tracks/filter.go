package tracks

import "strings"

const featMarker = "feat."

// ArtistFilter keeps tracks that plausibly belong to the named artist. The
// empty filter keeps everything.
//
// A track is dropped only when all of these hold:
//   - the target is not part of the artist text
//   - the target itself does not contain "feat."
//   - the title does not contain both "feat." and the target
//
// TODO: match featured artists by parsing the "feat." list instead of
// plain substrings.
type ArtistFilter string

// Keep reports whether t passes the filter.
func (f ArtistFilter) Keep(t Track) bool {
	target := string(f)
	if target == "" {
		return true
	}
	if strings.Contains(t.Artist, target) {
		return true
	}
	if strings.Contains(target, featMarker) {
		return true
	}
	return strings.Contains(t.Title, featMarker) && strings.Contains(t.Title, target)
}
