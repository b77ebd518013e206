package tracks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistFilter_Keep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter ArtistFilter
		track  Track
		want   bool
	}{
		{
			name:   "empty filter keeps everything",
			filter: "",
			track:  Track{Artist: "someone else", Title: "anything"},
			want:   true,
		},
		{
			name:   "artist text contains target",
			filter: "young thug",
			track:  Track{Artist: "earthgang, young thug feat. young thug", Title: "young thug (2)"},
			want:   true,
		},
		{
			name:   "artist match wins even without feat anywhere",
			filter: "young thug",
			track:  Track{Artist: "young thug", Title: "best friend"},
			want:   true,
		},
		{
			name:   "featured in title",
			filter: "young thug",
			track:  Track{Artist: "future", Title: "relationship (feat. young thug)"},
			want:   true,
		},
		{
			name:   "title contains target and feat marker elsewhere",
			filter: "young thug",
			track:  Track{Artist: "earthgang", Title: "young thug (2) feat. someone"},
			want:   true,
		},
		{
			name:   "target names a featured artist",
			filter: "feat. young thug",
			track:  Track{Artist: "unrelated", Title: "unrelated"},
			want:   true,
		},
		{
			name:   "title contains target without feat marker",
			filter: "young thug",
			track:  Track{Artist: "earthgang", Title: "young thug (2)"},
			want:   false,
		},
		{
			name:   "title has feat marker but not target",
			filter: "young thug",
			track:  Track{Artist: "future", Title: "mask off (feat. kendrick lamar)"},
			want:   false,
		},
		{
			name:   "no relation at all",
			filter: "young thug",
			track:  Track{Artist: "burial", Title: "archangel"},
			want:   false,
		},
		{
			name:   "match is case sensitive",
			filter: "young thug",
			track:  Track{Artist: "Young Thug", Title: "x"},
			want:   false,
		},
	}

	for i := range tests {
		tt := &tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Keep(tt.track))
		})
	}
}

func TestSet_Deduplicates(t *testing.T) {
	t.Parallel()

	s := NewSet()
	require.True(t, s.Add(Track{Artist: "dj jayhood", Title: "ass on the floor"}))
	require.False(t, s.Add(Track{Artist: "dj jayhood", Title: "ass on the floor"}))
	require.True(t, s.Add(Track{Artist: "dj jayhood", Title: "ass on the floor (edit)"}))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(Track{Artist: "dj jayhood", Title: "ass on the floor"}))
}

func TestSet_UnionNeverExceedsSum(t *testing.T) {
	t.Parallel()

	a := NewSet(Track{"a", "1"}, Track{"b", "2"})
	b := NewSet(Track{"b", "2"}, Track{"c", "3"})
	sum := a.Len() + b.Len()

	a.Union(b)
	a.Union(nil)

	assert.Equal(t, 3, a.Len())
	assert.LessOrEqual(t, a.Len(), sum)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	s := NewSet(
		Track{Artist: "earthgang, young thug feat. young thug", Title: "young thug (2)"},
		Track{Artist: "burial", Title: "archangel"},
	)

	got := Format(s)
	assert.Equal(t, "burial - archangel\nearthgang, young thug feat. young thug - young thug (2)", got)
	assert.Equal(t, "", Format(NewSet()))
	assert.True(t, strings.HasSuffix(Header, "\n\n"))
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	a, b := Identity("artist", "title")
	assert.Equal(t, "artist", a)
	assert.Equal(t, "title", b)
}
