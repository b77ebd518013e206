package static_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ntstracks/internal/scraper"
	"ntstracks/internal/static"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodeHTML = `<html><body>
<div class="track__detail">
  <a class="nts-app nts-link" href="/artists/37665-dj-jayhood"><span class="track__artist">DJ Jayhood</span></a>
  <span class="track__artist track__artist--mobile" style="display: none;">DJ Jayhood</span>&nbsp;<br>
  <span class="track__title">Ass On   The Floor</span>
</div>
<div hidden><span class="secret">x</span></div>
</body></html>`

func TestDriver_FindAllAndText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := static.New(static.MapFetcher{"https://nts.test/ep": episodeHTML})
	require.NoError(t, d.Navigate(ctx, "https://nts.test/ep"))
	assert.Equal(t, "https://nts.test/ep", d.URL())

	containers, err := d.FindAll(ctx, ".track__detail", nil)
	require.NoError(t, err)
	require.Len(t, containers, 1)

	artist, err := containers[0].Find(".track__artist")
	require.NoError(t, err)
	text, err := artist.Text()
	require.NoError(t, err)
	assert.Equal(t, "DJ Jayhood", text)

	title, err := containers[0].Find(".track__title")
	require.NoError(t, err)
	text, err = title.Text()
	require.NoError(t, err)
	assert.Equal(t, "Ass On The Floor", text)

	_, err = containers[0].Find(".missing")
	require.ErrorIs(t, err, scraper.ErrNotFound)

	scoped, err := d.FindAll(ctx, ".track__artist", containers[0])
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	link, err := d.FindAll(ctx, "a.nts-link", nil)
	require.NoError(t, err)
	require.Len(t, link, 1)
	href, ok, err := link[0].Attribute("href")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/artists/37665-dj-jayhood", href)
}

func TestDriver_Interactable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := static.New(static.MapFetcher{"u": episodeHTML})
	require.NoError(t, d.Navigate(ctx, "u"))

	tests := []struct {
		selector string
		want     bool
	}{
		{".track__title", true},
		{".track__artist--mobile", false},
		{".secret", false},
	}
	for _, tt := range tests {
		els, err := d.FindAll(ctx, tt.selector, nil)
		require.NoError(t, err)
		require.Len(t, els, 1, tt.selector)
		got, err := els[0].Interactable()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.selector)
	}
}

func TestDriver_WaitFor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := static.New(static.MapFetcher{"u": episodeHTML})
	require.NoError(t, d.Navigate(ctx, "u"))

	require.NoError(t, d.WaitFor(ctx, scraper.Present(".track__detail"), time.Second))
	require.NoError(t, d.WaitFor(ctx, scraper.Clickable(".track__detail"), time.Second))

	err := d.WaitFor(ctx, scraper.Present(".nts-grid-v2-item__extra"), time.Second)
	require.ErrorIs(t, err, scraper.ErrTimeout)

	err = d.WaitFor(ctx, scraper.Clickable(".secret"), time.Second)
	require.ErrorIs(t, err, scraper.ErrTimeout)
}

func TestDriver_ScrollIsStable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := static.New(static.MapFetcher{"u": episodeHTML})

	_, err := d.ScrollHeight(ctx)
	require.Error(t, err)

	require.NoError(t, d.Navigate(ctx, "u"))
	before, err := d.ScrollHeight(ctx)
	require.NoError(t, err)
	require.NoError(t, d.ScrollToBottom(ctx))
	after, err := d.ScrollHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Positive(t, before)

	require.NoError(t, d.Close())
	_, err = d.FindAll(ctx, "div", nil)
	require.Error(t, err)
}

func TestDriver_NavigateFailure(t *testing.T) {
	t.Parallel()

	d := static.New(static.MapFetcher{})
	err := d.Navigate(context.Background(), "https://nts.test/missing")
	require.ErrorIs(t, err, scraper.ErrNavigation)

	var extErr *scraper.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "https://nts.test/missing", extErr.URL)
}

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ep" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, static.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(episodeHTML))
	}))
	defer srv.Close()

	ctx := context.Background()
	d := static.New(static.NewHTTPFetcher(5 * time.Second))
	require.NoError(t, d.Navigate(ctx, srv.URL+"/ep"))
	els, err := d.FindAll(ctx, ".track__detail", nil)
	require.NoError(t, err)
	assert.Len(t, els, 1)

	err = d.Navigate(ctx, srv.URL+"/nope")
	require.ErrorIs(t, err, scraper.ErrNavigation)
}
