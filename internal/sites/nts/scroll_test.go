package nts

import (
	"context"
	"errors"
	"testing"
	"time"

	"ntstracks/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heightDriver reports a scripted sequence of page heights. Once the script
// runs out it repeats the last value.
type heightDriver struct {
	heights  []int
	measured int
	scrolls  int
	failAt   int // scroll number that fails, 0 for never
}

func (d *heightDriver) Navigate(context.Context, string) error { return nil }

func (d *heightDriver) WaitFor(context.Context, scraper.Condition, time.Duration) error { return nil }

func (d *heightDriver) FindAll(context.Context, string, scraper.Element) ([]scraper.Element, error) {
	return nil, nil
}

func (d *heightDriver) ScrollHeight(context.Context) (int, error) {
	i := d.measured
	if i >= len(d.heights) {
		i = len(d.heights) - 1
	}
	d.measured++
	return d.heights[i], nil
}

func (d *heightDriver) ScrollToBottom(context.Context) error {
	d.scrolls++
	if d.failAt > 0 && d.scrolls == d.failAt {
		return errors.New("page crashed")
	}
	return nil
}

// growingDriver never stops growing.
type growingDriver struct {
	heightDriver
}

func (d *growingDriver) ScrollHeight(context.Context) (int, error) {
	d.measured++
	return d.measured * 100, nil
}

func newScrollClient(d scraper.Driver, opts scraper.Options) (*Client, *[]time.Duration) {
	c := NewClient(d, opts)
	var slept []time.Duration
	c.sleep = func(_ context.Context, delay time.Duration) error {
		slept = append(slept, delay)
		return nil
	}
	return c, &slept
}

func TestExhaustScroll_StopsWhenHeightIsStable(t *testing.T) {
	t.Parallel()

	d := &heightDriver{heights: []int{100, 250, 400, 400}}
	c, slept := newScrollClient(d, scraper.Options{ScrollDelay: 2 * time.Second})

	res, err := c.ExhaustScroll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ScrollResult{Height: 400, Cycles: 3}, res)
	assert.Equal(t, 3, d.scrolls)
	assert.Equal(t, 4, d.measured)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, *slept)
}

func TestExhaustScroll_SingleCycleOnStaticPage(t *testing.T) {
	t.Parallel()

	d := &heightDriver{heights: []int{800}}
	c, _ := newScrollClient(d, scraper.Options{})

	res, err := c.ExhaustScroll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScrollResult{Height: 800, Cycles: 1}, res)
}

func TestExhaustScroll_MaxScrolls(t *testing.T) {
	t.Parallel()

	d := &growingDriver{}
	c, _ := newScrollClient(d, scraper.Options{MaxScrolls: 5})

	res, err := c.ExhaustScroll(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Capped)
	assert.Equal(t, 5, res.Cycles)
	assert.Equal(t, 600, res.Height)
	assert.Equal(t, 5, d.scrolls)
}

func TestExhaustScroll_Budget(t *testing.T) {
	t.Parallel()

	d := &growingDriver{}
	c, _ := newScrollClient(d, scraper.Options{ScrollBudget: time.Minute})

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		cur := now
		now = now.Add(20 * time.Second)
		return cur
	}

	res, err := c.ExhaustScroll(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Capped)
	assert.Equal(t, 2, res.Cycles)
}

func TestExhaustScroll_ScrollError(t *testing.T) {
	t.Parallel()

	d := &heightDriver{heights: []int{100, 200, 300}, failAt: 2}
	c, _ := newScrollClient(d, scraper.Options{})

	res, err := c.ExhaustScroll(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, res.Cycles)
}

func TestExhaustScroll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &heightDriver{heights: []int{100, 200}}
	c := NewClient(d, scraper.Options{ScrollDelay: time.Hour})

	_, err := c.ExhaustScroll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
