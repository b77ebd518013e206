package nts

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ScrollResult summarises one run of ExhaustScroll.
type ScrollResult struct {
	Height int  // last measured document height
	Cycles int  // scroll+measure rounds performed
	Capped bool // stopped by MaxScrolls or ScrollBudget rather than by a stable height
}

// ExhaustScroll scrolls the loaded page to the bottom until its height stops
// growing, so every lazily loaded episode tile is in the DOM. One round with
// no growth ends the loop. A round slower than the scroll delay therefore
// looks like the end of the list.
func (c *Client) ExhaustScroll(ctx context.Context) (ScrollResult, error) {
	height, err := c.driver.ScrollHeight(ctx)
	if err != nil {
		return ScrollResult{}, err
	}

	res := ScrollResult{Height: height}
	start := c.now()
	for {
		if c.maxScrolls > 0 && res.Cycles >= c.maxScrolls {
			res.Capped = true
			c.log.WithFields(logrus.Fields{"cycles": res.Cycles, "height": res.Height}).
				Warn("scroll limit reached, continuing with loaded episodes")
			return res, nil
		}
		if c.scrollBudget > 0 && c.now().Sub(start) >= c.scrollBudget {
			res.Capped = true
			c.log.WithFields(logrus.Fields{"cycles": res.Cycles, "height": res.Height, "budget": c.scrollBudget}).
				Warn("scroll budget spent, continuing with loaded episodes")
			return res, nil
		}

		if err := c.driver.ScrollToBottom(ctx); err != nil {
			return res, err
		}
		if err := c.sleep(ctx, c.scrollDelay); err != nil {
			return res, fmt.Errorf("interrupted while waiting for content: %w", err)
		}
		next, err := c.driver.ScrollHeight(ctx)
		if err != nil {
			return res, err
		}
		res.Cycles++
		c.log.WithFields(logrus.Fields{"cycle": res.Cycles, "height": next}).Debug("scrolled")

		if next == res.Height {
			return res, nil
		}
		res.Height = next
	}
}
