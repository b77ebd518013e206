package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PollInterval is how often Poll re-evaluates its condition.
const PollInterval = 100 * time.Millisecond

// Condition is a predicate over the current page.
type Condition struct {
	Name  string
	Check func(ctx context.Context, d Driver) (bool, error)
}

// Present holds once at least one element matches selector.
func Present(selector string) Condition {
	return Condition{
		Name: "presence of " + selector,
		Check: func(ctx context.Context, d Driver) (bool, error) {
			els, err := d.FindAll(ctx, selector, nil)
			if err != nil {
				return false, err
			}
			return len(els) > 0, nil
		},
	}
}

// Clickable holds once an element matching selector is present and visible.
func Clickable(selector string) Condition {
	return Condition{
		Name: "clickable " + selector,
		Check: func(ctx context.Context, d Driver) (bool, error) {
			els, err := d.FindAll(ctx, selector, nil)
			if err != nil {
				return false, err
			}
			for _, el := range els {
				ok, err := el.Interactable()
				if err != nil {
					// The node may have been detached between lookup and check.
					continue
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

// Poll evaluates cond against d every interval until it holds. It returns an
// error matching ErrTimeout once timeout has passed, or the context error if
// ctx ends first.
func Poll(ctx context.Context, d Driver, cond Condition, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = PollInterval
	}
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond.Check(ctx, d)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("checking %s: %w", cond.Name, err)
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: %s after %s", ErrTimeout, cond.Name, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
