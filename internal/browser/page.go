package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ntstracks/internal/scraper"

	"github.com/go-rod/rod"
)

// Page drives a single rod page through the scraper.Driver interface.
type Page struct {
	page       *rod.Page
	navTimeout time.Duration
}

// NewPage wraps p. navTimeout bounds each Navigate, 0 leaves it unbounded.
func NewPage(p *rod.Page, navTimeout time.Duration) *Page {
	return &Page{page: p, navTimeout: navTimeout}
}

func (p *Page) bind(ctx context.Context) *rod.Page {
	return p.page.Context(ctx)
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.bind(ctx)
	if p.navTimeout > 0 {
		page = page.Timeout(p.navTimeout)
	}
	if err := page.Navigate(url); err != nil {
		return &scraper.ExtractionError{Kind: scraper.ErrNavigation, URL: url, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return &scraper.ExtractionError{Kind: scraper.ErrNavigation, URL: url, Err: fmt.Errorf("failed to wait for page load: %w", err)}
	}
	return nil
}

func (p *Page) WaitFor(ctx context.Context, cond scraper.Condition, timeout time.Duration) error {
	return scraper.Poll(ctx, p, cond, timeout, scraper.PollInterval)
}

// FindAll queries without waiting; rod's Elements returns what is in the DOM
// right now.
func (p *Page) FindAll(ctx context.Context, selector string, scope scraper.Element) ([]scraper.Element, error) {
	var (
		found rod.Elements
		err   error
	)
	if scope != nil {
		el, ok := scope.(*element)
		if !ok {
			return nil, fmt.Errorf("scope %T does not belong to this driver", scope)
		}
		found, err = el.el.Context(ctx).Elements(selector)
	} else {
		found, err = p.bind(ctx).Elements(selector)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	out := make([]scraper.Element, 0, len(found))
	for _, el := range found {
		out = append(out, &element{el: el})
	}
	return out, nil
}

func (p *Page) ScrollHeight(ctx context.Context) (int, error) {
	res, err := p.bind(ctx).Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, fmt.Errorf("failed to measure page height: %w", err)
	}
	return res.Value.Int(), nil
}

func (p *Page) ScrollToBottom(ctx context.Context) error {
	if _, err := p.bind(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	return nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

type element struct {
	el *rod.Element
}

func (e *element) Text() (string, error) {
	return e.el.Text()
}

func (e *element) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (e *element) Find(selector string) (scraper.Element, error) {
	found, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	if found.Empty() {
		return nil, fmt.Errorf("%w: %s", scraper.ErrNotFound, selector)
	}
	return &element{el: found.First()}, nil
}

func (e *element) Interactable() (bool, error) {
	visible, err := e.el.Visible()
	if err != nil {
		var notFound *rod.ElementNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return visible, nil
}
