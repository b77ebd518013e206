// Package static implements scraper.Driver over server-rendered HTML with
// goquery. It never runs JavaScript, so only content in the initial document
// is visible to it.
package static

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ntstracks/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

var errNoDocument = errors.New("no document loaded")

// Driver holds the most recently navigated document.
type Driver struct {
	fetcher Fetcher
	doc     *goquery.Document
	url     string
}

// New returns a Driver that loads documents through f.
func New(f Fetcher) *Driver {
	return &Driver{fetcher: f}
}

// Open returns an OpenFunc yielding a fresh Driver per session.
func Open(f Fetcher) scraper.OpenFunc {
	return func(ctx context.Context) (scraper.Session, error) {
		return New(f), nil
	}
}

// URL returns the address of the loaded document.
func (d *Driver) URL() string {
	return d.url
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	body, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		return &scraper.ExtractionError{Kind: scraper.ErrNavigation, URL: url, Err: err}
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return &scraper.ExtractionError{Kind: scraper.ErrNavigation, URL: url, Err: fmt.Errorf("failed to parse document: %w", err)}
	}
	d.doc = doc
	d.url = url
	return nil
}

// WaitFor checks cond once. A static document never changes, so waiting out
// the timeout could not change the answer.
func (d *Driver) WaitFor(ctx context.Context, cond scraper.Condition, timeout time.Duration) error {
	ok, err := cond.Check(ctx, d)
	if err != nil && !errors.Is(err, scraper.ErrNotFound) {
		return fmt.Errorf("checking %s: %w", cond.Name, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s after %s", scraper.ErrTimeout, cond.Name, timeout)
	}
	return nil
}

func (d *Driver) FindAll(ctx context.Context, selector string, scope scraper.Element) ([]scraper.Element, error) {
	if d.doc == nil {
		return nil, errNoDocument
	}
	var found *goquery.Selection
	if scope != nil {
		el, ok := scope.(*element)
		if !ok {
			return nil, fmt.Errorf("scope %T does not belong to this driver", scope)
		}
		found = el.sel.Find(selector)
	} else {
		found = d.doc.Find(selector)
	}
	out := make([]scraper.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &element{sel: s})
	})
	return out, nil
}

// ScrollHeight reports the number of nodes in the document. It is stable for
// a given document, which ends the scroll loop after one cycle.
func (d *Driver) ScrollHeight(ctx context.Context) (int, error) {
	if d.doc == nil {
		return 0, errNoDocument
	}
	return d.doc.Find("*").Length(), nil
}

func (d *Driver) ScrollToBottom(ctx context.Context) error {
	if d.doc == nil {
		return errNoDocument
	}
	return nil
}

func (d *Driver) Close() error {
	d.doc = nil
	return nil
}

type element struct {
	sel *goquery.Selection
}

// Text returns the element text with runs of whitespace collapsed, which is
// how a browser renders it.
func (e *element) Text() (string, error) {
	return strings.Join(strings.Fields(e.sel.Text()), " "), nil
}

func (e *element) Attribute(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

func (e *element) Find(selector string) (scraper.Element, error) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", scraper.ErrNotFound, selector)
	}
	return &element{sel: found}, nil
}

// Interactable reports false when the element or an ancestor is hidden with
// the hidden attribute or an inline style.
func (e *element) Interactable() (bool, error) {
	for n := e.sel; n.Length() > 0; n = n.Parent() {
		if _, ok := n.Attr("hidden"); ok {
			return false, nil
		}
		style, _ := n.Attr("style")
		style = strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false, nil
		}
	}
	return true, nil
}
