package scraper

import (
	"context"
	"strings"
	"time"
)

// Driver is the page-level capability the nts scrapers need from a browser.
// One Driver drives one page; calls are sequential.
type Driver interface {
	// Navigate loads url and returns once the document has loaded.
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks until cond holds or timeout passes. Expiry yields an
	// error matching ErrTimeout.
	WaitFor(ctx context.Context, cond Condition, timeout time.Duration) error
	// FindAll returns every element matching the CSS selector, below scope
	// when scope is non-nil. No match is not an error.
	FindAll(ctx context.Context, selector string, scope Element) ([]Element, error)
	// ScrollHeight reports document.body.scrollHeight.
	ScrollHeight(ctx context.Context) (int, error)
	// ScrollToBottom scrolls the window to the end of the document.
	ScrollToBottom(ctx context.Context) error
}

// Element is one node of the loaded document.
type Element interface {
	Text() (string, error)
	// Attribute returns the attribute value and whether it was set.
	Attribute(name string) (string, bool, error)
	// Find returns the first descendant matching selector, or ErrNotFound.
	Find(selector string) (Element, error)
	// Interactable reports whether the element is rendered and visible.
	Interactable() (bool, error)
}

// Session is a Driver holding a browser resource that must be released.
type Session interface {
	Driver
	Close() error
}

// OpenFunc acquires a new Session.
type OpenFunc func(ctx context.Context) (Session, error)

// Selectors names the markup classes of one page type: the container
// wrapping a track, and the artist and title nodes inside it.
type Selectors struct {
	Container string
	Artist    string
	Track     string
}

// Class turns a bare class name into a CSS class selector.
func Class(name string) string {
	if strings.HasPrefix(name, ".") {
		return name
	}
	return "." + name
}
