package scraper

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string, opts Options) (Content, error)
}

type Content interface {
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

type Options struct {
	Open          OpenFunc      // acquires the page session for one command
	Timeout       time.Duration // bound on waiting for required markup
	ScrollDelay   time.Duration // pause after each scroll before re-measuring
	MaxScrolls    int           // 0 means no cap
	ScrollBudget  time.Duration // 0 means no cap
	SkipMalformed bool          // skip containers missing a field instead of failing
	Logger        logrus.FieldLogger
}

// Log returns the configured logger, or a discarding one.
func (o Options) Log() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
