package browser

import (
	"context"
	"fmt"
	"time"

	"ntstracks/internal/scraper"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// UserAgent is presented by every page so nts serves the desktop layout.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config controls how Chrome is launched.
type Config struct {
	Headless          bool
	ProxyURL          string
	NoSandbox         bool          // required when running as root in containers
	NavigationTimeout time.Duration // bound on a single page load, 0 for none
}

// Browser wraps a launched Chrome process and its rod connection.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      Config
}

// New launches Chrome and connects to it.
func New(cfg Config) (*Browser, error) {
	l := launcher.New().Headless(cfg.Headless)
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{browser: b, launcher: l, cfg: cfg}, nil
}

// NewPage opens a blank tab.
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: UserAgent})
	return page, nil
}

// Close closes the browser and kills the launched process.
func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}

// Open returns an OpenFunc that launches a browser per session. Closing the
// session closes the page and the browser with it.
func Open(cfg Config) scraper.OpenFunc {
	return func(ctx context.Context) (scraper.Session, error) {
		b, err := New(cfg)
		if err != nil {
			return nil, err
		}
		page, err := b.NewPage()
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
		return &session{Page: NewPage(page, cfg.NavigationTimeout), browser: b}, nil
	}
}

type session struct {
	*Page
	browser *Browser
}

func (s *session) Close() error {
	_ = s.Page.Close()
	return s.browser.Close()
}
