// Package fetch provides the page-fetching collaborators behind
// domain.Fetcher: a Rod-driven Chrome session for real runs and a
// synthetic source for offline ones.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/r-anthony-graves/taskWolf/internal/domain"
	"golang.org/x/time/rate"
)

// Config configures a browser session. Values are filled once in the
// CLI and passed in; nothing here mutates after Launch.
type Config struct {
	// BaseURL is the start of the source. Next-page tokens are resolved
	// relative to it.
	BaseURL string

	// Headless disables the visible browser window. Default: true.
	Headless bool

	// ReadySelector is the CSS selector whose appearance marks the page
	// content as settled. Waiting for it is best-effort.
	ReadySelector string

	// SettleTimeout bounds the readiness wait. Default: 10s.
	SettleTimeout time.Duration

	// Delay is the politeness interval between page loads. Default: 500ms.
	Delay time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.SettleTimeout <= 0 {
		c.SettleTimeout = 10 * time.Second
	}
	if c.Delay <= 0 {
		c.Delay = 500 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Session owns one Chrome instance and one tab for the lifetime of a
// run. Close must run on every exit path.
type Session struct {
	cfg     Config
	base    *url.URL
	lnch    *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
	limiter *rate.Limiter
}

// Launch starts Chrome, connects via Rod, and opens a stealth tab.
func Launch(cfg Config) (*Session, error) {
	cfg.defaults()

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("browser: base url %q: %w", cfg.BaseURL, err)
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled")

	wsURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	cfg.Logger.Info("browser: launched", "headless", cfg.Headless, "base", cfg.BaseURL)

	return &Session{
		cfg:     cfg,
		base:    base,
		lnch:    l,
		browser: b,
		page:    page,
		limiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
	}, nil
}

// Fetch navigates to the page the token points at and captures its
// content. Navigation failure is fatal; a readiness timeout is not.
func (s *Session) Fetch(ctx context.Context, token string) (domain.PageContent, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.PageContent{}, err
	}

	target := s.resolve(token)
	if err := s.page.Context(ctx).Navigate(target); err != nil {
		return domain.PageContent{}, fmt.Errorf("browser: navigate %s: %w", target, err)
	}
	if err := s.page.Context(ctx).WaitLoad(); err != nil {
		s.cfg.Logger.Warn("browser: wait load", "url", target, "err", err)
	}

	return s.capture(ctx)
}

// Reload re-renders the current page in place.
func (s *Session) Reload(ctx context.Context) (domain.PageContent, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.PageContent{}, err
	}

	if err := s.page.Context(ctx).Reload(); err != nil {
		return domain.PageContent{}, fmt.Errorf("browser: reload: %w", err)
	}
	if err := s.page.Context(ctx).WaitLoad(); err != nil {
		s.cfg.Logger.Warn("browser: wait load after reload", "err", err)
	}

	return s.capture(ctx)
}

// Close shuts the tab, the browser, and the launched Chrome process.
func (s *Session) Close() error {
	if s.page != nil {
		s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
	return nil
}

// capture waits for the ready selector (best-effort) and serialises the
// page HTML. Serialisation failure is fatal to the run.
func (s *Session) capture(ctx context.Context) (domain.PageContent, error) {
	ready := true
	if s.cfg.ReadySelector != "" {
		wctx, cancel := context.WithTimeout(ctx, s.cfg.SettleTimeout)
		if _, err := s.page.Context(wctx).Element(s.cfg.ReadySelector); err != nil {
			ready = false
		}
		cancel()
	}

	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return domain.PageContent{}, fmt.Errorf("browser: capture content: %w", err)
	}
	return domain.PageContent{HTML: html, Ready: ready}, nil
}

func (s *Session) resolve(token string) string {
	if token == "" {
		return s.base.String()
	}
	ref, err := url.Parse(token)
	if err != nil {
		// a malformed href is still worth attempting as-is
		return token
	}
	return s.base.ResolveReference(ref).String()
}
