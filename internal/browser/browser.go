package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Options configures the browser instance a render call launches.
type Options struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		Timeout:        30 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		AcceptLanguage: "nb-NO,nb;q=0.9,en;q=0.8",
		TimezoneID:     "Europe/Oslo",
		Locale:         "nb-NO",
	}
}

// RenderRequest describes one page render. Consent dismissal and the ready
// wait are both optional and bounded; a timed-out wait is not an error.
type RenderRequest struct {
	URL             string
	ConsentSelector string
	ReadySelector   string
	ConsentTimeout  time.Duration
	ReadyTimeout    time.Duration
}

// Renderer turns a URL into fully rendered HTML. Every Render call owns an
// exclusive browser process for its duration and releases it before
// returning, even on failure.
type Renderer struct {
	opts   *Options
	logger *slog.Logger
}

func NewRenderer(opts *Options) *Renderer {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Renderer{
		opts:   opts,
		logger: slog.Default().With("component", "browser"),
	}
}

func (r *Renderer) Render(ctx context.Context, req RenderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("failed to start playwright: %w", err)
	}
	defer pw.Stop()

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &r.opts.Headless,
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}
	defer b.Close()

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:  &r.opts.UserAgent,
		Locale:     &r.opts.Locale,
		TimezoneId: &r.opts.TimezoneID,
		Viewport: &playwright.Size{
			Width:  r.opts.ViewportWidth,
			Height: r.opts.ViewportHeight,
		},
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": r.opts.AcceptLanguage,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create browser context: %w", err)
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(r.opts.Timeout.Milliseconds()))

	if _, err := page.Goto(req.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(r.opts.Timeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", req.URL, err)
	}

	r.dismissConsent(page, req)
	r.awaitReady(page, req)

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	return html, nil
}

// dismissConsent clicks the cookie-consent button if it shows up within the
// bounded wait. Sites render fine without the click, so a miss is only
// logged.
func (r *Renderer) dismissConsent(page playwright.Page, req RenderRequest) {
	if req.ConsentSelector == "" {
		return
	}

	button := page.Locator(req.ConsentSelector).First()
	if err := button.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(req.ConsentTimeout.Milliseconds())),
	}); err != nil {
		r.logger.Debug("no consent dialog", "url", req.URL)
		return
	}

	if err := button.Click(); err != nil {
		r.logger.Debug("failed to dismiss consent dialog", "url", req.URL, "error", err)
	}
}

// awaitReady waits for the site's readiness marker. A timeout means the
// search likely has no results; extraction handles that downstream.
func (r *Renderer) awaitReady(page playwright.Page, req RenderRequest) {
	if req.ReadySelector == "" {
		return
	}

	if err := page.Locator(req.ReadySelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(req.ReadyTimeout.Milliseconds())),
	}); err != nil {
		r.logger.Debug("ready selector did not appear", "url", req.URL, "selector", req.ReadySelector)
	}
}
