package scraper

import (
	"context"
	"errors"

	"github.com/bokdata/isbn-scraper/internal/browser"
)

var (
	// ErrMissingISBN is the only error Scrape surfaces to callers.
	// Per-site failures never do; they degrade to sentinel results.
	ErrMissingISBN = errors.New("missing ISBN")
)

// Renderer is the browser capability the orchestrator drives. A render
// failure for one site is isolated and must not abort the other sites.
type Renderer interface {
	Render(ctx context.Context, req browser.RenderRequest) (string, error)
}
