package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bokdata/isbn-scraper/internal/browser"
	"github.com/bokdata/isbn-scraper/internal/models"
	"github.com/bokdata/isbn-scraper/internal/parser"
)

// Service orchestrates one scrape: each registered site is rendered and
// extracted in turn, then the per-site results are aggregated into a
// BookRecord.
type Service struct {
	renderer       Renderer
	sites          []parser.Site
	logger         *slog.Logger
	consentTimeout time.Duration
	readyTimeout   time.Duration
}

type Option func(*Service)

// WithWaits overrides the bounded consent and readiness waits passed to
// the renderer.
func WithWaits(consent, ready time.Duration) Option {
	return func(s *Service) {
		s.consentTimeout = consent
		s.readyTimeout = ready
	}
}

func NewService(renderer Renderer, sites []parser.Site, opts ...Option) *Service {
	s := &Service{
		renderer:       renderer,
		sites:          sites,
		logger:         slog.Default().With("component", "scraper"),
		consentTimeout: 3 * time.Second,
		readyTimeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches the given ISBN across every registered site and returns
// the aggregated record. The record always contains one SITES entry per
// registered site, sentinel-filled where a site failed.
func (s *Service) Scrape(ctx context.Context, isbn string) (*models.BookRecord, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, ErrMissingISBN
	}

	record := models.NewBookRecord(isbn)
	ordered := make([]models.SiteResult, 0, len(s.sites))

	for _, site := range s.sites {
		result := s.scrapeSite(ctx, site, isbn)
		record.Sites[site.Name()] = result
		ordered = append(ordered, result)
	}

	record.Title, record.Authors = aggregate(ordered)
	record.Stamp(time.Now())

	return record, nil
}

func (s *Service) scrapeSite(ctx context.Context, site parser.Site, isbn string) models.SiteResult {
	searchURL := site.SearchURL(isbn)
	s.logger.Info("scraping site", "site", site.Name(), "isbn", isbn, "url", searchURL)

	html, err := s.renderer.Render(ctx, browser.RenderRequest{
		URL:             searchURL,
		ConsentSelector: site.ConsentSelector(),
		ReadySelector:   site.ReadySelector(),
		ConsentTimeout:  s.consentTimeout,
		ReadyTimeout:    s.readyTimeout,
	})
	if err != nil {
		s.logger.Warn("render failed, recording empty result",
			"site", site.Name(), "isbn", isbn, "error", err)
		return models.EmptySiteResult()
	}

	return site.Extract(html, isbn)
}
