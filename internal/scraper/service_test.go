package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/bokdata/isbn-scraper/internal/browser"
	"github.com/bokdata/isbn-scraper/internal/models"
	"github.com/bokdata/isbn-scraper/internal/parser"
)

// stubSite returns a fixed result regardless of the rendered HTML.
type stubSite struct {
	name   string
	result models.SiteResult
}

func (s stubSite) Name() string { return s.name }

func (s stubSite) SearchURL(isbn string) string {
	return "https://" + s.name + "/search?q=" + isbn
}

func (s stubSite) ConsentSelector() string { return "" }

func (s stubSite) ReadySelector() string { return "" }

func (s stubSite) Extract(_, _ string) models.SiteResult { return s.result }

// fakeRenderer fails for URLs containing any of the failing hosts.
type fakeRenderer struct {
	failing []string
	calls   []string
}

func (f *fakeRenderer) Render(_ context.Context, req browser.RenderRequest) (string, error) {
	f.calls = append(f.calls, req.URL)
	for _, host := range f.failing {
		if strings.Contains(req.URL, host) {
			return "", errors.New("navigation timeout")
		}
	}
	return "<html></html>", nil
}

func TestScrapeMissingISBN(t *testing.T) {
	service := NewService(&fakeRenderer{}, nil)

	for _, isbn := range []string{"", "   "} {
		_, err := service.Scrape(context.Background(), isbn)
		assert.ErrorIs(t, err, ErrMissingISBN)
	}
}

func TestScrapeSiteFailureIsolated(t *testing.T) {
	found := models.SiteResult{
		Title:      "X",
		Authors:    "Jane Doe",
		Price:      349,
		ProductURL: "https://site-b.example/produkt/x",
	}
	sites := []parser.Site{
		stubSite{name: "site-a.example", result: models.SiteResult{Title: "never reached"}},
		stubSite{name: "site-b.example", result: found},
	}
	renderer := &fakeRenderer{failing: []string{"site-a.example"}}

	service := NewService(renderer, sites)
	record, err := service.Scrape(context.Background(), "9788203364881")
	require.NoError(t, err)

	// The failing site still gets an entry, all sentinel.
	assert.Equal(t, models.EmptySiteResult(), record.Sites["site-a.example"])
	assert.Equal(t, found, record.Sites["site-b.example"])
	assert.Equal(t, "X", record.Title)
	assert.Equal(t, "Jane Doe", record.Authors)

	// Both sites were attempted despite the first failing.
	assert.Len(t, renderer.calls, 2)
}

func TestScrapeAllSitesFail(t *testing.T) {
	sites := []parser.Site{
		stubSite{name: "site-a.example"},
		stubSite{name: "site-b.example"},
	}
	renderer := &fakeRenderer{failing: []string{"site-a.example", "site-b.example"}}

	service := NewService(renderer, sites)
	record, err := service.Scrape(context.Background(), "9788203364881")
	require.NoError(t, err)

	assert.Equal(t, "", record.Title)
	assert.Equal(t, "", record.Authors)
	assert.Len(t, record.Sites, 2)
	for _, result := range record.Sites {
		assert.Equal(t, models.EmptySiteResult(), result)
	}

	// The record shape is complete even under total failure.
	assert.Equal(t, models.MessageFetched, record.Message)
	_, err = time.Parse(models.TimestampFormat, record.Timestamp)
	assert.NoError(t, err)
}

func TestScrapeRecordShape(t *testing.T) {
	sites := []parser.Site{
		stubSite{name: "ark.no", result: models.SiteResult{
			Title: "Sofies verden", Authors: "Jostein Gaarder", Price: 249, ProductURL: "https://www.ark.no/x",
		}},
	}

	service := NewService(&fakeRenderer{}, sites)
	record, err := service.Scrape(context.Background(), " 9788203364881 ")
	require.NoError(t, err)

	assert.Equal(t, "9788203364881", record.ISBN)
	assert.Equal(t, models.MessageFetched, record.Message)
	assert.Contains(t, record.Sites, "ark.no")
}
