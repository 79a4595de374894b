package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/bokdata/isbn-scraper/internal/models"
	"github.com/bokdata/isbn-scraper/internal/scraper"
)

// BookScraper is the orchestration capability the handlers expose.
type BookScraper interface {
	Scrape(ctx context.Context, isbn string) (*models.BookRecord, error)
}

// RecordStore abstracts the file and postgres record backends.
type RecordStore interface {
	Save(ctx context.Context, record *models.BookRecord) error
	Get(ctx context.Context, isbn string) (*models.BookRecord, error)
}

// EventPublisher announces completed scrapes. May be nil when events are
// disabled.
type EventPublisher interface {
	PublishBookScraped(ctx context.Context, record *models.BookRecord) error
}

type Handlers struct {
	scraper   BookScraper
	store     RecordStore
	publisher EventPublisher
	logger    *slog.Logger
}

func NewHandlers(s BookScraper, store RecordStore, publisher EventPublisher, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper:   s,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// ScrapeBook scrapes all registered sites for the requested ISBN, persists
// the record and returns it.
func (h *Handlers) ScrapeBook(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		h.respondError(w, http.StatusBadRequest, "Missing ISBN parameter")
		return
	}

	record, err := h.scraper.Scrape(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, scraper.ErrMissingISBN) {
			h.respondError(w, http.StatusBadRequest, "Missing ISBN parameter")
			return
		}
		h.logger.Error("scrape failed", "isbn", isbn, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to scrape ISBN")
		return
	}

	if err := h.store.Save(r.Context(), record); err != nil {
		h.logger.Error("failed to persist record", "isbn", isbn, "error", err)
	}

	if h.publisher != nil {
		if err := h.publisher.PublishBookScraped(r.Context(), record); err != nil {
			h.logger.Warn("failed to publish event", "isbn", isbn, "error", err)
		}
	}

	h.respondJSON(w, http.StatusOK, record)
}

// GetRecord returns a previously persisted record.
func (h *Handlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if isbn == "" {
		h.respondError(w, http.StatusBadRequest, "Missing ISBN parameter")
		return
	}

	record, err := h.store.Get(r.Context(), isbn)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "record not found")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
