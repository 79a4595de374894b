package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/bokdata/isbn-scraper/internal/models"
)

// EventTypeBookScraped is published after every completed scrape.
const EventTypeBookScraped = "BOOK_SCRAPED"

// RedisClient is the subset of the redis client the publisher uses.
type RedisClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
}

// BookScrapedPayload is the event body added to the stream.
type BookScrapedPayload struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Timestamp time.Time          `json:"timestamp"`
	ISBN      string             `json:"isbn"`
	Record    *models.BookRecord `json:"record"`
}

// Publisher emits scraped records to a Redis stream. Publishing is
// best-effort from the scraper's point of view: callers log failures and
// keep going.
type Publisher struct {
	client RedisClient
	stream string
	logger *slog.Logger
}

func NewPublisher(client RedisClient, stream string, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger.With("component", "event_publisher"),
	}
}

func (p *Publisher) PublishBookScraped(ctx context.Context, record *models.BookRecord) error {
	payload := BookScrapedPayload{
		EventID:   uuid.New().String(),
		EventType: EventTypeBookScraped,
		Timestamp: time.Now(),
		ISBN:      record.ISBN,
		Record:    record,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"event_type": payload.EventType,
			"event_id":   payload.EventID,
			"payload":    string(data),
		},
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", p.stream, err)
	}

	p.logger.Info("event published",
		"type", payload.EventType,
		"event_id", payload.EventID,
		"isbn", record.ISBN,
	)

	return nil
}
