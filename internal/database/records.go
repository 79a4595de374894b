package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/bokdata/isbn-scraper/internal/models"
)

var ErrRecordNotFound = errors.New("record not found")

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS book_records (
	isbn       TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	scraped_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// RecordRepository stores BookRecords as JSONB documents keyed by ISBN,
// mirroring the one-file-per-ISBN layout of the file store.
type RecordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Init(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createRecordsTable); err != nil {
		return fmt.Errorf("failed to create book_records table: %w", err)
	}
	return nil
}

func (r *RecordRepository) Save(ctx context.Context, record *models.BookRecord) error {
	if record.ISBN == "" {
		return fmt.Errorf("record has no ISBN")
	}

	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO book_records (isbn, document, scraped_at)
		VALUES ($1, $2, now())
		ON CONFLICT (isbn) DO UPDATE SET document = $2, scraped_at = now()`,
		record.ISBN, doc)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}

func (r *RecordRepository) Get(ctx context.Context, isbn string) (*models.BookRecord, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT document FROM book_records WHERE isbn = $1`, isbn).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	var record models.BookRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", isbn, err)
	}

	return &record, nil
}

func (r *RecordRepository) ListISBNs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT isbn FROM book_records ORDER BY isbn`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var isbns []string
	for rows.Next() {
		var isbn string
		if err := rows.Scan(&isbn); err != nil {
			return nil, err
		}
		isbns = append(isbns, isbn)
	}

	return isbns, rows.Err()
}
