package models

import "time"

const (
	// NotFound is the sentinel used for every string field that could not
	// be extracted. Absence is never represented by an empty value or a
	// missing key, so downstream consumers need no nil checks.
	NotFound = "-"

	// TimestampFormat is the capture-time format stored in BookRecord.
	TimestampFormat = "2006-01-02 15:04:05"

	// MessageFetched is the fixed status message set on every completed
	// record, degraded or not.
	MessageFetched = "Data fetched successfully"
)

// SiteResult is the extraction outcome for one bookstore. All four fields
// are always populated; sentinel values stand in for missing data.
type SiteResult struct {
	Title      string  `json:"TITLE"`
	Authors    string  `json:"AUTHORS"`
	Price      float64 `json:"PRICE"`
	ProductURL string  `json:"PRODUCT_URL"`
}

// EmptySiteResult returns the all-sentinel result used when a site fails
// to render, the search is ambiguous, or nothing could be extracted.
func EmptySiteResult() SiteResult {
	return SiteResult{
		Title:      NotFound,
		Authors:    NotFound,
		Price:      0,
		ProductURL: NotFound,
	}
}

// HasTitle reports whether the result carries a real title.
func (r SiteResult) HasTitle() bool {
	return r.Title != NotFound && r.Title != ""
}

// HasAuthors reports whether the result carries real author names.
func (r SiteResult) HasAuthors() bool {
	return r.Authors != NotFound && r.Authors != ""
}

// BookRecord is the aggregated per-ISBN output combining all sites.
type BookRecord struct {
	ISBN      string                `json:"ISBN"`
	Title     string                `json:"TITLE"`
	Authors   string                `json:"AUTHORS"`
	Timestamp string                `json:"TIMESTAMP"`
	Message   string                `json:"MESSAGE"`
	Sites     map[string]SiteResult `json:"SITES"`
}

func NewBookRecord(isbn string) *BookRecord {
	return &BookRecord{
		ISBN:  isbn,
		Sites: make(map[string]SiteResult),
	}
}

// Stamp sets the capture time and the completion message.
func (b *BookRecord) Stamp(now time.Time) {
	b.Timestamp = now.Format(TimestampFormat)
	b.Message = MessageFetched
}
