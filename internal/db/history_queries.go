package db

import (
	"context"
	"fmt"
	"time"
)

// InsertTranslationRecordParams controls history inserts.
type InsertTranslationRecordParams struct {
	RequestID      string
	SourceChars    int
	TranslatedText string
	DetectedLang   string
	Status         string
	ErrorMessage   string
	LatencyMS      int64
}

// HistoryRow is one translation history row for listings.
type HistoryRow struct {
	RecordID     int64     `json:"record_id"`
	RequestID    string    `json:"request_id,omitempty"`
	SourceChars  int       `json:"source_chars"`
	DetectedLang string    `json:"detected_lang,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	LatencyMS    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Pool) InsertTranslationRecord(ctx context.Context, params InsertTranslationRecordParams) error {
	const q = `
INSERT INTO translation_records
    (request_id, source_chars, translated_text, detected_lang, status, error_message, latency_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	if err := p.Exec(ctx, q,
		params.RequestID,
		params.SourceChars,
		params.TranslatedText,
		params.DetectedLang,
		params.Status,
		params.ErrorMessage,
		params.LatencyMS,
	); err != nil {
		return fmt.Errorf("insert translation record: %w", err)
	}
	return nil
}

func (p *Pool) ListTranslationRecords(ctx context.Context, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT record_id, request_id, source_chars, detected_lang, status, error_message, latency_ms, created_at
FROM translation_records
ORDER BY record_id DESC
LIMIT ?`

	rows, err := p.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query translation records: %w", err)
	}
	defer rows.Close()

	items := make([]HistoryRow, 0, limit)
	for rows.Next() {
		var row HistoryRow
		if err := rows.Scan(
			&row.RecordID,
			&row.RequestID,
			&row.SourceChars,
			&row.DetectedLang,
			&row.Status,
			&row.ErrorMessage,
			&row.LatencyMS,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan translation record: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translation records: %w", err)
	}

	return items, nil
}
