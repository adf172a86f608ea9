package db

import (
	"time"
)

// TranslationRecord is one audit row per translate call. The token
// cache itself is never persisted; this table records requests, not
// credentials.
type TranslationRecord struct {
	RecordID       int64     `gorm:"column:record_id;primaryKey;autoIncrement"`
	RequestID      string    `gorm:"column:request_id;type:text;not null;default:''"`
	SourceChars    int       `gorm:"column:source_chars;type:integer;not null;default:0"`
	TranslatedText string    `gorm:"column:translated_text;type:text;not null;default:''"`
	DetectedLang   string    `gorm:"column:detected_lang;type:text;not null;default:''"`
	Status         string    `gorm:"column:status;type:text;not null"`
	ErrorMessage   string    `gorm:"column:error_message;type:text;not null;default:''"`
	LatencyMS      int64     `gorm:"column:latency_ms;type:bigint;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (TranslationRecord) TableName() string { return "translation_records" }

func autoMigrateModels() []any {
	return []any{
		&TranslationRecord{},
	}
}
