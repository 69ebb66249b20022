package postgres

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/conflict"

	"gorm.io/gorm"
)

// DailyNumberSequenceDTO represents one per-(scope, day) counter row backing
// human-readable document numbers.
type DailyNumberSequenceDTO struct {
	Scope string    `gorm:"primaryKey"`
	Day   time.Time `gorm:"type:date;primaryKey"`
	Value int       `gorm:"not null"`
}

// TableName specifies the database table name for sequence counters.
func (DailyNumberSequenceDTO) TableName() string {
	return "daily_number_sequences"
}

// GormNumberSequence implements NumberSequence with an atomic upsert, so
// concurrent callers can never observe the same value for one (scope, day)
// pair. Run it inside the transaction that persists the numbered documents;
// the issued value rolls back with them.
type GormNumberSequence struct {
	db *gorm.DB
}

// NewGormNumberSequence creates a number sequence over the given database.
func NewGormNumberSequence(db *gorm.DB) *GormNumberSequence {
	return &GormNumberSequence{db: db}
}

// Next returns the next sequence value for the scope on the given day,
// starting at 1 for the first call of a day.
func (s *GormNumberSequence) Next(ctx context.Context, scope string, day time.Time) (int, error) {
	var value int
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO daily_number_sequences (scope, day, value)
		VALUES (?, ?, 1)
		ON CONFLICT (scope, day)
		DO UPDATE SET value = daily_number_sequences.value + 1
		RETURNING value
	`, scope, day.UTC().Format("2006-01-02")).Scan(&value).Error
	if err != nil {
		return 0, conflict.Classify("number sequence next", err)
	}

	return value, nil
}
