package database

import (
	"fmt"
	"time"

	"github.com/example/readlog/pkg/models"
)

// ReviewLogRepository handles database operations for review history
type ReviewLogRepository struct{}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository() *ReviewLogRepository {
	return &ReviewLogRepository{}
}

// Create appends a review event
func (r *ReviewLogRepository) Create(log *models.ReviewLog) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO review_logs (word_id, rating, interval_days, ease, reviewed_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			log.WordID,
			log.Rating,
			log.IntervalDays,
			log.Ease,
			log.ReviewedAt,
		).Scan(&log.ID)
	}

	result, err := DB.Exec(
		`INSERT INTO review_logs (word_id, rating, interval_days, ease, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		log.WordID,
		log.Rating,
		log.IntervalDays,
		log.Ease,
		log.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	log.ID = id
	return nil
}

// GetByWord returns the review history of a word, newest first
func (r *ReviewLogRepository) GetByWord(wordID int64) ([]models.ReviewLog, error) {
	var logs []models.ReviewLog
	err := DB.Select(&logs,
		"SELECT * FROM review_logs WHERE word_id = $1 ORDER BY reviewed_at DESC, id DESC", wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs: %w", err)
	}
	return logs, nil
}

// CountSince returns the number of reviews performed since the given time
func (r *ReviewLogRepository) CountSince(since time.Time) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM review_logs WHERE reviewed_at >= $1", since)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
