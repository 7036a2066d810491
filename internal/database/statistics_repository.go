package database

import (
	"fmt"
	"time"
)

// Stats is a snapshot of reading and review activity
type Stats struct {
	TotalBooks    int `json:"total_books" db:"total_books"`
	BooksReading  int `json:"books_reading" db:"books_reading"`
	BooksFinished int `json:"books_finished" db:"books_finished"`
	TotalWords    int `json:"total_words" db:"total_words"`
	WordsDue      int `json:"words_due" db:"words_due"`
	ReviewsToday  int `json:"reviews_today" db:"reviews_today"`
	PagesWeek     int `json:"pages_week" db:"pages_week"`
	MinutesWeek   int `json:"minutes_week" db:"minutes_week"`
}

// StatisticsRepository aggregates activity counters across tables
type StatisticsRepository struct{}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository() *StatisticsRepository {
	return &StatisticsRepository{}
}

// Collect gathers the activity snapshot as of the given time
func (r *StatisticsRepository) Collect(now time.Time) (*Stats, error) {
	stats := &Stats{}

	if err := DB.Get(&stats.TotalBooks, "SELECT COUNT(*) FROM books"); err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	if err := DB.Get(&stats.BooksReading,
		"SELECT COUNT(*) FROM books WHERE status = 'reading'"); err != nil {
		return nil, fmt.Errorf("failed to count books in progress: %w", err)
	}
	if err := DB.Get(&stats.BooksFinished,
		"SELECT COUNT(*) FROM books WHERE status = 'finished'"); err != nil {
		return nil, fmt.Errorf("failed to count finished books: %w", err)
	}
	if err := DB.Get(&stats.TotalWords, "SELECT COUNT(*) FROM words"); err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}
	if err := DB.Get(&stats.WordsDue,
		"SELECT COUNT(*) FROM words WHERE srs_due_at <= $1", now); err != nil {
		return nil, fmt.Errorf("failed to count due words: %w", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := DB.Get(&stats.ReviewsToday,
		"SELECT COUNT(*) FROM review_logs WHERE reviewed_at >= $1", midnight); err != nil {
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	weekAgo := now.AddDate(0, 0, -7)
	if err := DB.Get(&stats.PagesWeek, `
		SELECT COALESCE(SUM(CASE WHEN end_page > start_page THEN end_page - start_page ELSE 0 END), 0)
		FROM reading_sessions WHERE read_at >= $1
	`, weekAgo); err != nil {
		return nil, fmt.Errorf("failed to sum pages: %w", err)
	}
	if err := DB.Get(&stats.MinutesWeek,
		"SELECT COALESCE(SUM(minutes), 0) FROM reading_sessions WHERE read_at >= $1", weekAgo); err != nil {
		return nil, fmt.Errorf("failed to sum minutes: %w", err)
	}

	return stats, nil
}
