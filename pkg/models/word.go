package models

import "time"

// Word represents a hard word captured while reading.
// The srs_* columns embed the word's scheduling state; they are owned 1:1
// by the word record and only change through a review.
type Word struct {
	ID              int64      `json:"id" db:"id"`
	BookID          *int64     `json:"book_id,omitempty" db:"book_id"`
	Text            string     `json:"text" db:"text"`
	Definition      string     `json:"definition" db:"definition"`
	Context         string     `json:"context" db:"context"`
	Translation     string     `json:"translation" db:"translation"`
	SrsDueAt        time.Time  `json:"srs_due_at" db:"srs_due_at"`
	SrsIntervalDays int        `json:"srs_interval_days" db:"srs_interval_days"`
	SrsEase         float64    `json:"srs_ease" db:"srs_ease"`
	SrsReps         int        `json:"srs_reps" db:"srs_reps"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty" db:"last_reviewed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
