package models

import "time"

// ReviewLog records a single review event for a word.
// The interval and ease are the values produced by that review.
type ReviewLog struct {
	ID           int64     `json:"id" db:"id"`
	WordID       int64     `json:"word_id" db:"word_id"`
	Rating       string    `json:"rating" db:"rating"`
	IntervalDays int       `json:"interval_days" db:"interval_days"`
	Ease         float64   `json:"ease" db:"ease"`
	ReviewedAt   time.Time `json:"reviewed_at" db:"reviewed_at"`
}
