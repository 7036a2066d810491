package models

import "time"

// BookStatus describes where a book sits in the reading lifecycle
type BookStatus string

const (
	// BookReading means the book is currently being read
	BookReading BookStatus = "reading"
	// BookFinished means the book has been read to the end
	BookFinished BookStatus = "finished"
	// BookAbandoned means the book was dropped before finishing
	BookAbandoned BookStatus = "abandoned"
)

// IsValid reports whether the status is one of the known values
func (s BookStatus) IsValid() bool {
	switch s {
	case BookReading, BookFinished, BookAbandoned:
		return true
	}
	return false
}

// Book represents a book the user is reading or has read
type Book struct {
	ID         int64      `json:"id" db:"id"`
	Title      string     `json:"title" db:"title"`
	Author     string     `json:"author" db:"author"`
	TotalPages int        `json:"total_pages" db:"total_pages"`
	Status     BookStatus `json:"status" db:"status"`
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
