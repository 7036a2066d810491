package models

import "time"

// ReadingSession represents a single sitting with a book
type ReadingSession struct {
	ID        int64     `json:"id" db:"id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	ReadAt    time.Time `json:"read_at" db:"read_at"`
	Minutes   int       `json:"minutes" db:"minutes"`
	StartPage int       `json:"start_page" db:"start_page"`
	EndPage   int       `json:"end_page" db:"end_page"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PagesRead returns the number of pages covered in this session
func (s *ReadingSession) PagesRead() int {
	if s.EndPage <= s.StartPage {
		return 0
	}
	return s.EndPage - s.StartPage
}
