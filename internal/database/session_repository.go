package database

import (
	"fmt"
	"time"

	"github.com/example/readlog/pkg/models"
)

// SessionRepository handles database operations for reading sessions
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// GetAll returns recent sessions, newest first
func (r *SessionRepository) GetAll(limit int) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	err := DB.Select(&sessions,
		"SELECT * FROM reading_sessions ORDER BY read_at DESC, id DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	return sessions, nil
}

// GetByBook returns all sessions for a book, newest first
func (r *SessionRepository) GetByBook(bookID int64) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	err := DB.Select(&sessions,
		"SELECT * FROM reading_sessions WHERE book_id = $1 ORDER BY read_at DESC, id DESC", bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by book: %w", err)
	}
	return sessions, nil
}

// GetByID returns a session by ID
func (r *SessionRepository) GetByID(id int64) (*models.ReadingSession, error) {
	var session models.ReadingSession
	err := DB.Get(&session, "SELECT * FROM reading_sessions WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

// Create inserts a new reading session
func (r *SessionRepository) Create(session *models.ReadingSession) error {
	if session.ReadAt.IsZero() {
		session.ReadAt = time.Now()
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO reading_sessions (book_id, read_at, minutes, start_page, end_page, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		return DB.QueryRow(
			query,
			session.BookID,
			session.ReadAt,
			session.Minutes,
			session.StartPage,
			session.EndPage,
			session.Notes,
		).Scan(&session.ID, &session.CreatedAt)
	}

	result, err := DB.Exec(
		`INSERT INTO reading_sessions (book_id, read_at, minutes, start_page, end_page, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		session.BookID,
		session.ReadAt,
		session.Minutes,
		session.StartPage,
		session.EndPage,
		session.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	session.ID = id

	return DB.QueryRow("SELECT created_at FROM reading_sessions WHERE id = $1", session.ID).
		Scan(&session.CreatedAt)
}

// Delete removes a session
func (r *SessionRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM reading_sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
