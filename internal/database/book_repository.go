package database

import (
	"fmt"
	"time"

	"github.com/example/readlog/pkg/models"
)

// BookRepository handles database operations for books
type BookRepository struct{}

// NewBookRepository creates a new repository instance
func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

// GetAll returns all books, most recently started first
func (r *BookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	err := DB.Select(&books, "SELECT * FROM books ORDER BY started_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	return books, nil
}

// GetByID returns a book by ID
func (r *BookRepository) GetByID(id int64) (*models.Book, error) {
	var book models.Book
	err := DB.Get(&book, "SELECT * FROM books WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

// FindByTitle returns a book with the exact title, or ErrNotFound
func (r *BookRepository) FindByTitle(title string) (*models.Book, error) {
	var book models.Book
	err := DB.Get(&book, "SELECT * FROM books WHERE LOWER(title) = LOWER($1)", title)
	if err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

// Create inserts a new book
func (r *BookRepository) Create(book *models.Book) error {
	if book.Status == "" {
		book.Status = models.BookReading
	}
	if book.StartedAt.IsZero() {
		book.StartedAt = time.Now()
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO books (title, author, total_pages, status, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRow(
			query,
			book.Title,
			book.Author,
			book.TotalPages,
			book.Status,
			book.StartedAt,
			book.FinishedAt,
		).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	}

	// SQLite path without RETURNING
	result, err := DB.Exec(
		`INSERT INTO books (title, author, total_pages, status, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		book.Title,
		book.Author,
		book.TotalPages,
		book.Status,
		book.StartedAt,
		book.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	book.ID = id

	return DB.QueryRow("SELECT created_at, updated_at FROM books WHERE id = $1", book.ID).
		Scan(&book.CreatedAt, &book.UpdatedAt)
}

// Update modifies an existing book
func (r *BookRepository) Update(book *models.Book) error {
	if DB.DriverName() == "postgres" {
		query := `
			UPDATE books SET
				title = $1,
				author = $2,
				total_pages = $3,
				status = $4,
				started_at = $5,
				finished_at = $6,
				updated_at = NOW()
			WHERE id = $7
			RETURNING updated_at
		`
		return DB.QueryRow(
			query,
			book.Title,
			book.Author,
			book.TotalPages,
			book.Status,
			book.StartedAt,
			book.FinishedAt,
			book.ID,
		).Scan(&book.UpdatedAt)
	}

	_, err := DB.Exec(
		`UPDATE books SET
			title = $1,
			author = $2,
			total_pages = $3,
			status = $4,
			started_at = $5,
			finished_at = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`,
		book.Title,
		book.Author,
		book.TotalPages,
		book.Status,
		book.StartedAt,
		book.FinishedAt,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return DB.QueryRow("SELECT updated_at FROM books WHERE id = $1", book.ID).Scan(&book.UpdatedAt)
}

// Delete removes a book together with its sessions; captured words survive
// with their book reference cleared.
func (r *BookRepository) Delete(id int64) error {
	if _, err := DB.Exec("UPDATE words SET book_id = NULL WHERE book_id = $1", id); err != nil {
		return fmt.Errorf("failed to detach words: %w", err)
	}
	if _, err := DB.Exec("DELETE FROM reading_sessions WHERE book_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	if _, err := DB.Exec("DELETE FROM books WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
