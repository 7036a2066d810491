package database

import (
	"fmt"
	"time"

	"github.com/example/readlog/pkg/models"
)

// WordRepository handles database operations for vocabulary words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all words ordered alphabetically
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words ORDER BY text, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(id int64) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err)
	}
	return &word, nil
}

// FindByText returns the word with the exact text, or ErrNotFound
func (r *WordRepository) FindByText(text string) (*models.Word, error) {
	var word models.Word
	err := DB.Get(&word, "SELECT * FROM words WHERE LOWER(text) = LOWER($1)", text)
	if err != nil {
		return nil, notFound(err)
	}
	return &word, nil
}

// GetByBook returns words captured from a specific book
func (r *WordRepository) GetByBook(bookID int64) ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words WHERE book_id = $1 ORDER BY text, id", bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by book: %w", err)
	}
	return words, nil
}

// Search returns words whose text, definition or translation match the query
func (r *WordRepository) Search(query string) ([]models.Word, error) {
	var words []models.Word
	pattern := "%" + query + "%"
	err := DB.Select(&words, `
		SELECT * FROM words
		WHERE LOWER(text) LIKE LOWER($1)
		   OR LOWER(definition) LIKE LOWER($1)
		   OR LOWER(translation) LIKE LOWER($1)
		ORDER BY text, id
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %w", err)
	}
	return words, nil
}

// GetDue returns words due for review at the given time, most overdue
// first. A non-positive limit returns all due words.
func (r *WordRepository) GetDue(now time.Time, limit int) ([]models.Word, error) {
	query := `
		SELECT * FROM words
		WHERE srs_due_at <= $1
		ORDER BY srs_due_at ASC, id ASC
	`
	args := []interface{}{now}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var words []models.Word
	if err := DB.Select(&words, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get due words: %w", err)
	}
	return words, nil
}

// CountDue returns the number of words due for review at the given time
func (r *WordRepository) CountDue(now time.Time) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM words WHERE srs_due_at <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due words: %w", err)
	}
	return count, nil
}

// Create inserts a new word. The caller is expected to have seeded the
// scheduling fields; a zero due date means due immediately.
func (r *WordRepository) Create(word *models.Word) error {
	if word.SrsDueAt.IsZero() {
		word.SrsDueAt = time.Now()
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO words (
				book_id, text, definition, context, translation,
				srs_due_at, srs_interval_days, srs_ease, srs_reps
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRow(
			query,
			word.BookID,
			word.Text,
			word.Definition,
			word.Context,
			word.Translation,
			word.SrsDueAt,
			word.SrsIntervalDays,
			word.SrsEase,
			word.SrsReps,
		).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	}

	result, err := DB.Exec(
		`INSERT INTO words (
			book_id, text, definition, context, translation,
			srs_due_at, srs_interval_days, srs_ease, srs_reps
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		word.BookID,
		word.Text,
		word.Definition,
		word.Context,
		word.Translation,
		word.SrsDueAt,
		word.SrsIntervalDays,
		word.SrsEase,
		word.SrsReps,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = id

	return DB.QueryRow("SELECT created_at, updated_at FROM words WHERE id = $1", word.ID).
		Scan(&word.CreatedAt, &word.UpdatedAt)
}

// Update modifies the descriptive fields of a word
func (r *WordRepository) Update(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			UPDATE words SET
				book_id = $1,
				text = $2,
				definition = $3,
				context = $4,
				translation = $5,
				updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at
		`
		return DB.QueryRow(
			query,
			word.BookID,
			word.Text,
			word.Definition,
			word.Context,
			word.Translation,
			word.ID,
		).Scan(&word.UpdatedAt)
	}

	_, err := DB.Exec(
		`UPDATE words SET
			book_id = $1,
			text = $2,
			definition = $3,
			context = $4,
			translation = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6`,
		word.BookID,
		word.Text,
		word.Definition,
		word.Context,
		word.Translation,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}
	return DB.QueryRow("SELECT updated_at FROM words WHERE id = $1", word.ID).Scan(&word.UpdatedAt)
}

// UpdateScheduling writes back the scheduling fields after a review.
// Last write wins; concurrent reviews of the same word are not coordinated.
func (r *WordRepository) UpdateScheduling(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			UPDATE words SET
				srs_due_at = $1,
				srs_interval_days = $2,
				srs_ease = $3,
				srs_reps = $4,
				last_reviewed_at = $5,
				updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at
		`
		return DB.QueryRow(
			query,
			word.SrsDueAt,
			word.SrsIntervalDays,
			word.SrsEase,
			word.SrsReps,
			word.LastReviewedAt,
			word.ID,
		).Scan(&word.UpdatedAt)
	}

	_, err := DB.Exec(
		`UPDATE words SET
			srs_due_at = $1,
			srs_interval_days = $2,
			srs_ease = $3,
			srs_reps = $4,
			last_reviewed_at = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $6`,
		word.SrsDueAt,
		word.SrsIntervalDays,
		word.SrsEase,
		word.SrsReps,
		word.LastReviewedAt,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word scheduling: %w", err)
	}
	return DB.QueryRow("SELECT updated_at FROM words WHERE id = $1", word.ID).Scan(&word.UpdatedAt)
}

// Delete removes a word and its review history
func (r *WordRepository) Delete(id int64) error {
	if _, err := DB.Exec("DELETE FROM review_logs WHERE word_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete review logs: %w", err)
	}
	if _, err := DB.Exec("DELETE FROM words WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}
