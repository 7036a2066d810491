// Package review drives the spaced-repetition review flow: it pulls due
// words from storage, applies the scheduling engine to the user's rating,
// and writes the updated state back.
package review

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/readlog/internal/srs"
	"github.com/example/readlog/pkg/models"
)

// WordStore is the slice of word storage the review flow needs.
type WordStore interface {
	GetByID(id int64) (*models.Word, error)
	GetDue(now time.Time, limit int) ([]models.Word, error)
	CountDue(now time.Time) (int, error)
	UpdateScheduling(word *models.Word) error
}

// LogStore records review history.
type LogStore interface {
	Create(log *models.ReviewLog) error
}

// Service coordinates a review session. Reads and write-backs are not
// coordinated across concurrent sessions; the last write wins.
type Service struct {
	words  WordStore
	logs   LogStore
	logger *logrus.Logger
}

// NewService creates a review service
func NewService(words WordStore, logs LogStore, logger *logrus.Logger) *Service {
	return &Service{words: words, logs: logs, logger: logger}
}

// Queue returns up to limit words due for review at the given time,
// most overdue first.
func (s *Service) Queue(now time.Time, limit int) ([]models.Word, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.words.GetDue(now, limit)
}

// DueCount returns how many words are currently due.
func (s *Service) DueCount(now time.Time) (int, error) {
	return s.words.CountDue(now)
}

// Submit applies a rating to a word: the engine computes the next scheduling
// state, the word record is updated, and a history entry is appended.
func (s *Service) Submit(wordID int64, rating srs.Rating, now time.Time) (*models.Word, error) {
	if !rating.IsValid() {
		return nil, fmt.Errorf("invalid rating %d", int(rating))
	}

	word, err := s.words.GetByID(wordID)
	if err != nil {
		return nil, err
	}

	state := srs.State{
		IntervalDays: word.SrsIntervalDays,
		Ease:         word.SrsEase,
		Reps:         word.SrsReps,
	}
	result := srs.Transition(state, rating, now)

	word.SrsIntervalDays = result.State.IntervalDays
	word.SrsEase = result.State.Ease
	word.SrsReps = result.State.Reps
	word.SrsDueAt = result.DueAt
	word.LastReviewedAt = &now

	if err := s.words.UpdateScheduling(word); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	// History is best-effort; the scheduling write above is what matters.
	if err := s.logs.Create(&models.ReviewLog{
		WordID:       word.ID,
		Rating:       rating.String(),
		IntervalDays: result.State.IntervalDays,
		Ease:         result.State.Ease,
		ReviewedAt:   now,
	}); err != nil {
		s.logger.WithError(err).WithField("word_id", word.ID).Warn("failed to record review log")
	}

	return word, nil
}

// SeedNewWord fills the scheduling fields of a freshly captured word:
// initial state, due immediately.
func SeedNewWord(word *models.Word, now time.Time) {
	state := srs.InitialState()
	word.SrsIntervalDays = state.IntervalDays
	word.SrsEase = state.Ease
	word.SrsReps = state.Reps
	word.SrsDueAt = now
	word.LastReviewedAt = nil
}
