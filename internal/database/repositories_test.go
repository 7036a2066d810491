package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/readlog/pkg/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	require.NoError(t, Connect())
	t.Cleanup(func() { _ = Close() })
}

func TestBookRepositoryCRUD(t *testing.T) {
	setupTestDB(t)
	repo := NewBookRepository()

	book := &models.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412}
	require.NoError(t, repo.Create(book))
	assert.NotZero(t, book.ID)
	assert.Equal(t, models.BookReading, book.Status)
	assert.False(t, book.StartedAt.IsZero())

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Nil(t, got.FinishedAt)

	got, err = repo.FindByTitle("dune")
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)

	finished := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	book.Status = models.BookFinished
	book.FinishedAt = &finished
	require.NoError(t, repo.Update(book))

	got, err = repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookFinished, got.Status)
	require.NotNil(t, got.FinishedAt)

	require.NoError(t, repo.Delete(book.ID))
	_, err = repo.GetByID(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	setupTestDB(t)
	books := NewBookRepository()
	sessions := NewSessionRepository()

	book := &models.Book{Title: "Solaris"}
	require.NoError(t, books.Create(book))

	first := &models.ReadingSession{
		BookID:    book.ID,
		ReadAt:    time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		Minutes:   45,
		StartPage: 10,
		EndPage:   42,
	}
	second := &models.ReadingSession{
		BookID:  book.ID,
		ReadAt:  time.Date(2024, 3, 2, 21, 0, 0, 0, time.UTC),
		Minutes: 30,
		Notes:   "slow chapter",
	}
	require.NoError(t, sessions.Create(first))
	require.NoError(t, sessions.Create(second))

	got, err := sessions.GetByBook(book.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest session first")
	assert.Equal(t, 32, got[1].PagesRead())

	all, err := sessions.GetAll(1)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, sessions.Delete(first.ID))
	got, err = sessions.GetByBook(book.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWordRepositoryDueQueue(t *testing.T) {
	setupTestDB(t)
	words := NewWordRepository()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	overdue := &models.Word{Text: "perfidious", SrsDueAt: now.AddDate(0, 0, -3), SrsEase: 2.5}
	dueNow := &models.Word{Text: "laconic", SrsDueAt: now, SrsEase: 2.5}
	future := &models.Word{Text: "sanguine", SrsDueAt: now.AddDate(0, 0, 5), SrsEase: 2.5}
	for _, w := range []*models.Word{dueNow, future, overdue} {
		require.NoError(t, words.Create(w))
	}

	due, err := words.GetDue(now, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "perfidious", due[0].Text, "most overdue first")
	assert.Equal(t, "laconic", due[1].Text)

	count, err := words.CountDue(now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	limited, err := words.GetDue(now, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestWordRepositoryUpdateScheduling(t *testing.T) {
	setupTestDB(t)
	words := NewWordRepository()

	word := &models.Word{Text: "ephemeral", SrsEase: 2.5}
	require.NoError(t, words.Create(word))

	reviewed := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	word.SrsIntervalDays = 3
	word.SrsEase = 2.65
	word.SrsReps = 2
	word.SrsDueAt = reviewed.AddDate(0, 0, 3)
	word.LastReviewedAt = &reviewed
	require.NoError(t, words.UpdateScheduling(word))

	got, err := words.GetByID(word.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.SrsIntervalDays)
	assert.InDelta(t, 2.65, got.SrsEase, 1e-9)
	assert.Equal(t, 2, got.SrsReps)
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, got.SrsDueAt.Equal(reviewed.AddDate(0, 0, 3)))
}

func TestWordRepositorySearch(t *testing.T) {
	setupTestDB(t)
	words := NewWordRepository()

	require.NoError(t, words.Create(&models.Word{Text: "taciturn", Definition: "reserved in speech", SrsEase: 2.5}))
	require.NoError(t, words.Create(&models.Word{Text: "loquacious", Definition: "very talkative", SrsEase: 2.5}))

	got, err := words.Search("talk")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "loquacious", got[0].Text)

	got, err = words.Search("TACI")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReviewLogRepository(t *testing.T) {
	setupTestDB(t)
	words := NewWordRepository()
	logs := NewReviewLogRepository()

	word := &models.Word{Text: "obdurate", SrsEase: 2.5}
	require.NoError(t, words.Create(word))

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	for i, rating := range []string{"good", "again", "hard"} {
		require.NoError(t, logs.Create(&models.ReviewLog{
			WordID:       word.ID,
			Rating:       rating,
			IntervalDays: i + 1,
			Ease:         2.5,
			ReviewedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	history, err := logs.GetByWord(word.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "hard", history[0].Rating, "newest first")

	count, err := logs.CountSince(base.Add(30 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStatisticsRepository(t *testing.T) {
	setupTestDB(t)
	books := NewBookRepository()
	sessions := NewSessionRepository()
	words := NewWordRepository()
	stats := NewStatisticsRepository()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	reading := &models.Book{Title: "Blindsight"}
	require.NoError(t, books.Create(reading))
	finishedAt := now.AddDate(0, 0, -10)
	finished := &models.Book{Title: "Ubik", Status: models.BookFinished, FinishedAt: &finishedAt}
	require.NoError(t, books.Create(finished))

	require.NoError(t, sessions.Create(&models.ReadingSession{
		BookID: reading.ID, ReadAt: now.AddDate(0, 0, -2), Minutes: 50, StartPage: 0, EndPage: 35,
	}))
	require.NoError(t, sessions.Create(&models.ReadingSession{
		BookID: reading.ID, ReadAt: now.AddDate(0, 0, -20), Minutes: 60, StartPage: 35, EndPage: 80,
	}))

	require.NoError(t, words.Create(&models.Word{Text: "scramble", SrsDueAt: now.AddDate(0, 0, -1), SrsEase: 2.5}))
	require.NoError(t, words.Create(&models.Word{Text: "vampire", SrsDueAt: now.AddDate(0, 0, 4), SrsEase: 2.5}))

	got, err := stats.Collect(now)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalBooks)
	assert.Equal(t, 1, got.BooksReading)
	assert.Equal(t, 1, got.BooksFinished)
	assert.Equal(t, 2, got.TotalWords)
	assert.Equal(t, 1, got.WordsDue)
	assert.Equal(t, 35, got.PagesWeek, "only sessions within the last week count")
	assert.Equal(t, 50, got.MinutesWeek)
}
