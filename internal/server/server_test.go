package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/internal/review"
	"github.com/example/readlog/pkg/models"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	require.NoError(t, database.Connect())
	t.Cleanup(func() { _ = database.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	books := database.NewBookRepository()
	sessions := database.NewSessionRepository()
	words := database.NewWordRepository()
	logs := database.NewReviewLogRepository()
	stats := database.NewStatisticsRepository()
	reviewSvc := review.NewService(words, logs, logger)

	return NewRouter(RouterConfig{
		Books:    NewBookHandler(books),
		Sessions: NewSessionHandler(sessions, books),
		Words:    NewWordHandler(words, books, logs, nil),
		Review:   NewReviewHandler(reviewSvc),
		Stats:    NewStatsHandler(stats),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

func TestHealthcheck(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{
		"title": "Dune", "author": "Frank Herbert", "total_pages": 412,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var book models.Book
	decode(t, w, &book)
	assert.NotZero(t, book.ID)
	assert.Equal(t, models.BookReading, book.Status)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/books/%d", book.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/books/%d", book.ID), gin.H{
		"title": "Dune", "author": "Frank Herbert", "total_pages": 412, "status": "finished",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &book)
	assert.Equal(t, models.BookFinished, book.Status)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/books/%d", book.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/books/%d", book.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"author": "nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "title is required")

	w = doJSON(t, router, http.MethodPost, "/api/books", gin.H{"title": "x", "status": "skimmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown status rejected")

	w = doJSON(t, router, http.MethodGet, "/api/books/banana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"title": "Solaris"})
	require.Equal(t, http.StatusCreated, w.Code)
	var book models.Book
	decode(t, w, &book)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/books/%d/sessions", book.ID), gin.H{
		"minutes": 45, "start_page": 10, "end_page": 42, "notes": "great chapter",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session models.ReadingSession
	decode(t, w, &session)
	assert.Equal(t, book.ID, session.BookID)
	assert.False(t, session.ReadAt.IsZero())

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/books/%d/sessions", book.ID), gin.H{
		"start_page": 50, "end_page": 20,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "backwards page range rejected")

	w = doJSON(t, router, http.MethodPost, "/api/books/999/sessions", gin.H{"minutes": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/books/%d/sessions", book.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sessions []models.ReadingSession
	decode(t, w, &sessions)
	assert.Len(t, sessions, 1)
}

func TestWordCreateSeedsScheduling(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/words", gin.H{
		"text": "perfidious", "definition": "deceitful",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var word models.Word
	decode(t, w, &word)
	assert.Equal(t, 0, word.SrsIntervalDays)
	assert.InDelta(t, 2.5, word.SrsEase, 1e-9)
	assert.Equal(t, 0, word.SrsReps)
	assert.False(t, word.SrsDueAt.IsZero(), "new word is due immediately")
	assert.Nil(t, word.LastReviewedAt)
}

func TestReviewFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "laconic"})
	require.Equal(t, http.StatusCreated, w.Code)
	var word models.Word
	decode(t, w, &word)

	// The freshly created word is due now.
	w = doJSON(t, router, http.MethodGet, "/api/review/queue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.Word
	decode(t, w, &queue)
	require.Len(t, queue, 1)
	assert.Equal(t, word.ID, queue[0].ID)

	w = doJSON(t, router, http.MethodGet, "/api/review/due", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var due map[string]int
	decode(t, w, &due)
	assert.Equal(t, 1, due["due"])

	// Rate it "good": interval 1 day, one rep, due tomorrow.
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/review/words/%d", word.ID), gin.H{"rating": "good"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reviewed models.Word
	decode(t, w, &reviewed)
	assert.Equal(t, 1, reviewed.SrsIntervalDays)
	assert.Equal(t, 1, reviewed.SrsReps)
	assert.InDelta(t, 2.5, reviewed.SrsEase, 1e-9)
	require.NotNil(t, reviewed.LastReviewedAt)

	// Queue is empty now.
	w = doJSON(t, router, http.MethodGet, "/api/review/queue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	queue = nil
	decode(t, w, &queue)
	assert.Empty(t, queue)

	// The review is on the word's history.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/words/%d/history", word.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.ReviewLog
	decode(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "good", history[0].Rating)
}

func TestReviewValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/review/words/999", gin.H{"rating": "good"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "sanguine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var word models.Word
	decode(t, w, &word)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/review/words/%d", word.ID), gin.H{"rating": "perfect"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown rating rejected")

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/review/words/%d", word.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing rating rejected")
}

func TestWordFilters(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"title": "Blindsight"})
	require.Equal(t, http.StatusCreated, w.Code)
	var book models.Book
	decode(t, w, &book)

	w = doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "scramble", "book_id": book.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "vampire"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/words?book_id=%d", book.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var words []models.Word
	decode(t, w, &words)
	require.Len(t, words, 1)
	assert.Equal(t, "scramble", words[0].Text)

	w = doJSON(t, router, http.MethodGet, "/api/words?q=vamp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	words = nil
	decode(t, w, &words)
	require.Len(t, words, 1)
	assert.Equal(t, "vampire", words[0].Text)

	// freshly created words are due immediately
	w = doJSON(t, router, http.MethodGet, "/api/words?due=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	words = nil
	decode(t, w, &words)
	assert.Len(t, words, 2)
}

func TestEnrichWithoutClient(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "obdurate"})
	require.Equal(t, http.StatusCreated, w.Code)
	var word models.Word
	decode(t, w, &word)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/words/%d/enrich", word.ID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/books", gin.H{"title": "Ubik"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/words", gin.H{"text": "halation"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats database.Stats
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.TotalBooks)
	assert.Equal(t, 1, stats.TotalWords)
	assert.Equal(t, 1, stats.WordsDue)
}
