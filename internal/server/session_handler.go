package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/pkg/models"
)

// SessionHandler serves the reading session endpoints
type SessionHandler struct {
	sessions *database.SessionRepository
	books    *database.BookRepository
}

// NewSessionHandler creates a new handler instance
func NewSessionHandler(sessions *database.SessionRepository, books *database.BookRepository) *SessionHandler {
	return &SessionHandler{sessions: sessions, books: books}
}

type sessionRequest struct {
	ReadAt    *time.Time `json:"read_at"`
	Minutes   int        `json:"minutes"`
	StartPage int        `json:"start_page"`
	EndPage   int        `json:"end_page"`
	Notes     string     `json:"notes"`
}

// Create handles POST /api/books/:id/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	bookID, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.books.GetByID(bookID); err != nil {
		writeError(c, err)
		return
	}

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Minutes < 0 || req.StartPage < 0 || req.EndPage < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "negative values are not allowed"})
		return
	}
	if req.EndPage > 0 && req.EndPage < req.StartPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_page is before start_page"})
		return
	}

	session := &models.ReadingSession{
		BookID:    bookID,
		Minutes:   req.Minutes,
		StartPage: req.StartPage,
		EndPage:   req.EndPage,
		Notes:     req.Notes,
	}
	if req.ReadAt != nil {
		session.ReadAt = *req.ReadAt
	}

	if err := h.sessions.Create(session); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListByBook handles GET /api/books/:id/sessions
func (h *SessionHandler) ListByBook(c *gin.Context) {
	bookID, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.books.GetByID(bookID); err != nil {
		writeError(c, err)
		return
	}

	sessions, err := h.sessions.GetByBook(bookID)
	if err != nil {
		writeError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.ReadingSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// List handles GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	sessions, err := h.sessions.GetAll(limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.ReadingSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// Delete handles DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.sessions.GetByID(id); err != nil {
		writeError(c, err)
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
