package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/pkg/models"
)

// BookHandler serves the book endpoints
type BookHandler struct {
	books *database.BookRepository
}

// NewBookHandler creates a new handler instance
func NewBookHandler(books *database.BookRepository) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title      string             `json:"title" binding:"required"`
	Author     string             `json:"author"`
	TotalPages int                `json:"total_pages"`
	Status     *models.BookStatus `json:"status"`
	StartedAt  *time.Time         `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at"`
}

// List handles GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.GetAll()
	if err != nil {
		writeError(c, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// Get handles GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := h.books.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book := &models.Book{
		Title:      req.Title,
		Author:     req.Author,
		TotalPages: req.TotalPages,
		FinishedAt: req.FinishedAt,
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		book.Status = *req.Status
	}
	if req.StartedAt != nil {
		book.StartedAt = *req.StartedAt
	}

	if err := h.books.Create(book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update handles PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := h.books.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book.Title = req.Title
	book.Author = req.Author
	book.TotalPages = req.TotalPages
	book.FinishedAt = req.FinishedAt
	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		book.Status = *req.Status
	}
	if req.StartedAt != nil {
		book.StartedAt = *req.StartedAt
	}

	if err := h.books.Update(book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.books.GetByID(id); err != nil {
		writeError(c, err)
		return
	}
	if err := h.books.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
