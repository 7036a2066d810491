package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/readlog/internal/ai"
	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/internal/excel"
	"github.com/example/readlog/internal/review"
	"github.com/example/readlog/pkg/models"
)

// WordHandler serves the vocabulary endpoints
type WordHandler struct {
	words *database.WordRepository
	books *database.BookRepository
	logs  *database.ReviewLogRepository
	// enricher is nil when no OpenAI key is configured
	enricher *ai.Client
}

// NewWordHandler creates a new handler instance
func NewWordHandler(
	words *database.WordRepository,
	books *database.BookRepository,
	logs *database.ReviewLogRepository,
	enricher *ai.Client,
) *WordHandler {
	return &WordHandler{words: words, books: books, logs: logs, enricher: enricher}
}

type wordRequest struct {
	BookID      *int64 `json:"book_id"`
	Text        string `json:"text" binding:"required"`
	Definition  string `json:"definition"`
	Context     string `json:"context"`
	Translation string `json:"translation"`
}

// List handles GET /api/words with optional book_id, q and due filters
func (h *WordHandler) List(c *gin.Context) {
	var (
		words []models.Word
		err   error
	)
	switch {
	case c.Query("due") == "true":
		words, err = h.words.GetDue(time.Now(), 0)
	case c.Query("book_id") != "":
		bookID, parseErr := strconv.ParseInt(c.Query("book_id"), 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book_id"})
			return
		}
		words, err = h.words.GetByBook(bookID)
	case c.Query("q") != "":
		words, err = h.words.Search(c.Query("q"))
	default:
		words, err = h.words.GetAll()
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if words == nil {
		words = []models.Word{}
	}
	c.JSON(http.StatusOK, words)
}

// Get handles GET /api/words/:id
func (h *WordHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	word, err := h.words.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

// Create handles POST /api/words. The new word gets fresh scheduling state
// and is due for review immediately.
func (h *WordHandler) Create(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if req.BookID != nil {
		if _, err := h.books.GetByID(*req.BookID); err != nil {
			writeError(c, err)
			return
		}
	}

	word := &models.Word{
		BookID:      req.BookID,
		Text:        text,
		Definition:  req.Definition,
		Context:     req.Context,
		Translation: req.Translation,
	}
	review.SeedNewWord(word, time.Now())

	if err := h.words.Create(word); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, word)
}

// Update handles PUT /api/words/:id. Scheduling state is read-only here;
// it only changes through reviews.
func (h *WordHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	word, err := h.words.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BookID != nil {
		if _, err := h.books.GetByID(*req.BookID); err != nil {
			writeError(c, err)
			return
		}
	}

	word.BookID = req.BookID
	word.Text = strings.TrimSpace(req.Text)
	word.Definition = req.Definition
	word.Context = req.Context
	word.Translation = req.Translation

	if err := h.words.Update(word); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

// Delete handles DELETE /api/words/:id
func (h *WordHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.words.GetByID(id); err != nil {
		writeError(c, err)
		return
	}
	if err := h.words.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History handles GET /api/words/:id/history
func (h *WordHandler) History(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.words.GetByID(id); err != nil {
		writeError(c, err)
		return
	}
	logs, err := h.logs.GetByWord(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if logs == nil {
		logs = []models.ReviewLog{}
	}
	c.JSON(http.StatusOK, logs)
}

// Enrich handles POST /api/words/:id/enrich: fills in a missing definition
// or example sentence using the AI client.
func (h *WordHandler) Enrich(c *gin.Context) {
	if h.enricher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "enrichment is not configured"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	word, err := h.words.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	changed := false
	if word.Definition == "" {
		definition, err := h.enricher.Define(word.Text, word.Context)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		word.Definition = definition
		changed = true
	}
	if word.Context == "" {
		example, err := h.enricher.ExampleSentence(word.Text)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		word.Context = example
		changed = true
	}

	if changed {
		if err := h.words.Update(word); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, word)
}

// Import handles POST /api/import/words with an uploaded .xlsx or .csv file
func (h *WordHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .xlsx and .csv files are supported"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmpPath)

	config := excel.DefaultImportConfig()
	config.FilePath = tmpPath
	result, err := excel.ImportWords(config)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export handles GET /api/export/words, returning an .xlsx backup
func (h *WordHandler) Export(c *gin.Context) {
	tmpPath := filepath.Join(os.TempDir(), "readlog-words.xlsx")
	defer os.Remove(tmpPath)

	if _, err := excel.ExportWords(tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(tmpPath, "words.xlsx")
}
