package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/readlog/internal/review"
	"github.com/example/readlog/internal/srs"
	"github.com/example/readlog/pkg/models"
)

// ReviewHandler serves the review flow endpoints
type ReviewHandler struct {
	svc *review.Service
}

// NewReviewHandler creates a new handler instance
func NewReviewHandler(svc *review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Queue handles GET /api/review/queue
func (h *ReviewHandler) Queue(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	words, err := h.svc.Queue(time.Now(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if words == nil {
		words = []models.Word{}
	}
	c.JSON(http.StatusOK, words)
}

// DueCount handles GET /api/review/due
func (h *ReviewHandler) DueCount(c *gin.Context) {
	count, err := h.svc.DueCount(time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"due": count})
}

type submitRequest struct {
	Rating srs.Rating `json:"rating"`
}

// Submit handles POST /api/review/words/:id, applying the user's rating
func (h *ReviewHandler) Submit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Rating.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	word, err := h.svc.Submit(id, req.Rating, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}
