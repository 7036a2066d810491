package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the handlers the router wires up
type RouterConfig struct {
	Books    *BookHandler
	Sessions *SessionHandler
	Words    *WordHandler
	Review   *ReviewHandler
	Stats    *StatsHandler
}

// NewRouter builds the gin engine with all application routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		if cfg.Books != nil {
			api.GET("/books", cfg.Books.List)
			api.POST("/books", cfg.Books.Create)
			api.GET("/books/:id", cfg.Books.Get)
			api.PUT("/books/:id", cfg.Books.Update)
			api.DELETE("/books/:id", cfg.Books.Delete)
		}

		if cfg.Sessions != nil {
			api.GET("/books/:id/sessions", cfg.Sessions.ListByBook)
			api.POST("/books/:id/sessions", cfg.Sessions.Create)
			api.GET("/sessions", cfg.Sessions.List)
			api.DELETE("/sessions/:id", cfg.Sessions.Delete)
		}

		if cfg.Words != nil {
			api.GET("/words", cfg.Words.List)
			api.POST("/words", cfg.Words.Create)
			api.GET("/words/:id", cfg.Words.Get)
			api.PUT("/words/:id", cfg.Words.Update)
			api.DELETE("/words/:id", cfg.Words.Delete)
			api.GET("/words/:id/history", cfg.Words.History)
			api.POST("/words/:id/enrich", cfg.Words.Enrich)
			api.POST("/import/words", cfg.Words.Import)
			api.GET("/export/words", cfg.Words.Export)
		}

		if cfg.Review != nil {
			api.GET("/review/queue", cfg.Review.Queue)
			api.GET("/review/due", cfg.Review.DueCount)
			api.POST("/review/words/:id", cfg.Review.Submit)
		}

		if cfg.Stats != nil {
			api.GET("/stats", cfg.Stats.Get)
		}
	}

	return r
}
