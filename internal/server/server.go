// Package server exposes the reading tracker over a REST API.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP engine
type Server struct {
	Engine *gin.Engine
}

// New builds a server with all routes registered
func New(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

// Run starts listening on the given port, blocking until the listener fails
func (s *Server) Run(port int) error {
	return s.Engine.Run(fmt.Sprintf(":%d", port))
}
