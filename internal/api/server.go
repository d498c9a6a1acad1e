// Package api exposes the curation pipeline over HTTP. The handlers map the
// pipeline's error taxonomy onto status codes: empty discovery is 503,
// a ledger failure is 500, a bad describe URL is 400.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"goodnews/internal/domain"
)

// Curator is the slice of the use case the HTTP layer needs.
type Curator interface {
	Curate(ctx context.Context) ([]domain.Article, error)
	Describe(ctx context.Context, url string) (domain.Description, error)
}

// Server wires the gin engine with the curation use case.
type Server struct {
	engine  *gin.Engine
	curator Curator
	logger  *slog.Logger
}

// NewServer constructs a gin engine with registered routes.
func NewServer(curator Curator, logger *slog.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, curator: curator, logger: logger}
	engine.GET("/news", s.handleNews)
	engine.GET("/describe", s.handleDescribe)
	engine.GET("/health", s.handleHealth)

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type newsResponse struct {
	Articles []domain.Article `json:"articles"`
}

func (s *Server) handleNews(c *gin.Context) {
	articles, err := s.curator.Curate(c.Request.Context())
	if err != nil {
		var storeErr *domain.StoreError
		switch {
		case errors.Is(err, domain.ErrNoCandidates):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not fetch articles"})
		case errors.As(err, &storeErr):
			s.error("curation aborted", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		default:
			s.error("curation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	if articles == nil {
		articles = []domain.Article{}
	}
	c.JSON(http.StatusOK, newsResponse{Articles: articles})
}

func (s *Server) handleDescribe(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	desc, err := s.curator.Describe(c.Request.Context(), url)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not process this URL"})
			return
		}
		s.error("describe failed", "url", url, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, desc)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) error(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}
