// Package api exposes the ingestion pipeline and the opportunity store
// over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oppradar/oppradar/internal/clients/exa"
	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/oppradar/oppradar/internal/repositories"
	"github.com/oppradar/oppradar/internal/services"
	log "github.com/sirupsen/logrus"
)

type ingestService interface {
	Ingest(ctx context.Context, query string, filters exa.SearchFilters) (*services.IngestResult, error)
}

type queryService interface {
	List(ctx context.Context, filters repositories.ListFilters,
		page repositories.Pagination) (*services.ListResult, error)
	GetByID(ctx context.Context, id string) (*models.OpportunityView, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*services.StatsSummary, error)
}

type Server struct {
	httpServer *http.Server
	ingestor   ingestService
	queries    queryService
	validate   *validator.Validate
	apiKeys    []string
}

func NewServer(port int, apiKeys []string, ingestor ingestService, queries queryService) *Server {

	s := &Server{
		ingestor: ingestor,
		queries:  queries,
		validate: validator.New(),
		apiKeys:  apiKeys,
	}

	router := chi.NewRouter()
	router.Use(requestLogging)

	router.Get("/health", s.handleHealth)

	router.Route("/api/opportunities", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/search", s.handleSearch)
		r.Get("/", s.handleList)
		r.Get("/stats/summary", s.handleStats)
		r.Get("/{id}", s.handleGetByID)
		r.Patch("/{id}/status", s.handleUpdateStatus)
		r.Delete("/{id}", s.handleDelete)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Run() {
	log.Infof("api server listening on %v", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("api server failed: %v", err)
	}
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
