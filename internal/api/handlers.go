package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oppradar/oppradar/internal/clients/exa"
	"github.com/oppradar/oppradar/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {

	var request searchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filters, err := request.Filters.toFilters()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.ingestor.Ingest(r.Context(), request.Query, filters)
	if err != nil {
		if errors.Is(err, exa.ErrProviderUnavailable) {
			writeError(w, http.StatusBadGateway, "search provider unavailable")
			return
		}
		log.Errorf("search request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to search opportunities")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {

	filters, err := listFiltersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.queries.List(r.Context(), filters, paginationFromQuery(r))
	if err != nil {
		log.Errorf("list request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get opportunities")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	opportunity, err := s.queries.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		log.Errorf("get opportunity failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get opportunity")
		return
	}

	writeData(w, http.StatusOK, opportunity)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	var request statusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, "status must be one of: active, expired, closed, duplicate")
		return
	}

	if err := s.queries.UpdateStatus(r.Context(), id, request.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		log.Errorf("status update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update opportunity status")
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "opportunity status updated"})
}

// handleDelete is idempotent: deleting an unknown id still returns 200.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	if err := s.queries.Delete(r.Context(), id); err != nil {
		log.Errorf("delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete opportunity")
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "opportunity deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {

	stats, err := s.queries.Stats(r.Context())
	if err != nil {
		log.Errorf("stats request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get opportunity stats")
		return
	}

	writeData(w, http.StatusOK, stats)
}
