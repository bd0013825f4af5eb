package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oppradar/oppradar/internal/clients/exa"
	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/oppradar/oppradar/internal/repositories"
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Error: message})
}

type searchFiltersRequest struct {
	Type           string   `json:"type" validate:"omitempty,oneof=scholarship fellowship grant accelerator internship competition award other"`
	Country        string   `json:"country" validate:"omitempty,max=100"`
	AmountMin      *float64 `json:"amount_min" validate:"omitempty,gte=0"`
	AmountMax      *float64 `json:"amount_max" validate:"omitempty,gte=0"`
	Currency       string   `json:"currency" validate:"omitempty,len=3"`
	DeadlineAfter  string   `json:"deadline_after" validate:"omitempty"`
	DeadlineBefore string   `json:"deadline_before" validate:"omitempty"`
	Tags           []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

type searchRequest struct {
	Query   string               `json:"query" validate:"required,min=3,max=500"`
	Filters searchFiltersRequest `json:"filters"`
}

const dateLayout = "2006-01-02"

func (r searchFiltersRequest) toFilters() (exa.SearchFilters, error) {

	filters := exa.SearchFilters{
		Type:      models.OpportunityType(r.Type),
		Country:   r.Country,
		AmountMin: r.AmountMin,
		AmountMax: r.AmountMax,
		Currency:  strings.ToUpper(r.Currency),
		Tags:      r.Tags,
	}

	var err error
	if filters.DeadlineAfter, err = parseDate(r.DeadlineAfter); err != nil {
		return filters, fmt.Errorf("invalid deadline_after: %v", r.DeadlineAfter)
	}
	if filters.DeadlineBefore, err = parseDate(r.DeadlineBefore); err != nil {
		return filters, fmt.Errorf("invalid deadline_before: %v", r.DeadlineBefore)
	}
	return filters, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired closed duplicate"`
}

func listFiltersFromQuery(r *http.Request) (repositories.ListFilters, error) {

	query := r.URL.Query()
	filters := repositories.ListFilters{
		Type:    query.Get("type"),
		Country: query.Get("country"),
		Status:  query.Get("status"),
		Search:  query.Get("search"),
	}

	if filters.Type != "" {
		if _, err := models.ToOpportunityType(filters.Type); err != nil {
			return filters, err
		}
	}
	if filters.Status != "" {
		if _, err := models.ToOpportunityStatus(filters.Status); err != nil {
			return filters, err
		}
	}

	var err error
	if filters.AmountMin, err = parseFloatParam(query.Get("amount_min")); err != nil {
		return filters, fmt.Errorf("invalid amount_min")
	}
	if filters.AmountMax, err = parseFloatParam(query.Get("amount_max")); err != nil {
		return filters, fmt.Errorf("invalid amount_max")
	}
	if filters.DeadlineAfter, err = parseDate(query.Get("deadline_after")); err != nil {
		return filters, fmt.Errorf("invalid deadline_after")
	}
	if filters.DeadlineBefore, err = parseDate(query.Get("deadline_before")); err != nil {
		return filters, fmt.Errorf("invalid deadline_before")
	}

	if tags := query.Get("tags"); tags != "" {
		filters.Tags = strings.Split(tags, ",")
	}

	return filters, nil
}

func parseFloatParam(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil || parsed < 0 {
		return nil, fmt.Errorf("invalid number: %v", s)
	}
	return &parsed, nil
}

func paginationFromQuery(r *http.Request) repositories.Pagination {

	query := r.URL.Query()
	page := repositories.Pagination{
		Page:      1,
		Limit:     20,
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	if parsed, err := strconv.Atoi(query.Get("page")); err == nil && parsed > 0 {
		page.Page = parsed
	}
	if parsed, err := strconv.Atoi(query.Get("limit")); err == nil && parsed > 0 {
		page.Limit = parsed
	}
	return page
}
