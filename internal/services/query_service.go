package services

import (
	"context"
	"math"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/oppradar/oppradar/internal/repositories"
)

type opportunityQueryRepository interface {
	List(ctx context.Context, filters repositories.ListFilters,
		page repositories.Pagination) ([]models.Opportunity, int64, error)
	GetByID(ctx context.Context, id string) (*models.Opportunity, error)
	UpdateStatus(ctx context.Context, id string, status models.OpportunityStatus) error
	Remove(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*repositories.Stats, error)
	CountByType(ctx context.Context) ([]repositories.TypeCount, error)
	CountByCountry(ctx context.Context) ([]repositories.CountryCount, error)
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ListResult struct {
	Opportunities []models.OpportunityView `json:"opportunities"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
	Total         int64                    `json:"total"`
	Pages         int                      `json:"pages"`
}

type StatsSummary struct {
	Summary             repositories.Stats          `json:"summary"`
	TypeDistribution    []repositories.TypeCount    `json:"type_distribution"`
	CountryDistribution []repositories.CountryCount `json:"country_distribution"`
}

// QueryService is the read/update boundary over persisted opportunities.
type QueryService struct {
	opportunities opportunityQueryRepository
}

func NewQueryService(opportunityRepo opportunityQueryRepository) *QueryService {
	return &QueryService{opportunities: opportunityRepo}
}

func (s *QueryService) List(ctx context.Context, filters repositories.ListFilters,
	page repositories.Pagination) (*ListResult, error) {

	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	opportunities, total, err := s.opportunities.List(ctx, filters, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Opportunities: models.ToViews(opportunities),
		Page:          page.Page,
		Limit:         page.Limit,
		Total:         total,
		Pages:         int(math.Ceil(float64(total) / float64(page.Limit))),
	}, nil
}

func (s *QueryService) GetByID(ctx context.Context, id string) (*models.OpportunityView, error) {
	opportunity, err := s.opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := opportunity.ToView()
	return &view, nil
}

// UpdateStatus fails with repositories.ErrNotFound for unknown ids;
// Delete stays idempotent.
func (s *QueryService) UpdateStatus(ctx context.Context, id string, status string) error {
	parsed, err := models.ToOpportunityStatus(status)
	if err != nil {
		return err
	}
	return s.opportunities.UpdateStatus(ctx, id, parsed)
}

func (s *QueryService) Delete(ctx context.Context, id string) error {
	return s.opportunities.Remove(ctx, id)
}

func (s *QueryService) Stats(ctx context.Context) (*StatsSummary, error) {

	stats, err := s.opportunities.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.opportunities.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byCountry, err := s.opportunities.CountByCountry(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsSummary{
		Summary:             *stats,
		TypeDistribution:    byType,
		CountryDistribution: byCountry,
	}, nil
}
