package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateURL = errors.New("opportunity with this url already exists")
)

// ListFilters are applied independently; zero values mean "no filter".
type ListFilters struct {
	Type           string
	Country        string
	Status         string
	AmountMin      *float64
	AmountMax      *float64
	DeadlineAfter  *time.Time
	DeadlineBefore *time.Time
	Tags           []string
	Search         string
}

type Pagination struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// sortColumns is the safe-list of sort keys; anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"created_at":           "created_at",
	"updated_at":           "updated_at",
	"application_deadline": "application_deadline",
	"title":                "title",
	"amount_min":           "amount_min",
	"amount_max":           "amount_max",
}

type Opportunities struct {
	db *gorm.DB
}

func NewOpportunitiesRepository(db *gorm.DB) *Opportunities {
	return &Opportunities{db: db}
}

// Add persists a new record. A unique-index violation on url comes back
// as ErrDuplicateURL so the caller can treat the race as a duplicate.
func (repo *Opportunities) Add(ctx context.Context, opportunity *models.Opportunity) error {
	err := repo.db.WithContext(ctx).Create(opportunity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateURL
		}
		return err
	}
	return nil
}

func (repo *Opportunities) FindByURL(ctx context.Context, url string) (*models.Opportunity, error) {

	var opportunity models.Opportunity
	err := repo.db.WithContext(ctx).First(&opportunity, "url = ?", url).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &opportunity, nil
}

func (repo *Opportunities) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {

	var opportunity models.Opportunity
	err := repo.db.WithContext(ctx).First(&opportunity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &opportunity, nil
}

func (repo *Opportunities) List(ctx context.Context, filters ListFilters,
	page Pagination) ([]models.Opportunity, int64, error) {

	query := repo.applyFilters(repo.db.WithContext(ctx).Model(&models.Opportunity{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(page.SortOrder, "asc") {
		order = "ASC"
	}

	var opportunities []models.Opportunity
	err := query.
		Order(column + " " + order).
		Limit(page.Limit).
		Offset((page.Page - 1) * page.Limit).
		Find(&opportunities).Error
	if err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

func (repo *Opportunities) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Country != "" {
		query = query.Where("country = ?", filters.Country)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.AmountMin != nil {
		query = query.Where("amount_min >= ?", *filters.AmountMin)
	}
	if filters.AmountMax != nil {
		query = query.Where("amount_max <= ?", *filters.AmountMax)
	}
	if filters.DeadlineAfter != nil {
		query = query.Where("application_deadline >= ?", *filters.DeadlineAfter)
	}
	if filters.DeadlineBefore != nil {
		query = query.Where("application_deadline <= ?", *filters.DeadlineBefore)
	}
	for _, tag := range filters.Tags {
		query = query.Where("(',' || tags || ',') LIKE ?", "%,"+tag+",%")
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title || ' ' || COALESCE(description, '') || ' ' || COALESCE(organization, '')) LIKE ?",
			pattern)
	}
	return query
}

func (repo *Opportunities) UpdateStatus(ctx context.Context, id string, status models.OpportunityStatus) error {
	result := repo.db.WithContext(ctx).Model(&models.Opportunity{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove is idempotent: deleting an unknown id is not an error.
func (repo *Opportunities) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.Opportunity{}, "id = ?", id).Error
}

type Stats struct {
	Total             int64   `json:"total_opportunities"`
	Active            int64   `json:"active_opportunities"`
	Expired           int64   `json:"expired_opportunities"`
	Closed            int64   `json:"closed_opportunities"`
	UniqueTypes       int64   `json:"unique_types"`
	UniqueCountries   int64   `json:"unique_countries"`
	AvgMinAmount      float64 `json:"avg_min_amount"`
	AvgMaxAmount      float64 `json:"avg_max_amount"`
	UpcomingDeadlines int64   `json:"upcoming_deadlines"`
}

func (repo *Opportunities) GetStats(ctx context.Context) (*Stats, error) {

	var stats Stats
	err := repo.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN status = 'active' THEN 1 END) AS active,
			COUNT(CASE WHEN status = 'expired' THEN 1 END) AS expired,
			COUNT(CASE WHEN status = 'closed' THEN 1 END) AS closed,
			COUNT(DISTINCT type) AS unique_types,
			COUNT(DISTINCT country) AS unique_countries,
			COALESCE(AVG(amount_min), 0) AS avg_min_amount,
			COALESCE(AVG(amount_max), 0) AS avg_max_amount,
			COUNT(CASE WHEN application_deadline > ? THEN 1 END) AS upcoming_deadlines
		FROM opportunities`, time.Now().UTC()).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

type TypeCount struct {
	Type  string `json:"opportunity_type"`
	Count int64  `json:"count"`
}

func (repo *Opportunities) CountByType(ctx context.Context) ([]TypeCount, error) {

	var counts []TypeCount
	err := repo.db.WithContext(ctx).Model(&models.Opportunity{}).
		Select("type AS type, COUNT(*) AS count").
		Where("status = ?", models.StatusActive).
		Group("type").
		Order("count DESC").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

func (repo *Opportunities) CountByCountry(ctx context.Context) ([]CountryCount, error) {

	var counts []CountryCount
	err := repo.db.WithContext(ctx).Model(&models.Opportunity{}).
		Select("country, COUNT(*) AS count").
		Where("status = ? AND country <> ''", models.StatusActive).
		Group("country").
		Order("count DESC").
		Limit(10).
		Find(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
