package repositories

import (
	"context"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SearchRuns struct {
	db *gorm.DB
}

func NewSearchRunsRepository(db *gorm.DB) *SearchRuns {
	return &SearchRuns{db: db}
}

func (repo *SearchRuns) Add(ctx context.Context, run *models.SearchRun) error {
	return repo.db.WithContext(ctx).Create(run).Error
}

func (repo *SearchRuns) GetByID(ctx context.Context, id string) (*models.SearchRun, error) {

	var run models.SearchRun
	err := repo.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (repo *SearchRuns) LinkOpportunity(ctx context.Context, searchID, opportunityID string,
	relevanceScore float64) error {
	return repo.db.WithContext(ctx).Create(&models.SearchRunOpportunity{
		SearchID:       searchID,
		OpportunityID:  opportunityID,
		RelevanceScore: relevanceScore,
		CreatedAt:      time.Now().UTC(),
	}).Error
}

// RemoveOldRuns prunes runs created before the expiration time together
// with their opportunity links. Records themselves are untouched.
func (repo *SearchRuns) RemoveOldRuns(ctx context.Context, expirationTime time.Time) (int64, error) {

	err := repo.db.WithContext(ctx).
		Where("search_id IN (?)", repo.db.Model(&models.SearchRun{}).
			Select("id").Where("created_at < ?", expirationTime)).
		Delete(&models.SearchRunOpportunity{}).Error
	if err != nil {
		return 0, err
	}

	result := repo.db.WithContext(ctx).Delete(&models.SearchRun{}, "created_at < ?", expirationTime)
	return result.RowsAffected, result.Error
}
