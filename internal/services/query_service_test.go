package services

import (
	"context"
	"testing"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/oppradar/oppradar/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQueryRepo struct {
	mock.Mock
}

func (m *mockQueryRepo) List(ctx context.Context, filters repositories.ListFilters,
	page repositories.Pagination) ([]models.Opportunity, int64, error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Opportunity), args.Get(1).(int64), args.Error(2)
}

func (m *mockQueryRepo) GetByID(ctx context.Context, id string) (*models.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *mockQueryRepo) UpdateStatus(ctx context.Context, id string, status models.OpportunityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockQueryRepo) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockQueryRepo) GetStats(ctx context.Context) (*repositories.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Stats), args.Error(1)
}

func (m *mockQueryRepo) CountByType(ctx context.Context) ([]repositories.TypeCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.TypeCount), args.Error(1)
}

func (m *mockQueryRepo) CountByCountry(ctx context.Context) ([]repositories.CountryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.CountryCount), args.Error(1)
}

func Test_QueryService_List_ShouldClampPagination(t *testing.T) {

	repo := &mockQueryRepo{}
	repo.On("List", mock.Anything, mock.Anything, repositories.Pagination{Page: 1, Limit: 20}).
		Return([]models.Opportunity{}, int64(0), nil).Once()
	repo.On("List", mock.Anything, mock.Anything, repositories.Pagination{Page: 3, Limit: 100}).
		Return([]models.Opportunity{}, int64(0), nil).Once()

	service := NewQueryService(repo)

	_, err := service.List(context.Background(), repositories.ListFilters{},
		repositories.Pagination{Page: 0, Limit: 0})
	require.NoError(t, err)

	_, err = service.List(context.Background(), repositories.ListFilters{},
		repositories.Pagination{Page: 3, Limit: 500})
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func Test_QueryService_List_ShouldComputePageCount(t *testing.T) {

	opportunities := []models.Opportunity{
		*models.NewOpportunity(models.OpportunityParams{
			Title: "STEM Scholarship", Url: "https://scholarships.com/stem", Type: models.TypeScholarship,
		}),
	}

	repo := &mockQueryRepo{}
	repo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(opportunities, int64(45), nil)

	service := NewQueryService(repo)
	result, err := service.List(context.Background(), repositories.ListFilters{},
		repositories.Pagination{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.Pages)
	assert.Len(t, result.Opportunities, 1)
}

func Test_QueryService_UpdateStatus_ShouldRejectUnknownStatus(t *testing.T) {

	repo := &mockQueryRepo{}
	service := NewQueryService(repo)

	err := service.UpdateStatus(context.Background(), "some-id", "archived")

	require.Error(t, err)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func Test_QueryService_UpdateStatus_ShouldPassNotFoundThrough(t *testing.T) {

	repo := &mockQueryRepo{}
	repo.On("UpdateStatus", mock.Anything, "missing-id", models.StatusClosed).
		Return(repositories.ErrNotFound)

	service := NewQueryService(repo)
	err := service.UpdateStatus(context.Background(), "missing-id", "closed")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func Test_QueryService_Delete_ShouldBeIdempotent(t *testing.T) {

	repo := &mockQueryRepo{}
	repo.On("Remove", mock.Anything, "any-id").Return(nil)

	service := NewQueryService(repo)

	assert.NoError(t, service.Delete(context.Background(), "any-id"))
	assert.NoError(t, service.Delete(context.Background(), "any-id"))
}
