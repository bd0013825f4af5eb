package exa

import (
	"testing"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_BuildSearchQuery_AppendsPartsInFixedOrder(t *testing.T) {

	min, max := 1000.0, 5000.0
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	query := BuildSearchQuery("engineering students", SearchFilters{
		Type:          models.TypeScholarship,
		Country:       "Kenya",
		AmountMin:     &min,
		AmountMax:     &max,
		DeadlineAfter: &deadline,
		Tags:          []string{"women", "stem"},
	})

	assert.Equal(t, "engineering students scholarship financial aid tuition Kenya $1000 to $5000 2026 women stem", query)
}

func Test_BuildSearchQuery_PlainQuery(t *testing.T) {
	assert.Equal(t, "grants for artists", BuildSearchQuery("grants for artists", SearchFilters{}))
}

func Test_BuildSearchQuery_SkipsGlobalCountry(t *testing.T) {

	query := BuildSearchQuery("grants", SearchFilters{Country: "global"})
	assert.Equal(t, "grants", query)
}

func Test_BuildSearchQuery_MinimumOnly(t *testing.T) {

	min := 500.0
	query := BuildSearchQuery("grants", SearchFilters{AmountMin: &min})
	assert.Equal(t, "grants minimum $500", query)
}

func Test_BuildSearchQuery_MaximumOnly(t *testing.T) {

	max := 2000.0
	query := BuildSearchQuery("grants", SearchFilters{AmountMax: &max})
	assert.Equal(t, "grants maximum $2000", query)
}

func Test_BuildSearchQuery_UnknownTypeAddsNothing(t *testing.T) {

	query := BuildSearchQuery("anything", SearchFilters{Type: models.TypeOther})
	assert.Equal(t, "anything", query)
}

func Test_StartCrawlDate_SixMonthsBack(t *testing.T) {

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-15", startCrawlDate(now))
}
