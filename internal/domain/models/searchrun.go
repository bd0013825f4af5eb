package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultRelevanceScore is the fixed weight attached to search-opportunity
// links until a real ranking signal exists.
const DefaultRelevanceScore = 0.8

// SearchRun records one invocation of the ingestion pipeline. Runs are
// write-once: never updated, pruned only by the retention cleaner.
type SearchRun struct {
	ID           string `gorm:"primaryKey"`
	QueryText    string
	Filters      []byte
	ResultsCount int
	CreatedAt    time.Time
}

func NewSearchRun(queryText string, filters any, resultsCount int) *SearchRun {
	encoded, _ := json.Marshal(filters)
	return &SearchRun{
		ID:           uuid.NewString(),
		QueryText:    queryText,
		Filters:      encoded,
		ResultsCount: resultsCount,
		CreatedAt:    time.Now().UTC(),
	}
}

type SearchRunOpportunity struct {
	SearchID       string `gorm:"primaryKey"`
	OpportunityID  string `gorm:"primaryKey"`
	RelevanceScore float64
	CreatedAt      time.Time
}
