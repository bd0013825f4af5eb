package exa

import (
	"fmt"
	"strings"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
)

// GlobalCountry is the filter sentinel meaning "do not bias the query or
// override extraction by country".
const GlobalCountry = "global"

// SearchFilters narrow an opportunity search. All fields are optional.
type SearchFilters struct {
	Type           models.OpportunityType
	Country        string
	AmountMin      *float64
	AmountMax      *float64
	Currency       string
	DeadlineAfter  *time.Time
	DeadlineBefore *time.Time
	Tags           []string
}

// typeKeywords expands a requested opportunity type into the extra terms
// that bias neural search toward that kind of listing.
var typeKeywords = map[models.OpportunityType]string{
	models.TypeScholarship: "scholarship financial aid tuition",
	models.TypeFellowship:  "fellowship research program",
	models.TypeGrant:       "grant funding research",
	models.TypeAccelerator: "accelerator startup incubator",
	models.TypeInternship:  "internship training program",
	models.TypeCompetition: "competition contest challenge",
	models.TypeAward:       "award recognition prize",
}

// BuildSearchQuery assembles the upstream query string. The append order
// (query, type keywords, country, amount, year, tags) affects upstream
// ranking and is kept stable for reproducible runs.
func BuildSearchQuery(query string, filters SearchFilters) string {

	parts := []string{query}

	if keywords, ok := typeKeywords[filters.Type]; ok {
		parts = append(parts, keywords)
	}

	if filters.Country != "" && filters.Country != GlobalCountry {
		parts = append(parts, filters.Country)
	}

	switch {
	case filters.AmountMin != nil && filters.AmountMax != nil:
		parts = append(parts, fmt.Sprintf("$%v to $%v", *filters.AmountMin, *filters.AmountMax))
	case filters.AmountMin != nil:
		parts = append(parts, fmt.Sprintf("minimum $%v", *filters.AmountMin))
	case filters.AmountMax != nil:
		parts = append(parts, fmt.Sprintf("maximum $%v", *filters.AmountMax))
	}

	if filters.DeadlineAfter != nil {
		parts = append(parts, fmt.Sprintf("%d", filters.DeadlineAfter.Year()))
	}

	if len(filters.Tags) > 0 {
		parts = append(parts, strings.Join(filters.Tags, " "))
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// relevantDomains is the allow-list results are scoped to.
func relevantDomains() []string {
	return []string{
		"scholarships.com",
		"fastweb.com",
		"unigo.com",
		"collegeboard.org",
		"studentaid.gov",
		"foundationcenter.org",
		"grantspace.org",
		"grants.gov",
		"ycombinator.com",
		"techstars.com",
		"500.co",
		"university.edu",
		"foundation.org",
		"institute.org",
		"association.org",
		"government.gov",
		"nonprofit.org",
	}
}

const crawlWindow = 6 // months

func startCrawlDate(now time.Time) string {
	return now.AddDate(0, -crawlWindow, 0).Format("2006-01-02")
}
