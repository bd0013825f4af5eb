package extractor

import (
	"testing"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ClassifyType_FirstGroupWins(t *testing.T) {

	tests := []struct {
		name        string
		title       string
		description string
		expected    models.OpportunityType
	}{
		{"scholarship beats grant", "Grant Scholarship for Women", "", models.TypeScholarship},
		{"financial aid maps to scholarship", "Financial Aid Program", "", models.TypeScholarship},
		{"fellowship", "Postdoc Fellowship 2025", "", models.TypeFellowship},
		{"grant via funding keyword", "Research Funding Available", "", models.TypeGrant},
		{"accelerator", "Join our startup Incubator", "", models.TypeAccelerator},
		{"internship", "Summer internship", "", models.TypeInternship},
		{"competition", "Annual coding contest", "", models.TypeCompetition},
		{"award", "Lifetime Achievement Award", "", models.TypeAward},
		{"no keywords", "Something else entirely", "plain text", models.TypeOther},
		{"keyword in description", "Untitled", "apply for this grant today", models.TypeGrant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyType(tt.title, tt.description))
		})
	}
}

func Test_ExtractCountry_MatchesFirstAlias(t *testing.T) {

	assert.Equal(t, "United States", ExtractCountry("Study in the USA", ""))
	assert.Equal(t, "United Kingdom", ExtractCountry("", "open to UK residents"))
	assert.Equal(t, "South Korea", ExtractCountry("Scholarships in South Korea", ""))
	assert.Equal(t, "Global", ExtractCountry("Worldwide opportunity", "no country named"))
}

func Test_ExtractCountry_RequiresWordBoundary(t *testing.T) {

	// "us" inside "business" must not classify as United States.
	assert.Equal(t, "Global", ExtractCountry("Business plan competition", "for business students"))
	assert.Equal(t, "United States", ExtractCountry("Business plan competition in the US", ""))
}

func Test_ExtractDeadline_FamilyPriority(t *testing.T) {

	// The bare date appears first in the text, but the deadline-keyword
	// family is tried first and wins.
	deadline := ExtractDeadline("Posted 01/01/2024", "Application deadline: 06/30/2025", "")
	require.NotNil(t, deadline)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *deadline)
}

func Test_ExtractDeadline_ApplyByFamily(t *testing.T) {

	deadline := ExtractDeadline("", "apply by 12/01/2025 to be considered", "")
	require.NotNil(t, deadline)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), *deadline)
}

func Test_ExtractDeadline_TwoDigitYearCorrection(t *testing.T) {

	deadline := ExtractDeadline("", "deadline: 03/15/09", "")
	require.NotNil(t, deadline)
	assert.Equal(t, 2009, deadline.Year())
	assert.Equal(t, time.March, deadline.Month())
	assert.Equal(t, 15, deadline.Day())
}

func Test_ExtractDeadline_BareDateFallback(t *testing.T) {

	deadline := ExtractDeadline("Event on 2025-09-01", "", "")
	require.NotNil(t, deadline)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *deadline)
}

func Test_ExtractDeadline_UnparseableTokenYieldsNothing(t *testing.T) {

	assert.Nil(t, ExtractDeadline("", "deadline: 13/45/25", ""))
	assert.Nil(t, ExtractDeadline("no dates here", "none", ""))
}

func Test_ExtractAmounts_RangePatternWinsOverUpTo(t *testing.T) {

	min, max := ExtractAmounts("", "Award amount: $1,000 - $5,000, up to $9,000 also mentioned", "")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 1000.0, *min)
	assert.Equal(t, 5000.0, *max)
}

func Test_ExtractAmounts_ToRange(t *testing.T) {

	min, max := ExtractAmounts("", "Grants of $2,500 to $10,000 available", "")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 2500.0, *min)
	assert.Equal(t, 10000.0, *max)
}

func Test_ExtractAmounts_SingleValuesKeepRunningMax(t *testing.T) {

	min, max := ExtractAmounts("", "First prize $500, second prize $1,500, third $250", "")
	require.NotNil(t, min)
	assert.Equal(t, 1500.0, *min)
	assert.Nil(t, max)
}

func Test_ExtractAmounts_UpToSetsMinOnly(t *testing.T) {

	min, max := ExtractAmounts("", "Receive up to $7,500 in funding", "")
	require.NotNil(t, min)
	assert.Equal(t, 7500.0, *min)
	assert.Nil(t, max)
}

func Test_ExtractAmounts_NoAmounts(t *testing.T) {

	min, max := ExtractAmounts("free program", "no money involved", "")
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func Test_GenerateTags_SeedsWithTypeAndDeduplicates(t *testing.T) {

	tags := GenerateTags("STEM Scholarship for Women", "open to female graduate students in science",
		models.TypeScholarship)

	assert.Contains(t, tags, "scholarship")
	assert.Contains(t, tags, "women")
	assert.Contains(t, tags, "stem")
	assert.Contains(t, tags, "graduate")
	assert.Equal(t, string(models.TypeScholarship), tags[0])

	seen := map[string]int{}
	for _, tag := range tags {
		seen[tag]++
		assert.Equal(t, 1, seen[tag], "tag %v duplicated", tag)
	}
}

func Test_GenerateTags_NoKeywordMatches(t *testing.T) {

	tags := GenerateTags("quiet title", "nothing relevant", models.TypeOther)
	assert.Equal(t, []string{"other"}, tags)
}

func Test_Extract_FullPipeline(t *testing.T) {

	fields := Extract("Women in STEM Scholarship",
		"Open to US undergraduate students. Deadline: 05/01/2026. Awards of $1,000 - $3,000.", "")

	assert.Equal(t, models.TypeScholarship, fields.Type)
	assert.Equal(t, "United States", fields.Country)
	require.NotNil(t, fields.Deadline)
	assert.Equal(t, 2026, fields.Deadline.Year())
	require.NotNil(t, fields.AmountMin)
	require.NotNil(t, fields.AmountMax)
	assert.Equal(t, 1000.0, *fields.AmountMin)
	assert.Equal(t, 3000.0, *fields.AmountMax)
	assert.Contains(t, fields.Tags, "women")
}

func Test_ExtractStructured_CollectsSignals(t *testing.T) {

	data := ExtractStructured("Contact grants@example.org before 12/31/2025. Budget: $15,000.")

	assert.Contains(t, data.Emails, "grants@example.org")
	assert.Contains(t, data.Dates, "12/31/2025")
	assert.Contains(t, data.Amounts, "$15,000")
}

func Test_ExtractStructured_EmptyInput(t *testing.T) {

	data := ExtractStructured("")
	assert.Empty(t, data.Dates)
	assert.Empty(t, data.Amounts)
	assert.Empty(t, data.Emails)
	assert.Empty(t, data.Phones)
}
