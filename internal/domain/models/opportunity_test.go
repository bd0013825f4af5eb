package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() OpportunityParams {
	return OpportunityParams{
		Title: "STEM Scholarship",
		Url:   "https://scholarships.com/stem",
		Type:  TypeScholarship,
	}
}

func Test_NewOpportunity_AppliesDefaults(t *testing.T) {

	opportunity := NewOpportunity(validParams())

	assert.NotEmpty(t, opportunity.ID)
	assert.Equal(t, DefaultCurrency, opportunity.Currency)
	assert.Equal(t, StatusActive, opportunity.Status)
	assert.False(t, opportunity.CreatedAt.IsZero())
	assert.False(t, opportunity.UpdatedAt.IsZero())
	assert.False(t, opportunity.LastCrawledAt.IsZero())
}

func Test_NewOpportunity_KeepsExplicitValues(t *testing.T) {

	params := validParams()
	params.Currency = "EUR"
	params.Status = StatusClosed

	opportunity := NewOpportunity(params)

	assert.Equal(t, "EUR", opportunity.Currency)
	assert.Equal(t, StatusClosed, opportunity.Status)
}

func Test_NewOpportunity_GeneratesUniqueIDs(t *testing.T) {

	first := NewOpportunity(validParams())
	second := NewOpportunity(validParams())
	assert.NotEqual(t, first.ID, second.ID)
}

func Test_Validate_AcceptsValidRecord(t *testing.T) {
	assert.NoError(t, NewOpportunity(validParams()).Validate())
}

func Test_Validate_RejectsInvalidRecords(t *testing.T) {

	amount := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		mutate func(*OpportunityParams)
	}{
		{"empty title", func(p *OpportunityParams) { p.Title = "  " }},
		{"not a url", func(p *OpportunityParams) { p.Url = "not a url" }},
		{"relative url", func(p *OpportunityParams) { p.Url = "/path/only" }},
		{"unknown type", func(p *OpportunityParams) { p.Type = "bursary" }},
		{"negative min amount", func(p *OpportunityParams) { p.AmountMin = amount(-1) }},
		{"negative max amount", func(p *OpportunityParams) { p.AmountMax = amount(-100) }},
		{"min greater than max", func(p *OpportunityParams) {
			p.AmountMin = amount(500)
			p.AmountMax = amount(100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			assert.Error(t, NewOpportunity(params).Validate())
		})
	}
}

func Test_IsExpired(t *testing.T) {

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 0, 30)

	params := validParams()
	params.ApplicationDeadline = &past
	assert.True(t, NewOpportunity(params).IsExpired())

	params.ApplicationDeadline = &future
	assert.False(t, NewOpportunity(params).IsExpired())

	params.ApplicationDeadline = nil
	assert.False(t, NewOpportunity(params).IsExpired())
}

func Test_DaysUntilDeadline(t *testing.T) {

	params := validParams()
	assert.Nil(t, NewOpportunity(params).DaysUntilDeadline())

	deadline := time.Now().Add(10*24*time.Hour + time.Hour)
	params.ApplicationDeadline = &deadline

	days := NewOpportunity(params).DaysUntilDeadline()
	require.NotNil(t, days)
	assert.Equal(t, 10, *days)
}

func Test_TagsRoundTrip(t *testing.T) {

	params := validParams()
	params.Tags = []string{"scholarship", "women", "stem"}

	opportunity := NewOpportunity(params)
	assert.Equal(t, "scholarship,women,stem", opportunity.Tags)
	assert.Equal(t, []string{"scholarship", "women", "stem"}, opportunity.TagsAsArray())

	opportunity.Tags = ""
	assert.Empty(t, opportunity.TagsAsArray())
}

func Test_ToView_WireShape(t *testing.T) {

	amount := 1000.0
	params := validParams()
	params.AmountMin = &amount
	params.Tags = []string{"scholarship"}

	view := NewOpportunity(params).ToView()

	assert.Equal(t, "STEM Scholarship", view.Title)
	assert.Equal(t, string(TypeScholarship), view.Type)
	assert.Equal(t, DefaultCurrency, view.Amount.Currency)
	require.NotNil(t, view.Amount.Min)
	assert.Equal(t, amount, *view.Amount.Min)
	assert.Nil(t, view.Amount.Max)
	assert.Equal(t, []string{"scholarship"}, view.Tags)
	assert.False(t, view.IsExpired)
}

func Test_ToOpportunityType(t *testing.T) {

	parsed, err := ToOpportunityType("grant")
	assert.NoError(t, err)
	assert.Equal(t, TypeGrant, parsed)

	_, err = ToOpportunityType("loan")
	assert.Error(t, err)
}

func Test_ToOpportunityStatus(t *testing.T) {

	parsed, err := ToOpportunityStatus("closed")
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, parsed)

	_, err = ToOpportunityStatus("archived")
	assert.Error(t, err)
}
