package models

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type OpportunityType string

const (
	TypeScholarship OpportunityType = "scholarship"
	TypeFellowship  OpportunityType = "fellowship"
	TypeGrant       OpportunityType = "grant"
	TypeAccelerator OpportunityType = "accelerator"
	TypeInternship  OpportunityType = "internship"
	TypeCompetition OpportunityType = "competition"
	TypeAward       OpportunityType = "award"
	TypeOther       OpportunityType = "other"
)

func OpportunityTypes() []OpportunityType {
	return []OpportunityType{TypeScholarship, TypeFellowship, TypeGrant, TypeAccelerator,
		TypeInternship, TypeCompetition, TypeAward, TypeOther}
}

func ToOpportunityType(s string) (OpportunityType, error) {
	for _, t := range OpportunityTypes() {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid opportunity type: %v", s)
}

type OpportunityStatus string

const (
	StatusActive    OpportunityStatus = "active"
	StatusExpired   OpportunityStatus = "expired"
	StatusClosed    OpportunityStatus = "closed"
	StatusDuplicate OpportunityStatus = "duplicate"
)

func ToOpportunityStatus(s string) (OpportunityStatus, error) {
	switch s {
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusExpired):
		return StatusExpired, nil
	case string(StatusClosed):
		return StatusClosed, nil
	case string(StatusDuplicate):
		return StatusDuplicate, nil
	default:
		return "", fmt.Errorf("invalid opportunity status: %v", s)
	}
}

const DefaultCurrency = "USD"

// Opportunity is the durable record assembled from one search hit.
// Uniqueness is by Url: the table carries a unique index on it and the
// ingestor treats a constraint violation as "already known".
type Opportunity struct {
	ID                      string `gorm:"primaryKey"`
	Title                   string
	Description             string
	Organization            string
	Url                     string
	Type                    OpportunityType
	Country                 string
	Region                  string
	ApplicationDeadline     *time.Time
	StartDate               *time.Time
	EndDate                 *time.Time
	AmountMin               *float64
	AmountMax               *float64
	Currency                string
	EligibilityCriteria     string
	ApplicationRequirements string
	Benefits                string
	Tags                    string
	SourceDomain            string
	RawContent              string
	ExtractedData           []byte
	Status                  OpportunityStatus
	CreatedAt               time.Time
	UpdatedAt               time.Time
	LastCrawledAt           time.Time
}

// OpportunityParams carries everything the builder needs. Callers resolve
// precedence before filling it in: filter overrides beat extracted values,
// defaults (id, status, currency, timestamps) fill whatever is left empty.
type OpportunityParams struct {
	Title                   string
	Description             string
	Organization            string
	Url                     string
	Type                    OpportunityType
	Country                 string
	Region                  string
	ApplicationDeadline     *time.Time
	StartDate               *time.Time
	EndDate                 *time.Time
	AmountMin               *float64
	AmountMax               *float64
	Currency                string
	EligibilityCriteria     string
	ApplicationRequirements string
	Benefits                string
	Tags                    []string
	SourceDomain            string
	RawContent              string
	ExtractedData           any
	Status                  OpportunityStatus
}

func NewOpportunity(p OpportunityParams) *Opportunity {

	now := time.Now().UTC()

	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	status := p.Status
	if status == "" {
		status = StatusActive
	}

	var extracted []byte
	if p.ExtractedData != nil {
		extracted, _ = json.Marshal(p.ExtractedData)
	}

	return &Opportunity{
		ID:                      uuid.NewString(),
		Title:                   p.Title,
		Description:             p.Description,
		Organization:            p.Organization,
		Url:                     p.Url,
		Type:                    p.Type,
		Country:                 p.Country,
		Region:                  p.Region,
		ApplicationDeadline:     p.ApplicationDeadline,
		StartDate:               p.StartDate,
		EndDate:                 p.EndDate,
		AmountMin:               p.AmountMin,
		AmountMax:               p.AmountMax,
		Currency:                currency,
		EligibilityCriteria:     p.EligibilityCriteria,
		ApplicationRequirements: p.ApplicationRequirements,
		Benefits:                p.Benefits,
		Tags:                    strings.Join(p.Tags, ","),
		SourceDomain:            p.SourceDomain,
		RawContent:              p.RawContent,
		ExtractedData:           extracted,
		Status:                  status,
		CreatedAt:               now,
		UpdatedAt:               now,
		LastCrawledAt:           now,
	}
}

func (o *Opportunity) Validate() error {

	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("title is required")
	}

	parsed, err := url.Parse(o.Url)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("valid url is required, got: %v", o.Url)
	}

	if _, err := ToOpportunityType(string(o.Type)); err != nil {
		return err
	}

	if o.AmountMin != nil && *o.AmountMin < 0 {
		return fmt.Errorf("minimum amount cannot be negative")
	}

	if o.AmountMax != nil && *o.AmountMax < 0 {
		return fmt.Errorf("maximum amount cannot be negative")
	}

	if o.AmountMin != nil && o.AmountMax != nil && *o.AmountMin > *o.AmountMax {
		return fmt.Errorf("minimum amount cannot be greater than maximum amount")
	}

	return nil
}

func (o *Opportunity) TagsAsArray() []string {
	if o.Tags == "" {
		return []string{}
	}
	return strings.Split(o.Tags, ",")
}

func (o *Opportunity) IsExpired() bool {
	if o.ApplicationDeadline == nil {
		return false
	}
	return o.ApplicationDeadline.Before(time.Now())
}

// DaysUntilDeadline returns nil when no deadline is set.
func (o *Opportunity) DaysUntilDeadline() *int {
	if o.ApplicationDeadline == nil {
		return nil
	}
	days := int(math.Floor(time.Until(*o.ApplicationDeadline).Hours() / 24))
	return &days
}

type AmountView struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
}

type OpportunityView struct {
	ID                      string     `json:"id"`
	Title                   string     `json:"title"`
	Description             string     `json:"description,omitempty"`
	Organization            string     `json:"organization,omitempty"`
	Url                     string     `json:"url"`
	Type                    string     `json:"opportunity_type"`
	Country                 string     `json:"country,omitempty"`
	Region                  string     `json:"region,omitempty"`
	ApplicationDeadline     *time.Time `json:"application_deadline,omitempty"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	EndDate                 *time.Time `json:"end_date,omitempty"`
	Amount                  AmountView `json:"amount"`
	EligibilityCriteria     string     `json:"eligibility_criteria,omitempty"`
	ApplicationRequirements string     `json:"application_requirements,omitempty"`
	Benefits                string     `json:"benefits,omitempty"`
	Tags                    []string   `json:"tags"`
	SourceDomain            string     `json:"source_domain,omitempty"`
	Status                  string     `json:"status"`
	IsExpired               bool       `json:"is_expired"`
	DaysUntilDeadline       *int       `json:"days_until_deadline"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	LastCrawledAt           time.Time  `json:"last_crawled_at"`
}

func (o *Opportunity) ToView() OpportunityView {
	return OpportunityView{
		ID:                      o.ID,
		Title:                   o.Title,
		Description:             o.Description,
		Organization:            o.Organization,
		Url:                     o.Url,
		Type:                    string(o.Type),
		Country:                 o.Country,
		Region:                  o.Region,
		ApplicationDeadline:     o.ApplicationDeadline,
		StartDate:               o.StartDate,
		EndDate:                 o.EndDate,
		Amount:                  AmountView{Min: o.AmountMin, Max: o.AmountMax, Currency: o.Currency},
		EligibilityCriteria:     o.EligibilityCriteria,
		ApplicationRequirements: o.ApplicationRequirements,
		Benefits:                o.Benefits,
		Tags:                    o.TagsAsArray(),
		SourceDomain:            o.SourceDomain,
		Status:                  string(o.Status),
		IsExpired:               o.IsExpired(),
		DaysUntilDeadline:       o.DaysUntilDeadline(),
		CreatedAt:               o.CreatedAt,
		UpdatedAt:               o.UpdatedAt,
		LastCrawledAt:           o.LastCrawledAt,
	}
}

func ToViews(opportunities []Opportunity) []OpportunityView {
	return lo.Map(opportunities, func(o Opportunity, _ int) OpportunityView {
		return o.ToView()
	})
}
