package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/oppradar/oppradar/internal/clients/exa"
	"github.com/oppradar/oppradar/internal/domain/models"
	"github.com/oppradar/oppradar/internal/events"
	"github.com/oppradar/oppradar/internal/extractor"
	"github.com/oppradar/oppradar/internal/logger"
	"github.com/oppradar/oppradar/internal/metrics"
	"github.com/oppradar/oppradar/internal/repositories"
	"github.com/pkg/errors"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type searchClient interface {
	Search(ctx context.Context, query string, filters exa.SearchFilters) ([]exa.Result, error)
}

type opportunityIngestRepository interface {
	FindByURL(ctx context.Context, url string) (*models.Opportunity, error)
	Add(ctx context.Context, opportunity *models.Opportunity) error
}

type searchRunRepository interface {
	Add(ctx context.Context, run *models.SearchRun) error
	LinkOpportunity(ctx context.Context, searchID, opportunityID string, relevanceScore float64) error
}

// IngestResult aggregates one run's per-hit outcomes.
type IngestResult struct {
	SearchID         string `json:"searchId"`
	TotalFound       int    `json:"totalFound"`
	NewOpportunities int    `json:"newOpportunities"`
	Duplicates       int    `json:"duplicates"`
	Errors           int    `json:"errors"`
}

// Ingestor is the deduplicating pipeline: search, extract, validate,
// dedup by url, persist. Once the provider call succeeds the run never
// fails outright; per-hit failures are absorbed into the error count.
type Ingestor struct {
	bus           EventBus.Bus
	client        searchClient
	opportunities opportunityIngestRepository
	searchRuns    searchRunRepository
	knownURLs     *gocache.Cache
}

func NewIngestor(bus EventBus.Bus, client searchClient, opportunityRepo opportunityIngestRepository,
	searchRunRepo searchRunRepository) *Ingestor {
	return &Ingestor{
		bus:           bus,
		client:        client,
		opportunities: opportunityRepo,
		searchRuns:    searchRunRepo,
		knownURLs:     gocache.New(10*time.Minute, 20*time.Minute),
	}
}

func (i *Ingestor) Ingest(ctx context.Context, query string, filters exa.SearchFilters) (*IngestResult, error) {

	start := time.Now()
	log.Infof("starting opportunity search for query: %v", query)

	results, err := i.client.Search(ctx, query, filters)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeExaApi).Errorf("search failed: %v", err)
		return nil, err
	}
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	// Zero results: report a fresh run id but persist nothing.
	if len(results) == 0 {
		log.Info("no opportunities found for query")
		return &IngestResult{SearchID: uuid.NewString()}, nil
	}

	run := models.NewSearchRun(query, filters, len(results))
	if err := i.searchRuns.Add(ctx, run); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save search run: %v", err)
		return nil, err
	}
	metrics.SearchRunsCounter.Inc()

	result := &IngestResult{SearchID: run.ID, TotalFound: len(results)}

	for _, hit := range results {
		i.processHit(ctx, hit, filters, run.ID, result)
	}

	log.Infof("search run %v finished: %v found, %v new, %v duplicates, %v errors",
		run.ID, result.TotalFound, result.NewOpportunities, result.Duplicates, result.Errors)
	return result, nil
}

func (i *Ingestor) processHit(ctx context.Context, hit exa.Result, filters exa.SearchFilters,
	searchID string, result *IngestResult) {

	candidate := buildCandidate(hit, filters)

	if err := candidate.Validate(); err != nil {
		log.Warnf("invalid opportunity from %v: %v", hit.Url, err)
		result.Errors++
		metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeError).Inc()
		return
	}

	if _, found := i.knownURLs.Get(candidate.Url); found {
		result.Duplicates++
		metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return
	}

	existing, err := i.opportunities.FindByURL(ctx, candidate.Url)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("duplicate check failed: %v", err)
		result.Errors++
		metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeError).Inc()
		return
	}
	if existing != nil {
		i.rememberURL(candidate.Url)
		result.Duplicates++
		metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return
	}

	if err = i.opportunities.Add(ctx, candidate); err != nil {
		// Lost the check-then-act race against a concurrent run: the
		// storage-level unique index fired, so this url is a duplicate.
		if errors.Is(err, repositories.ErrDuplicateURL) {
			i.rememberURL(candidate.Url)
			result.Duplicates++
			metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save opportunity: %v", err)
		result.Errors++
		metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeError).Inc()
		return
	}
	i.rememberURL(candidate.Url)

	if err = i.searchRuns.LinkOpportunity(ctx, searchID, candidate.ID, models.DefaultRelevanceScore); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to link opportunity %v to search run: %v", candidate.ID, err)
	}

	result.NewOpportunities++
	metrics.IngestedOpportunities.WithLabelValues(metrics.OutcomeNew).Inc()

	i.bus.Publish(events.OpportunityFoundTopic, events.OpportunityFound{
		SearchID: searchID,
		Title:    candidate.Title,
		Url:      candidate.Url,
		Type:     candidate.Type,
		Country:  candidate.Country,
	})
}

func (i *Ingestor) rememberURL(url string) {
	if err := i.knownURLs.Add(url, struct{}{}, gocache.DefaultExpiration); err != nil {
		log.Debugf("failed to cache url: %v", err)
	}
}

// buildCandidate merges in fixed precedence: extracted values first,
// then filter overrides, then defaults for whatever is still empty.
func buildCandidate(hit exa.Result, filters exa.SearchFilters) *models.Opportunity {

	extracted := extractor.Extract(hit.Title, hit.Text, hit.Html)
	pageMeta := extractor.ExtractPageMetadata(hit.Html)

	country := extracted.Country
	if filters.Country != "" && filters.Country != exa.GlobalCountry {
		country = filters.Country
	}

	description := hit.Text
	if description == "" {
		description = pageMeta.MetaDescription
	}

	return models.NewOpportunity(models.OpportunityParams{
		Title:               hit.Title,
		Description:         description,
		Organization:        pageMeta.Organization,
		Url:                 hit.Url,
		Type:                extracted.Type,
		Country:             country,
		ApplicationDeadline: extracted.Deadline,
		AmountMin:           extracted.AmountMin,
		AmountMax:           extracted.AmountMax,
		Tags:                extracted.Tags,
		SourceDomain:        extractor.SourceDomain(hit.Url),
		RawContent:          hit.Html,
		ExtractedData:       extractor.ExtractStructured(hit.Text),
	})
}
