package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type searchRunCleanupRepository interface {
	RemoveOldRuns(ctx context.Context, expirationTime time.Time) (int64, error)
}

// SearchRunsCleaner prunes old search runs on a daily schedule. It only
// touches run bookkeeping; opportunity records are never removed.
type SearchRunsCleaner struct {
	searchRuns      searchRunCleanupRepository
	cron            *cron.Cron
	retentionInDays int
}

func NewSearchRunsCleaner(searchRuns searchRunCleanupRepository, retentionInDays int) (*SearchRunsCleaner, error) {

	if retentionInDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	c := &SearchRunsCleaner{
		searchRuns:      searchRuns,
		cron:            cron.New(),
		retentionInDays: retentionInDays,
	}

	_, err := c.cron.AddFunc("0 0 * * *", c.cleanOldRuns)
	if err != nil {
		return nil, err
	}

	c.cron.Start()
	log.Infof("search runs cleaner started, retention in days: %d", c.retentionInDays)
	return c, nil
}

func (c *SearchRunsCleaner) Stop() {
	c.cron.Stop()
}

func (c *SearchRunsCleaner) cleanOldRuns() {
	expirationTime := time.Now().Add(-time.Duration(c.retentionInDays) * 24 * time.Hour)
	rowsAffected, err := c.searchRuns.RemoveOldRuns(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("failed to clean old search runs: %v", err)
	} else {
		log.Infof("old search runs cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
