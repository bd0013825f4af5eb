package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/oppradar/oppradar/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Opportunity{})
	if err != nil {
		return fmt.Errorf("failed to migrate Opportunity entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SearchRun{})
	if err != nil {
		return fmt.Errorf("failed to migrate SearchRun entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SearchRunOpportunity{})
	if err != nil {
		return fmt.Errorf("failed to migrate SearchRunOpportunity entity: %w", err)
	}

	// The unique index on url is the safety net for two runs racing on
	// the same hit: the second insert fails and is counted as a duplicate.
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_opportunities_url ON opportunities (url); " +
		"CREATE INDEX IF NOT EXISTS idx_opportunities_status ON opportunities (status); " +
		"CREATE INDEX IF NOT EXISTS idx_opportunities_type ON opportunities (type);").
		Error; err != nil {
		return fmt.Errorf("failed to create opportunity indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
