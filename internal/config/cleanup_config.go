package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type CleanupConfig struct {
	RunRetentionInDays int `mapstructure:"run_retention_days"`
}

func (config CleanupConfig) validate() error {
	if config.RunRetentionInDays < 0 {
		return fmt.Errorf("run retention days must be non-negative")
	}
	return nil
}

func (config CleanupConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("cleanup.run_retention_days", "RUN_RETENTION_DAYS")
}
