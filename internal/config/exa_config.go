package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ExaConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
}

func (config ExaConfig) validate() error {
	if config.APIKey == "" {
		return fmt.Errorf("missing variable: exa api key")
	}
	return nil
}

func (config ExaConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("exa.api_key", "EXA_API_KEY")
	if err != nil {
		return err
	}

	err = viper.BindEnv("exa.base_url", "EXA_BASE_URL")
	if err != nil {
		return err
	}

	return viper.BindEnv("exa.max_requests_per_second", "EXA_MAX_REQUESTS_PER_SECOND")
}
