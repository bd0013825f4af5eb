package config

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	override := Config{
		DB:  DBConfig{ConnectionString: "file:override.db"},
		Exa: ExaConfig{APIKey: "overrideKey", BaseURL: "https://override.exa.ai", MaxRequestsPerSecond: 9},
		API: APIConfig{Port: 4000, MetricsPort: 9090},
		Notifier: NotifierConfig{
			TgToken:  "overrideToken",
			TgChatID: 12345,
		},
		Cleanup: CleanupConfig{RunRetentionInDays: 14},
	}
	os.Setenv("MODE", "test")

	os.Setenv("DB_CONNECTION_STRING", override.DB.ConnectionString)
	os.Setenv("EXA_API_KEY", override.Exa.APIKey)
	os.Setenv("EXA_BASE_URL", override.Exa.BaseURL)
	os.Setenv("EXA_MAX_REQUESTS_PER_SECOND", "9")
	os.Setenv("API_PORT", strconv.Itoa(override.API.Port))
	os.Setenv("METRICS_PORT", strconv.Itoa(override.API.MetricsPort))
	os.Setenv("TG_TOKEN", override.Notifier.TgToken)
	os.Setenv("TG_CHAT_ID", strconv.FormatInt(override.Notifier.TgChatID, 10))
	os.Setenv("RUN_RETENTION_DAYS", strconv.Itoa(override.Cleanup.RunRetentionInDays))

	cfg := Get()

	assert.Equal(t, override.DB.ConnectionString, cfg.DB.ConnectionString)
	assert.Equal(t, override.Exa.APIKey, cfg.Exa.APIKey)
	assert.Equal(t, override.Exa.BaseURL, cfg.Exa.BaseURL)
	assert.Equal(t, override.Exa.MaxRequestsPerSecond, cfg.Exa.MaxRequestsPerSecond)
	assert.Equal(t, override.API.Port, cfg.API.Port)
	assert.Equal(t, override.API.MetricsPort, cfg.API.MetricsPort)
	assert.Equal(t, override.Notifier.TgToken, cfg.Notifier.TgToken)
	assert.Equal(t, override.Notifier.TgChatID, cfg.Notifier.TgChatID)
	assert.Equal(t, override.Cleanup.RunRetentionInDays, cfg.Cleanup.RunRetentionInDays)
}
