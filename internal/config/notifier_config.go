package config

import "github.com/spf13/viper"

// NotifierConfig is optional: an empty token disables the Telegram
// notifier entirely.
type NotifierConfig struct {
	TgToken  string `mapstructure:"tg_token"`
	TgChatID int64  `mapstructure:"tg_chat_id"`
}

func (config NotifierConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("notifier.tg_token", "TG_TOKEN")
	if err != nil {
		return err
	}

	return viper.BindEnv("notifier.tg_chat_id", "TG_CHAT_ID")
}
