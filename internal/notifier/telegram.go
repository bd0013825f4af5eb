package notifier

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/oppradar/oppradar/internal/events"
	"github.com/oppradar/oppradar/internal/logger"
	log "github.com/sirupsen/logrus"
)

// TelegramNotifier forwards newly ingested opportunities to a Telegram
// chat. It only listens on the bus; it never talks to the store.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	bus    EventBus.Bus
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64, bus EventBus.Bus) (*TelegramNotifier, error) {

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	n := &TelegramNotifier{bot: bot, bus: bus, chatID: chatID}
	if err := bus.Subscribe(events.OpportunityFoundTopic, n.onOpportunityFound); err != nil {
		return nil, err
	}

	log.Infof("telegram notifier enabled for chat %v", chatID)
	return n, nil
}

func (n *TelegramNotifier) Stop() {
	_ = n.bus.Unsubscribe(events.OpportunityFoundTopic, n.onOpportunityFound)
}

func (n *TelegramNotifier) onOpportunityFound(event events.OpportunityFound) {

	text := fmt.Sprintf("New %v found: %v\n%v\nCountry: %v",
		event.Type, event.Title, event.Url, event.Country)

	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("failed to send notification: %v", err)
	}
}
