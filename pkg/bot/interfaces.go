package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/skynet2/telegram-webhook-relay/pkg/relay"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package bot_test -source=interfaces.go

type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Relay interface {
	Forward(ctx context.Context, message relay.InboundMessage) relay.Result
}
