package bot

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/telegram-webhook-relay/pkg/relay"
)

const (
	commandStart = "start"
	commandHelp  = "help"

	defaultPoolSize    = 16
	defaultPollTimeout = 60 * time.Second
)

type Config struct {
	API         BotAPI
	Relay       Relay
	PoolSize    int
	PollTimeout time.Duration
}

type Bot struct {
	api         BotAPI
	relay       Relay
	poolSize    int
	pollTimeout time.Duration
}

func NewBot(cfg *Config) *Bot {
	return &Bot{
		api:         cfg.API,
		relay:       cfg.Relay,
		poolSize:    lo.Ternary(cfg.PoolSize > 0, cfg.PoolSize, defaultPoolSize),
		pollTimeout: lo.Ternary(cfg.PollTimeout > 0, cfg.PollTimeout, defaultPollTimeout),
	}
}

// Run long-polls for updates and handles each one on the worker pool. It
// returns when ctx is cancelled or the update channel is closed, after the
// in-flight updates are handled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(b.pollTimeout.Seconds())

	updates := b.api.GetUpdatesChan(cfg)
	pool := workerpool.New(b.poolSize)

	// in-flight replies still go out after shutdown starts
	handlerCtx := context.WithoutCancel(ctx)

	defer func() {
		b.api.StopReceivingUpdates()
		pool.StopWait()
	}()

	zerolog.Ctx(ctx).Info().Int("pool_size", b.poolSize).Msg("listening for updates")

	for {
		select {
		case <-ctx.Done():
			zerolog.Ctx(ctx).Info().Msg("stopping update loop")
			return nil
		case update, ok := <-updates:
			if !ok {
				zerolog.Ctx(ctx).Info().Msg("update channel closed")
				return nil
			}

			pool.Submit(func() {
				if err := b.HandleUpdate(handlerCtx, update); err != nil {
					zerolog.Ctx(handlerCtx).Error().Err(err).
						Int("update_id", update.UpdateID).
						Msg("failed to handle update")
				}
			})
		}
	}
}

func (b *Bot) HandleUpdate(
	ctx context.Context,
	update tgbotapi.Update,
) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return nil
	}

	logger := zerolog.Ctx(ctx).With().
		Int("update_id", update.UpdateID).
		Int64("chat_id", msg.Chat.ID).
		Logger()
	ctx = logger.WithContext(ctx)

	text, ok := b.reply(ctx, msg)
	if !ok {
		return nil
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		return errors.Wrapf(err, "failed to send reply to chat %d", msg.Chat.ID)
	}

	return nil
}

func (b *Bot) reply(
	ctx context.Context,
	msg *tgbotapi.Message,
) (string, bool) {
	if msg.IsCommand() {
		switch msg.Command() {
		case commandStart:
			return StartText, true
		case commandHelp:
			return HelpText, true
		default:
			zerolog.Ctx(ctx).Debug().Str("command", msg.Command()).Msg("ignoring unknown command")
			return "", false
		}
	}

	res := b.relay.Forward(ctx, ToInboundMessage(msg))

	return ReplyText(res), true
}

func ToInboundMessage(msg *tgbotapi.Message) relay.InboundMessage {
	inbound := relay.InboundMessage{
		MessageID: int64(msg.MessageID),
		Text:      msg.Text,
	}

	if msg.From != nil {
		inbound.From = relay.Sender{
			ID:        msg.From.ID,
			Username:  lo.EmptyableToPtr(msg.From.UserName),
			FirstName: msg.From.FirstName,
			LastName:  lo.EmptyableToPtr(msg.From.LastName),
		}
	}

	if msg.Chat != nil {
		inbound.Chat = relay.Chat{
			ID:   msg.Chat.ID,
			Type: msg.Chat.Type,
		}
	}

	return inbound
}
