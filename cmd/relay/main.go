package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skynet2/telegram-webhook-relay/pkg/bot"
	"github.com/skynet2/telegram-webhook-relay/pkg/common"
	"github.com/skynet2/telegram-webhook-relay/pkg/config"
	"github.com/skynet2/telegram-webhook-relay/pkg/relay"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, common.ErrMissingBotToken) {
			log.Error().Msg("Please set TELEGRAM_BOT_TOKEN environment variable")
		} else {
			log.Error().Err(err).Msg("failed to start bot")
		}

		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = log.Logger.WithContext(ctx)

	webhookRelay := relay.NewRelay(cfg.WebhookURL, relay.DefaultClientFactory(cfg.WebhookTimeout))
	defer webhookRelay.Close()

	if err = tgbotapi.SetLogger(newBotLogger(log.Logger)); err != nil {
		return errors.Wrap(err, "failed to set telegram logger")
	}

	// long poll requests must outlive the poll timeout
	tgClient := req.C().SetTimeout(cfg.PollTimeout + 15*time.Second)

	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, tgClient.GetClient())
	if err != nil {
		return errors.Wrap(err, "failed to create telegram client")
	}
	api.Debug = cfg.TelegramDebug

	srv := &http.Server{
		Handler:      NewRouter(),
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	go func() {
		if srvErr := srv.ListenAndServe(); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			log.Error().Err(srvErr).Msg("health server failed")
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("bot", api.Self.UserName).
		Str("webhook", cfg.WebhookURL).
		Int("port", cfg.Port).
		Msg("Starting Sassy Tanya Bot...")

	err = bot.NewBot(&bot.Config{
		API:         api,
		Relay:       webhookRelay,
		PoolSize:    cfg.WorkerPoolSize,
		PollTimeout: cfg.PollTimeout,
	}).Run(ctx)

	log.Info().Msg("bot stopped")

	return err
}
