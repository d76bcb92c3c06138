package common

import "github.com/cockroachdb/errors"

var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")
	ErrInvalidWebhook  = errors.New("invalid webhook url")
	ErrMalformedReply  = errors.New("webhook reply is not a json object")
)
