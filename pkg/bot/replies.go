package bot

import (
	"github.com/skynet2/telegram-webhook-relay/pkg/relay"
)

const (
	StartText = "Hey there! I'm Tanya! Type /help to know more!"
	HelpText  = "Here to help! Try sending /photo or /caption!"

	NoReplyText         = "Sorry, I had trouble processing that!"
	HTTPErrorText       = "I'm having technical difficulties. Please try again later!"
	ConnectionIssueText = "Sorry, I'm having connection issues. Please try again!"
)

// ReplyText turns a relay result into the text shown to the user.
func ReplyText(res relay.Result) string {
	switch res.Kind {
	case relay.ResultSuccess:
		if res.Reply == nil || *res.Reply == "" {
			return NoReplyText
		}

		return *res.Reply
	case relay.ResultHTTPError:
		return HTTPErrorText
	default:
		return ConnectionIssueText
	}
}
