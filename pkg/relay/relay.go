package relay

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/telegram-webhook-relay/pkg/common"
)

type ClientFactory func() *req.Client

// Relay forwards chat messages to the webhook over one lazily opened session.
type Relay struct {
	webhookURL string
	newClient  ClientFactory

	mut     sync.Mutex
	session *req.Client
}

func NewRelay(
	webhookURL string,
	newClient ClientFactory,
) *Relay {
	return &Relay{
		webhookURL: webhookURL,
		newClient:  newClient,
	}
}

// DefaultClientFactory builds sessions with the given timeout. Zero keeps the
// client default.
func DefaultClientFactory(timeout time.Duration) ClientFactory {
	return func() *req.Client {
		cl := req.C()
		if timeout > 0 {
			cl.SetTimeout(timeout)
		}

		return cl
	}
}

func (r *Relay) getSession() *req.Client {
	r.mut.Lock()
	defer r.mut.Unlock()

	if r.session == nil {
		r.session = r.newClient()
	}

	return r.session
}

func (r *Relay) IsOpen() bool {
	r.mut.Lock()
	defer r.mut.Unlock()

	return r.session != nil
}

// Close releases the session. Calling it on a closed relay does nothing.
func (r *Relay) Close() {
	r.mut.Lock()
	defer r.mut.Unlock()

	if r.session == nil {
		return
	}

	r.session.GetClient().CloseIdleConnections()
	r.session = nil
}

func (r *Relay) Forward(
	ctx context.Context,
	message InboundMessage,
) Result {
	requestID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().
		Str("request_id", requestID).
		Int64("message_id", message.MessageID).
		Logger()

	resp, err := r.getSession().R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetBody(webhookRequest{Message: message}).
		Post(r.webhookURL)
	if err != nil {
		logger.Error().Err(err).Msg("error sending to webhook")

		return Result{
			Kind: ResultTransportError,
			Err:  errors.Wrap(err, "webhook request failed"),
		}
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Msg("webhook error")

		return Result{
			Kind:       ResultHTTPError,
			StatusCode: resp.StatusCode,
			Err:        errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String()),
		}
	}

	var body *webhookResponse
	if err = resp.UnmarshalJson(&body); err != nil {
		logger.Error().Err(err).Msg("error decoding webhook reply")

		return Result{
			Kind:       ResultTransportError,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "failed to decode webhook reply"),
		}
	}

	if body == nil {
		logger.Error().Err(common.ErrMalformedReply).Msg("error decoding webhook reply")

		return Result{
			Kind:       ResultTransportError,
			StatusCode: resp.StatusCode,
			Err:        common.ErrMalformedReply,
		}
	}

	result := Result{
		Kind:       ResultSuccess,
		StatusCode: resp.StatusCode,
	}

	if reply := lo.FromPtr(body.Response); reply != "" {
		result.Reply = &reply
	}

	return result
}
