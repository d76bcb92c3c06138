package relay

type InboundMessage struct {
	MessageID int64  `json:"message_id"`
	From      Sender `json:"from"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
}

type Sender struct {
	ID        int64   `json:"id"`
	Username  *string `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type webhookRequest struct {
	Message InboundMessage `json:"message"`
}

type webhookResponse struct {
	Response *string `json:"response"`
}

type ResultKind int32

const (
	ResultSuccess        = ResultKind(0)
	ResultHTTPError      = ResultKind(1)
	ResultTransportError = ResultKind(2)
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultHTTPError:
		return "http_error"
	case ResultTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single webhook call. Reply is nil when the
// webhook answered 200 without a usable response field.
type Result struct {
	Kind       ResultKind
	Reply      *string
	StatusCode int
	Err        error
}
