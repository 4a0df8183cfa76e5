package beckn

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"ondc-seller-adapter/internal/model"
)

// ErrEmptyAction is returned when a context is requested without an
// action name.
var ErrEmptyAction = errors.New("beckn: action must not be empty")

const (
	contextCountry = "IND"
	contextCity    = "*"
	contextTTL     = "PT30S"
)

// ContextBuilder constructs the Beckn context envelope for outbound
// messages. It is pure: a fresh message id and timestamp are generated
// on every call and nothing is mutated afterwards.
type ContextBuilder struct {
	SubscriberID  string
	SubscriberURL string
	Domain        string
	CoreVersion   string
}

// Build returns a context for the given action. The transaction id is
// minted only when the caller supplies none; handlers continuing an
// existing order flow must thread the buyer's transaction id through,
// otherwise select/init/confirm lose correlation with the search that
// started the flow.
func (b ContextBuilder) Build(action, transactionID string) (model.Context, error) {
	if action == "" {
		return model.Context{}, ErrEmptyAction
	}
	if transactionID == "" {
		transactionID = uuid.NewString()
	}
	return model.Context{
		Domain:        b.Domain,
		Country:       contextCountry,
		City:          contextCity,
		Action:        action,
		CoreVersion:   b.CoreVersion,
		BppID:         b.SubscriberID,
		BppURI:        b.SubscriberURL,
		TransactionID: transactionID,
		MessageID:     uuid.NewString(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		TTL:           contextTTL,
	}, nil
}
