package events

import "context"

// StreamTx carries transaction lifecycle events for all accounts.
const StreamTx = "events:tx"

// Event types
const (
	EventTransactionSubmitted = "transaction_submitted"
	EventTransactionConfirmed = "transaction_confirmed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Account returns the payload account field, if any.
func (e Event) Account() string {
	s, _ := e.Payload["account"].(string)
	return s
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher is used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
