package shared

import "context"

// EventHandler processes domain events. EventTypes declares which
// events the handler wants; the bus uses it when a subscription does
// not name types explicitly.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventBus routes domain events to subscribed handlers. Publish
// reports handler failures to the caller, which matters at the webhook
// boundary where a failure must turn into a redelivery.
type EventBus interface {
	Publish(ctx context.Context, events ...DomainEvent) error
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}
