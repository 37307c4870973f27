package infrastructure

import (
	"bonusbot/domain/events"
)

// NoopEventPublisher drops every event. It stands in when NATS_SERVERS is unset.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish does nothing with the event
func (n *NoopEventPublisher) Publish(event events.Event) error {
	return nil
}
