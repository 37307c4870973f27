package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bonusbot/domain/events"
	"bonusbot/infrastructure/observability"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventEnvelope wraps every published event payload
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// messagePublisher is the part of NATSClient the publisher needs
type messagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte, msgID string) error
}

// NATSEventPublisher implements interfaces.EventPublisher using NATS
type NATSEventPublisher struct {
	client        messagePublisher
	subjectMapper *EventSubjectMapper
	timeout       time.Duration
	newID         func() string
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(client *NATSClient, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return newNATSEventPublisher(client, subjectMapper)
}

func newNATSEventPublisher(client messagePublisher, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		client:        client,
		subjectMapper: subjectMapper,
		timeout:       5 * time.Second,
		newID:         func() string { return uuid.New().String() },
		now:           time.Now,
	}
}

// Publish wraps event in an envelope and publishes it on the mapped subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       p.newID(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: "bonusbot",
		Payload:       payload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.client.Publish(ctx, subject, envelopeData, dedupID(event)); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}
	observability.GetMetrics().RecordNATSMessagePublished(string(event.Type()))

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// EnsureBonusEventStream ensures the bonus_events stream exists with every mapped subject
func (p *NATSEventPublisher) EnsureBonusEventStream(client *NATSClient) error {
	return client.EnsureStream(BonusEventStream, p.subjectMapper.GetAllSubjects())
}

// dedupID gives transitions a stable message id so a repeated daily pass
// is dropped by JetStream duplicate detection
func dedupID(event events.Event) string {
	transition, ok := event.(events.BonusTransitionEvent)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s|%s", transition.Day.Format("2006-01-02"), transition.Bonus.Key())
}
