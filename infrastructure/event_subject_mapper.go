package infrastructure

import (
	"fmt"

	"bonusbot/domain/events"
)

const (
	SubjectBirthdayTransition = "bonuses.birthday.transition"
	SubjectSongTransition     = "bonuses.song.transition"
	SubjectRosterRefreshed    = "bonuses.roster.refreshed"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBirthdayBonusTransition:
		return SubjectBirthdayTransition
	case events.EventTypeSongBonusTransition:
		return SubjectSongTransition
	case events.EventTypeRosterRefreshed:
		return SubjectRosterRefreshed
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectBirthdayTransition:
		return events.EventTypeBirthdayBonusTransition
	case SubjectSongTransition:
		return events.EventTypeSongBonusTransition
	case SubjectRosterRefreshed:
		return events.EventTypeRosterRefreshed
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectBirthdayTransition,
		SubjectSongTransition,
		SubjectRosterRefreshed,
	}
}
