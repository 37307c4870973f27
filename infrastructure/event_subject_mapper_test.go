package infrastructure

import (
	"testing"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/events"

	"github.com/stretchr/testify/assert"
)

func TestEventSubjectMapper(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   events.Event
		subject string
	}{
		{
			name:    "birthday transition",
			event:   events.NewBonusTransitionEvent(entities.NewBirthdayBonus("ARTIST", "A", day, day, 10), day, "UTC"),
			subject: SubjectBirthdayTransition,
		},
		{
			name:    "song transition",
			event:   events.NewBonusTransitionEvent(entities.NewSongBonus("ARTIST", "Intro", day, day, 10), day, "UTC"),
			subject: SubjectSongTransition,
		},
		{
			name:    "roster refreshed",
			event:   events.RosterRefreshedEvent{},
			subject: SubjectRosterRefreshed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
			assert.Contains(t, mapper.GetAllSubjects(), subject)
		})
	}

	assert.Equal(t, events.EventType("other.subject"), mapper.MapSubjectToEventType("other.subject"))
}
