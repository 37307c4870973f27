package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bonusbot/domain/entities"
	"bonusbot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	subject string
	data    []byte
	msgID   string
}

type fakeMessagePublisher struct {
	messages []recordedMessage
	err      error
}

func (f *fakeMessagePublisher) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, recordedMessage{subject: subject, data: data, msgID: msgID})
	return nil
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := entities.ParseDay(entities.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestNATSEventPublisher_Publish(t *testing.T) {
	t.Parallel()

	fake := &fakeMessagePublisher{}
	publisher := newNATSEventPublisher(fake, NewEventSubjectMapper())
	publisher.newID = func() string { return "fixed-id" }
	publisher.now = func() time.Time { return time.Date(2024, 1, 5, 0, 5, 0, 0, time.UTC) }

	day := mustDay(t, "2024-01-05")
	bonus := entities.NewBirthdayBonus("ARTIST", "A + B", day, mustDay(t, "2024-01-06"), 30)
	event := events.NewBonusTransitionEvent(bonus, day, "Asia/Seoul")

	require.NoError(t, publisher.Publish(event))
	require.Len(t, fake.messages, 1)

	msg := fake.messages[0]
	assert.Equal(t, SubjectBirthdayTransition, msg.subject)
	assert.Equal(t, "2024-01-05|"+bonus.Key(), msg.msgID)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(msg.data, &envelope))
	assert.Equal(t, "fixed-id", envelope.EventID)
	assert.Equal(t, string(events.EventTypeBirthdayBonusTransition), envelope.EventType)
	assert.Equal(t, "bonusbot", envelope.SourceService)

	var payload events.BonusTransitionEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, events.TransitionStart, payload.Kind)
	assert.Equal(t, 30, payload.Bonus.EffectiveAmount)
	require.NotNil(t, payload.Bonus.Members)
	assert.Equal(t, "A + B", *payload.Bonus.Members)
}

func TestNATSEventPublisher_RosterEventHasNoDedupID(t *testing.T) {
	t.Parallel()

	fake := &fakeMessagePublisher{}
	publisher := newNATSEventPublisher(fake, NewEventSubjectMapper())

	require.NoError(t, publisher.Publish(events.RosterRefreshedEvent{Artists: 2, Records: 10}))
	require.Len(t, fake.messages, 1)
	assert.Equal(t, SubjectRosterRefreshed, fake.messages[0].subject)
	assert.Empty(t, fake.messages[0].msgID)
}

func TestNATSEventPublisher_PublishError(t *testing.T) {
	t.Parallel()

	fake := &fakeMessagePublisher{err: errors.New("no responders")}
	publisher := newNATSEventPublisher(fake, NewEventSubjectMapper())

	err := publisher.Publish(events.RosterRefreshedEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
}

func TestNoopEventPublisher(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewNoopEventPublisher().Publish(events.RosterRefreshedEvent{}))
}
