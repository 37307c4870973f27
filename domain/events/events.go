package events

import (
	"time"

	"bonusbot/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBirthdayBonusTransition EventType = "birthday_bonus_transition"
	EventTypeSongBonusTransition     EventType = "song_bonus_transition"
	EventTypeRosterRefreshed         EventType = "roster_refreshed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TransitionKind says whether a bonus starts, ends, or both on the announced day
type TransitionKind string

const (
	TransitionStart     TransitionKind = "start"
	TransitionEnd       TransitionKind = "end"
	TransitionSingleDay TransitionKind = "single_day"
)

// BonusTransitionEvent is published once per effective bonus that starts or ends on Day
type BonusTransitionEvent struct {
	Artist   string                  `json:"artist"`
	Day      time.Time               `json:"day"`
	Kind     TransitionKind          `json:"kind"`
	Bonus    entities.EffectiveBonus `json:"bonus"`
	Timezone string                  `json:"timezone"`
}

// Type returns the birthday or song transition type depending on the bonus shape
func (e BonusTransitionEvent) Type() EventType {
	if e.Bonus.IsBirthday() {
		return EventTypeBirthdayBonusTransition
	}
	return EventTypeSongBonusTransition
}

// NewBonusTransitionEvent classifies bonus relative to day
func NewBonusTransitionEvent(bonus entities.EffectiveBonus, day time.Time, timezone string) BonusTransitionEvent {
	kind := TransitionStart
	switch {
	case bonus.StartsOn(day) && bonus.EndsOn(day):
		kind = TransitionSingleDay
	case bonus.EndsOn(day):
		kind = TransitionEnd
	}

	return BonusTransitionEvent{
		Artist:   bonus.Artist,
		Day:      entities.Day(day),
		Kind:     kind,
		Bonus:    bonus,
		Timezone: timezone,
	}
}

// RosterRefreshedEvent is published after the bonus roster cache reloads
type RosterRefreshedEvent struct {
	Artists     int           `json:"artists"`
	Records     int           `json:"records"`
	Duration    time.Duration `json:"duration"`
	RefreshedAt time.Time     `json:"refreshed_at"`
}

func (e RosterRefreshedEvent) Type() EventType {
	return EventTypeRosterRefreshed
}
